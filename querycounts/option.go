package querycounts

import (
	"flag"
	"os"
	"strconv"
)

// The flag rides along with the test binary's own flags, so it is passed as
// go test -query-counts=N (or -args -query-counts=N for packages that parse
// flags themselves).
var topFlag = flag.Int("query-counts", 0,
	"show the N biggest SQL query counts per test (0 disables the report)")

// optionTop resolves the configured N: flag first, QCOUNTS_TOP as fallback.
// Malformed or negative input disables the report rather than erroring.
func optionTop() int {
	if *topFlag > 0 {
		return *topFlag
	}
	raw := os.Getenv(EnvTop)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
