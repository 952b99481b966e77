package querycounts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"qcounts/internal/domain"
)

// writeCountFile drops the session's counts into dir as JSON so the qcounts
// CLI can merge runs across test binaries. Every failure is absorbed:
// losing the count file must never fail the test run.
func writeCountFile(dir string, entries []domain.TestQueryCount) {
	totalQueries := 0
	withQueries := 0
	for _, e := range entries {
		totalQueries += e.Queries
		if e.Queries > 0 {
			withQueries++
		}
	}
	output := domain.RunOutput{
		Meta: domain.RunMeta{
			TotalTests:       len(entries),
			TestsWithQueries: withQueries,
			TotalQueries:     totalQueries,
			Timestamp:        time.Now().Format(time.RFC3339),
		},
		Counts: entries,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return
	}
	name := fmt.Sprintf("%s-%d.json", binaryName(), os.Getpid())
	_ = os.WriteFile(filepath.Join(dir, name), data, 0644)
}

// binaryName is the test binary's base name, sanitized for use in a file
// name. Distinct packages produce distinct binaries, the pid covers reruns.
func binaryName() string {
	name := filepath.Base(os.Args[0])
	name = strings.TrimSuffix(name, ".test")
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		}
		return '_'
	}, name)
	if name == "" {
		name = "qcounts"
	}
	return name
}
