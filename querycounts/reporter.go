package querycounts

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"qcounts/internal/domain"
)

const sepWidth = 80

// TopN returns the n entries with the highest counts, descending. Ties keep
// their relative insertion order. n larger than the mapping returns
// everything, without padding.
func TopN(entries []domain.TestQueryCount, n int) []domain.TestQueryCount {
	sorted := make([]domain.TestQueryCount, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Queries > sorted[j].Queries
	})
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// Report writes the top-n query counts to w as a terminal summary section.
// n = 0 means the report is disabled and nothing is written. Report is a
// pure read of entries and never errors.
func Report(w io.Writer, entries []domain.TestQueryCount, n int) {
	if n <= 0 || len(entries) == 0 {
		return
	}
	// Title with the number of printed entries, not n, so a short mapping
	// does not announce more lines than it gets.
	top := TopN(entries, n)
	fmt.Fprintln(w, sectionLine(fmt.Sprintf("%d biggest query counts", len(top))))
	for _, e := range top {
		fmt.Fprintf(w, "%d queries: %s\n", e.Queries, e.TestID)
	}
}

// sectionLine centers a title in a line of = signs, the way test runners
// set off their summary sections.
func sectionLine(title string) string {
	text := " " + title + " "
	if len(text) >= sepWidth {
		return text
	}
	pad := sepWidth - len(text)
	left := pad / 2
	return strings.Repeat("=", left) + text + strings.Repeat("=", pad-left)
}
