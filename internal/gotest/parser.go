// Package gotest decodes the go test -json event stream.
package gotest

import (
	"bufio"
	"encoding/json"
	"io"
	"time"

	"qcounts/internal/domain"
)

// Event is one test2json record. Fields we do not use are left out.
type Event struct {
	Time    time.Time `json:"Time"`
	Action  string    `json:"Action"`
	Package string    `json:"Package"`
	Test    string    `json:"Test"`
	Elapsed float64   `json:"Elapsed"`
	Output  string    `json:"Output"`
}

// Summary is the per-test accounting of one run.
type Summary struct {
	Results []domain.TestResult
	Passed  int
	Failed  int
	Skipped int
}

// Total returns the number of finished tests.
func (s *Summary) Total() int {
	return s.Passed + s.Failed + s.Skipped
}

// ProgressFunc is called after every finished test.
type ProgressFunc func(completed, passed, failed int)

// Parser consumes a go test -json stream and accumulates per-test results
type Parser struct {
	progress ProgressFunc
}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// SetProgress sets the callback invoked as tests finish
func (p *Parser) SetProgress(fn ProgressFunc) {
	p.progress = fn
}

// Parse reads the stream until EOF. Lines that are not JSON events (e.g.
// build errors printed by the toolchain) are skipped: a run we cannot fully
// decode still yields whatever accounting was possible.
func (p *Parser) Parse(r io.Reader) (*Summary, error) {
	summary := &Summary{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 || line[0] != '{' {
			continue
		}
		var ev Event
		if err := json.Unmarshal(line, &ev); err != nil {
			continue
		}
		// Package-level events carry no Test
		if ev.Test == "" {
			continue
		}

		switch ev.Action {
		case "pass":
			summary.Passed++
		case "fail":
			summary.Failed++
		case "skip":
			summary.Skipped++
		default:
			continue
		}

		summary.Results = append(summary.Results, domain.TestResult{
			Package:  ev.Package,
			Name:     ev.Test,
			Success:  ev.Action != "fail",
			Duration: time.Duration(ev.Elapsed * float64(time.Second)),
		})
		if p.progress != nil {
			p.progress(summary.Total(), summary.Passed, summary.Failed)
		}
	}

	return summary, scanner.Err()
}
