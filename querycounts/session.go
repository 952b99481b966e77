// Package querycounts reports SQL query counts per test function, the
// query-volume analog of go test's slowest-tests reporting.
//
// Wire it up in TestMain and track each test that touches the database:
//
//	var session = querycounts.NewSession()
//
//	func TestMain(m *testing.M) {
//		querytap.Register("mysql+count", &mysql.MySQLDriver{}, session)
//		os.Exit(session.Main(m))
//	}
//
//	func TestUserLookup(t *testing.T) {
//		session.Track(t)
//		// queries through sql.Open("mysql+count", dsn) are counted here
//	}
//
// Then run: go test -query-counts=10 ./...
//
// Counting is observability only: it never fails a test, never changes the
// exit code, and silently records nothing when no tap is registered.
package querycounts

import (
	"flag"
	"io"
	"os"
	"sync"
	"testing"

	"qcounts/internal/domain"
	"qcounts/querytap"
)

// Environment variables understood by a session. The qcounts CLI sets both
// when it drives a run.
const (
	// EnvOutput names a directory where the session drops its counts as
	// JSON at session end, one file per test binary.
	EnvOutput = "QCOUNTS_OUTPUT"
	// EnvTop is the fallback for the -query-counts flag.
	EnvTop = "QCOUNTS_TOP"
)

// Session is the per-process accumulator: it owns the results mapping,
// receives query events, and prints the report at session end. Create one
// in TestMain and discard it with the process.
type Session struct {
	mu  sync.Mutex
	rec *Recorder

	out       io.Writer
	outputDir string
	top       int
	topSet    bool
}

// A SessionOption configures a Session.
type SessionOption func(*Session)

// WithOutput redirects the report, which defaults to os.Stdout.
func WithOutput(w io.Writer) SessionOption {
	return func(s *Session) { s.out = w }
}

// WithTop fixes the number of reported entries, overriding the
// -query-counts flag and the QCOUNTS_TOP environment variable.
func WithTop(n int) SessionOption {
	return func(s *Session) { s.top = n; s.topSet = true }
}

// WithOutputDir overrides the QCOUNTS_OUTPUT directory.
func WithOutputDir(dir string) SessionOption {
	return func(s *Session) { s.outputDir = dir }
}

// NewSession creates a Session ready to receive query events.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		rec:       NewRecorder(),
		out:       os.Stdout,
		outputDir: os.Getenv(EnvOutput),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HandleQuery implements querytap.Handler: one call per executed statement,
// counted against the currently running test.
func (s *Session) HandleQuery(e querytap.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec.Observe(e.Source)
}

// OnTestStart opens the counting window for id with a fresh zero counter.
func (s *Session) OnTestStart(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec.Start(id)
}

// OnTestEnd closes the counting window for id. The recorded count is
// whatever was observed between start and end, on success and failure alike.
func (s *Session) OnTestEnd(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec.End(id)
}

// OnSessionEnd prints the top-N report when enabled and writes the count
// file when an output directory is configured. Neither can fail the run.
func (s *Session) OnSessionEnd() {
	entries := s.Entries()
	Report(s.out, entries, s.topN())
	if s.outputDir != "" {
		writeCountFile(s.outputDir, entries)
	}
}

// Track binds the session to t: the window opens now and closes when t's
// cleanups run, so setup inside the test body counts and neighbors do not.
func (s *Session) Track(t *testing.T) {
	t.Helper()
	id := t.Name()
	s.OnTestStart(id)
	t.Cleanup(func() { s.OnTestEnd(id) })
}

// Main runs the test binary under the session and returns its exit code,
// for use as os.Exit(session.Main(m)).
func (s *Session) Main(m *testing.M) int {
	if !flag.Parsed() {
		flag.Parse()
	}
	code := m.Run()
	s.OnSessionEnd()
	return code
}

// Entries returns a snapshot of the results mapping in insertion order.
func (s *Session) Entries() []domain.TestQueryCount {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Entries()
}

func (s *Session) topN() int {
	if s.topSet {
		return s.top
	}
	return optionTop()
}
