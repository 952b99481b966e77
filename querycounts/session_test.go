package querycounts

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"qcounts/internal/domain"
	"qcounts/querytap"
)

func emit(s *Session, source string, n int) {
	for i := 0; i < n; i++ {
		s.HandleQuery(querytap.Event{Source: source, Query: "SELECT 1"})
	}
}

func TestSession_TrackBindsCountingToTest(t *testing.T) {
	s := NewSession(WithOutput(io.Discard), WithTop(0))

	t.Run("first", func(t *testing.T) {
		s.Track(t)
		emit(s, "default", 3)
	})
	t.Run("second", func(t *testing.T) {
		s.Track(t)
		// issues no queries
	})
	t.Run("third", func(t *testing.T) {
		s.Track(t)
		emit(s, "default", 1)
	})

	counts := make(map[string]int)
	for _, entry := range s.Entries() {
		counts[entry.TestID] = entry.Queries
	}

	base := "TestSession_TrackBindsCountingToTest/"
	if counts[base+"first"] != 3 {
		t.Errorf("expected 3 queries for first, got %d", counts[base+"first"])
	}
	if counts[base+"second"] != 0 {
		t.Errorf("expected 0 queries for second, got %d", counts[base+"second"])
	}
	if counts[base+"third"] != 1 {
		t.Errorf("expected 1 query for third, got %d", counts[base+"third"])
	}
}

func TestSession_EventsBetweenTestsAreDropped(t *testing.T) {
	s := NewSession(WithOutput(io.Discard), WithTop(0))

	emit(s, "default", 2) // no test running

	s.OnTestStart("TestA")
	emit(s, "default", 1)
	s.OnTestEnd("TestA")

	emit(s, "default", 2) // between tests

	entries := s.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Queries != 1 {
		t.Errorf("expected 1 query for TestA, got %d", entries[0].Queries)
	}
}

func TestSession_OnSessionEndReportsToWriter(t *testing.T) {
	var buf bytes.Buffer
	s := NewSession(WithOutput(&buf), WithTop(2))

	for id, n := range map[string]int{"TestA": 3, "TestB": 7, "TestC": 1} {
		s.OnTestStart(id)
		emit(s, "default", n)
		s.OnTestEnd(id)
	}

	s.OnSessionEnd()

	out := buf.String()
	if !strings.Contains(out, "7 queries: TestB") {
		t.Errorf("expected TestB in report, got %q", out)
	}
	if strings.Contains(out, "TestC") {
		t.Errorf("TestC should be cut off by top 2, got %q", out)
	}
}

func TestSession_OnSessionEndWritesCountFile(t *testing.T) {
	dir := t.TempDir()
	s := NewSession(WithOutput(io.Discard), WithTop(0), WithOutputDir(dir))

	s.OnTestStart("TestA")
	emit(s, "default", 2)
	emit(s, "replica", 1)
	s.OnTestEnd("TestA")

	s.OnSessionEnd()

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(files) != 1 {
		t.Fatalf("expected exactly one count file, got %v (err %v)", files, err)
	}

	data, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatalf("failed to read count file: %v", err)
	}
	var output domain.RunOutput
	if err := json.Unmarshal(data, &output); err != nil {
		t.Fatalf("failed to parse count file: %v", err)
	}

	if output.Meta.TotalQueries != 3 {
		t.Errorf("expected 3 total queries, got %d", output.Meta.TotalQueries)
	}
	if len(output.Counts) != 1 || output.Counts[0].TestID != "TestA" || output.Counts[0].Queries != 3 {
		t.Errorf("unexpected counts: %+v", output.Counts)
	}
	if output.Counts[0].BySource["replica"] != 1 {
		t.Errorf("expected replica source count 1, got %v", output.Counts[0].BySource)
	}
}

func TestSession_NoOutputDirWritesNothing(t *testing.T) {
	s := NewSession(WithOutput(io.Discard), WithTop(0), WithOutputDir(""))
	s.OnTestStart("TestA")
	s.OnTestEnd("TestA")
	// must not panic or write anywhere
	s.OnSessionEnd()
}
