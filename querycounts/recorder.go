package querycounts

import "qcounts/internal/domain"

// Recorder accumulates query counts per test identifier. It keeps insertion
// order so that report ties break the same way every run. Recorder itself is
// not goroutine safe; Session adds the locking.
type Recorder struct {
	counts map[string]*domain.TestQueryCount
	order  []string
	stack  []string // currently open test windows, innermost last
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{counts: make(map[string]*domain.TestQueryCount)}
}

// Start opens a counting window for the given test identifier. Starting an
// identifier that was recorded before resets its counter to zero.
func (r *Recorder) Start(id string) {
	entry, ok := r.counts[id]
	if !ok {
		entry = &domain.TestQueryCount{TestID: id}
		r.counts[id] = entry
		r.order = append(r.order, id)
	} else {
		entry.Queries = 0
		entry.BySource = nil
	}
	r.stack = append(r.stack, id)
}

// End closes the counting window for id. Windows are closed innermost first;
// a mismatched id unwinds down to it so a skipped End cannot wedge the stack.
func (r *Recorder) End(id string) {
	for i := len(r.stack) - 1; i >= 0; i-- {
		if r.stack[i] == id {
			r.stack = r.stack[:i]
			return
		}
	}
}

// Current returns the identifier whose window is innermost, or "" when no
// test is running.
func (r *Recorder) Current() string {
	if len(r.stack) == 0 {
		return ""
	}
	return r.stack[len(r.stack)-1]
}

// Observe counts one executed statement against the current test. Events
// outside any test window are dropped: counting is best-effort and must
// stay strictly between start and end boundaries.
func (r *Recorder) Observe(source string) {
	id := r.Current()
	if id == "" {
		return
	}
	entry := r.counts[id]
	entry.Queries++
	if source != "" {
		if entry.BySource == nil {
			entry.BySource = make(map[string]int)
		}
		entry.BySource[source]++
	}
}

// Entries returns a snapshot of all recorded counts in insertion order.
func (r *Recorder) Entries() []domain.TestQueryCount {
	entries := make([]domain.TestQueryCount, 0, len(r.order))
	for _, id := range r.order {
		e := *r.counts[id]
		if len(e.BySource) > 0 {
			bySource := make(map[string]int, len(e.BySource))
			for k, v := range e.BySource {
				bySource[k] = v
			}
			e.BySource = bySource
		}
		entries = append(entries, e)
	}
	return entries
}
