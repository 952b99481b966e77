package domain

// TestQueryCount is the number of SQL statements one test executed.
type TestQueryCount struct {
	TestID   string         `json:"test_id"`             // package + test name
	Package  string         `json:"package,omitempty"`   // import path, filled in by the CLI merge
	Queries  int            `json:"queries"`             // total across all sources
	BySource map[string]int `json:"by_source,omitempty"` // per registered tap name
}
