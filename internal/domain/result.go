package domain

import "time"

// TestResult represents the outcome of one test, as reported by the runner
type TestResult struct {
	Package  string        // Import path of the test's package
	Name     string        // Test function name
	Success  bool          // Whether the test passed
	Duration time.Duration // Time taken to execute
}

// RunMeta contains metadata about a counted test run
type RunMeta struct {
	TotalTests       int     `json:"total_tests"`
	PassedTests      int     `json:"passed_tests"`
	FailedTests      int     `json:"failed_tests"`
	TestsWithQueries int     `json:"tests_with_queries"`
	TotalQueries     int     `json:"total_queries"`
	Duration         string  `json:"duration"`
	DurationSeconds  float64 `json:"duration_seconds"`
	Timestamp        string  `json:"timestamp"`
}

// RunOutput is the complete output structure for a counted test run
type RunOutput struct {
	Meta   RunMeta          `json:"meta"`
	Counts []TestQueryCount `json:"counts"`
}
