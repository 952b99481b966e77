package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"qcounts/internal/domain"
)

// Save writes test results and query counts to the configured JSON output file.
func (s *JSONStorage) Save(results []domain.TestResult, counts []domain.TestQueryCount, duration time.Duration) error {
	passed := 0
	failed := 0
	for _, r := range results {
		if r.Success {
			passed++
		} else {
			failed++
		}
	}

	totalQueries := 0
	withQueries := 0
	for _, c := range counts {
		totalQueries += c.Queries
		if c.Queries > 0 {
			withQueries++
		}
	}

	output := domain.RunOutput{
		Meta: domain.RunMeta{
			TotalTests:       len(results),
			PassedTests:      passed,
			FailedTests:      failed,
			TestsWithQueries: withQueries,
			TotalQueries:     totalQueries,
			Duration:         duration.String(),
			DurationSeconds:  duration.Seconds(),
			Timestamp:        time.Now().Format(time.RFC3339),
		},
		Counts: counts,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run output: %w", err)
	}

	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write run output: %w", err)
	}
	return nil
}

// Load reads the last counted run from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.RunOutput, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read run output: %w", err)
	}
	var output domain.RunOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse run output: %w", err)
	}
	return &output, nil
}
