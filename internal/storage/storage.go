package storage

import (
	"time"

	"qcounts/internal/config"
	"qcounts/internal/domain"
)

// Storage persists and loads counted runs (e.g. for the report and top
// commands).
type Storage interface {
	Save(results []domain.TestResult, counts []domain.TestQueryCount, duration time.Duration) error
	Load() (*domain.RunOutput, error)
}

// JSONStorage stores runs in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
