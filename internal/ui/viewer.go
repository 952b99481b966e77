package ui

import "qcounts/internal/domain"

// Viewer displays a counted run in an interactive TUI
type Viewer interface {
	View(output *domain.RunOutput) error
}
