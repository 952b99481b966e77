package commands

import (
	"fmt"

	"qcounts/internal/config"
	"qcounts/internal/storage"
	"qcounts/internal/ui"

	"github.com/spf13/cobra"
)

// TopCommand handles the top command
type TopCommand struct {
	config  *config.Config
	storage storage.Storage
	viewer  ui.Viewer
}

// NewTopCommand creates a new TopCommand
func NewTopCommand(cfg *config.Config, st storage.Storage, viewer ui.Viewer) *TopCommand {
	return &TopCommand{
		config:  cfg,
		storage: st,
		viewer:  viewer,
	}
}

// Execute runs the command
func (tc *TopCommand) Execute(cmd *cobra.Command, args []string) error {
	output, err := tc.storage.Load()
	if err != nil {
		return fmt.Errorf("no saved run to view (run `qcounts run` first): %w", err)
	}

	return tc.viewer.View(output)
}
