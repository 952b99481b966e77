package commands

import (
	"fmt"

	"qcounts/internal/config"
	"qcounts/internal/storage"
	"qcounts/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ReportCommand handles the report command
type ReportCommand struct {
	config    *config.Config
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewReportCommand creates a new ReportCommand
func NewReportCommand(cfg *config.Config, st storage.Storage, formatter *ui.Formatter) *ReportCommand {
	return &ReportCommand{
		config:    cfg,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the command
func (rc *ReportCommand) Execute(cmd *cobra.Command, args []string) error {
	output, err := rc.storage.Load()
	if err != nil {
		return fmt.Errorf("no saved run to report (run `qcounts run` first): %w", err)
	}

	if len(output.Counts) == 0 {
		color.Yellow("No query counts recorded in the last run")
		return nil
	}

	top := rc.config.GetTop()
	if rc.config.Flags.All {
		top = -1
	}
	rc.formatter.PrintTopCounts(output.Counts, top)
	return nil
}
