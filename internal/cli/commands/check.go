package commands

import (
	"context"
	"time"

	"qcounts/internal/config"
	"qcounts/internal/dbcheck"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const checkTimeout = 10 * time.Second

// CheckCommand handles the check command
type CheckCommand struct {
	config  *config.Config
	checker *dbcheck.Checker
}

// NewCheckCommand creates a new CheckCommand
func NewCheckCommand(cfg *config.Config, checker *dbcheck.Checker) *CheckCommand {
	return &CheckCommand{
		config:  cfg,
		checker: checker,
	}
}

// Execute runs the command
func (cc *CheckCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout)
	defer cancel()

	observed, err := cc.checker.Verify(ctx)
	if err != nil {
		color.Red("✗ Tap verification failed: %v", err)
		return err
	}

	color.Green("✓ Tap verified: %d statement observed for one probe query", observed)
	return nil
}
