package main

import (
	"errors"
	"fmt"
	"os"

	"qcounts/internal/cli"
	"qcounts/internal/cli/commands"
	"qcounts/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "qcounts",
		Short:   "SQL query counts per test",
		Long:    `Counts the SQL queries each test executes and reports the tests with the biggest counts - the query-volume analog of a slowest-tests report.`,
		Version: version,
		// Errors are reported below so a failed test run is not followed
		// by usage output.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create initial config with defaults, .env and optional project file
	cfg := config.New()
	cfg.LoadEnv()
	cfg.LoadFile()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		// A test failure is go test's verdict, not ours: pass the code
		// through without an extra error line.
		var exitErr *commands.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
