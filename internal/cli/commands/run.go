package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"qcounts/internal/config"
	"qcounts/internal/discovery"
	"qcounts/internal/execution"
	"qcounts/internal/gotest"
	"qcounts/internal/storage"
	"qcounts/internal/ui"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// ExitError carries go test's exit status through cobra so the run command
// can finish with the same code. Counting never fails a run on its own.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("go test exited with status %d", e.Code)
}

// RunCommand handles the run command
type RunCommand struct {
	config      *config.Config
	scanner     *discovery.Scanner
	filter      *discovery.Filter
	eventParser *gotest.Parser
	runner      *execution.Runner
	storage     storage.Storage
	formatter   *ui.Formatter
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	eventParser *gotest.Parser,
	runner *execution.Runner,
	st storage.Storage,
	formatter *ui.Formatter,
) *RunCommand {
	return &RunCommand{
		config:      cfg,
		scanner:     scanner,
		filter:      filter,
		eventParser: eventParser,
		runner:      runner,
		storage:     st,
		formatter:   formatter,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	if rc.config.Flags.Verbose {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger()
		rc.runner.SetLogger(logger)
	}

	// Discover tests
	testPath := rc.config.GetTestPath()
	tests, err := rc.scanner.Scan(testPath)
	if err != nil {
		return err
	}

	// Filter tests
	tests = rc.filter.FilterByName(tests, rc.config.Flags.NameFilter)

	if len(tests) == 0 {
		color.Yellow("No tests to execute")
		return nil
	}

	// Explicit package arguments win over discovery
	packages := args
	if len(packages) == 0 {
		packages = rc.packagesFor(tests)
	}

	// Size the progress bar by test functions, falling back to files
	expected, err := rc.formatter.CountTestCases(tests)
	if err != nil || expected == 0 {
		expected = len(tests)
	}
	progressBar := ui.NewProgressBar(expected)
	rc.eventParser.SetProgress(progressBar.Update)

	// Collect per-binary count files in a temporary directory
	countsDir, err := os.MkdirTemp("", "qcounts-")
	if err != nil {
		return fmt.Errorf("create counts dir: %w", err)
	}
	defer os.RemoveAll(countsDir)

	// Execute tests
	summary, duration, exitCode, err := rc.runner.Run(cmd.Context(), packages, countsDir)
	progressBar.Finish()
	if err != nil {
		return err
	}

	// Merge counts and save the run
	counts, err := storage.MergeCountFiles(countsDir, summary.Results)
	if err != nil {
		return fmt.Errorf("merge count files: %w", err)
	}
	if err := rc.storage.Save(summary.Results, counts, duration); err != nil {
		return fmt.Errorf("failed to save run results: %w", err)
	}

	// Print stats
	output, err := rc.storage.Load()
	if err != nil {
		return err
	}
	rc.formatter.PrintRunStats(output)
	rc.formatter.PrintTopCounts(output.Counts, rc.config.GetTop())

	if exitCode != 0 {
		return &ExitError{Code: exitCode}
	}
	return nil
}

// packagesFor converts discovered test file paths into go test package
// arguments relative to the project path.
func (rc *RunCommand) packagesFor(tests []string) []string {
	rel := make([]string, 0, len(tests))
	for _, test := range tests {
		r, err := filepath.Rel(rc.config.ProjectPath, test)
		if err != nil {
			r = test
		}
		rel = append(rel, r)
	}
	return discovery.Packages(rel)
}
