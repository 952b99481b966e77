package commands

import (
	"qcounts/internal/cli"
	"qcounts/internal/config"
	"qcounts/internal/dbcheck"
	"qcounts/internal/discovery"
	"qcounts/internal/execution"
	"qcounts/internal/gotest"
	"qcounts/internal/storage"
	"qcounts/internal/ui"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run    *RunCommand
	List   *ListCommand
	Report *ReportCommand
	Top    *TopCommand
	Check  *CheckCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	scanner := discovery.NewScanner(cfg.PathsToIgnore)
	filter := discovery.NewFilter()
	testCaseParser := discovery.NewParser()
	eventParser := gotest.NewParser()
	runner := execution.NewRunner(cfg, zerolog.Nop(), eventParser)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg, testCaseParser)
	viewer := ui.NewCountViewer(cfg)
	checker := dbcheck.NewChecker(cfg)

	return &Commands{
		Run:    NewRunCommand(cfg, scanner, filter, eventParser, runner, jsonStorage, formatter),
		List:   NewListCommand(cfg, scanner, filter, formatter),
		Report: NewReportCommand(cfg, jsonStorage, formatter),
		Top:    NewTopCommand(cfg, jsonStorage, viewer),
		Check:  NewCheckCommand(cfg, checker),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Run command
	runCmd := &cobra.Command{
		Use:   "run [packages...]",
		Short: "Run Go tests and count SQL queries per test",
		Long:  "Discover and execute Go tests sequentially, collecting per-test SQL query counts from the querycounts plugin",
		RunE:  c.Run.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Update config with flags after parsing
			cfg.Flags = flags.ToConfigFlags()
			if flags.Top > 0 {
				cfg.Top = flags.Top
			}
			return nil
		},
	}
	runCmd.Flags().IntVarP(&flags.Top, "top", "n", 0, "Number of biggest query counts to report")
	runCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where test detection should start")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter test files by name pattern (supports wildcards, e.g., '*user_test.go' or '*payment*')")
	runCmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Log runner diagnostics to stderr")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered tests",
		Long:  "Scan and list all Go test files without executing them",
		RunE:  c.List.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter test files by name pattern (supports wildcards, e.g., '*user_test.go' or '*payment*')")
	listCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where test detection should start")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List test functions instead of test files")
	rootCmd.AddCommand(listCmd)

	// Report command
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Print the biggest query counts from the last run",
		Long:  "Read the last saved run and print the N tests with the highest SQL query counts",
		RunE:  c.Report.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			if flags.Top > 0 {
				cfg.Top = flags.Top
			}
			return nil
		},
	}
	reportCmd.Flags().IntVarP(&flags.Top, "top", "n", 0, "Number of biggest query counts to report")
	reportCmd.Flags().BoolVar(&flags.All, "all", false, "Report every recorded test instead of the top N")
	rootCmd.AddCommand(reportCmd)

	// Top command
	topCmd := &cobra.Command{
		Use:   "top",
		Short: "View query counts interactively",
		Long:  "Display the last run's query counts in an interactive viewer, hottest test first",
		RunE:  c.Top.Execute,
	}
	rootCmd.AddCommand(topCmd)

	// Check command
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the counting tap against the configured database",
		Long:  "Open the configured MySQL database through the tapped driver, run a probe query and confirm it is counted",
		RunE:  c.Check.Execute,
	}
	rootCmd.AddCommand(checkCmd)
}
