package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"qcounts/internal/config"
	"qcounts/internal/discovery"
	"qcounts/internal/domain"
	"qcounts/querycounts"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	parser *discovery.Parser
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config, parser *discovery.Parser) *Formatter {
	return &Formatter{
		config: cfg,
		parser: parser,
	}
}

// PrintRunStats displays the meta statistics of a counted run
func (f *Formatter) PrintRunStats(output *domain.RunOutput) {
	meta := output.Meta

	// Print header
	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                     Query Count Statistics                    ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	// Print table
	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")

	// Total Tests
	fmt.Printf("│ %-31s │ ", "Total Tests")
	color.White("%-27d │\n", meta.TotalTests)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Passed Tests
	fmt.Printf("│ %-31s │ ", "Passed Tests")
	color.Green("%-27d │\n", meta.PassedTests)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Failed Tests
	fmt.Printf("│ %-31s │ ", "Failed Tests")
	color.Red("%-27d │\n", meta.FailedTests)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Tests With Queries
	fmt.Printf("│ %-31s │ ", "Tests With Queries")
	color.Yellow("%-27d │\n", meta.TestsWithQueries)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Total Queries
	fmt.Printf("│ %-31s │ ", "Total Queries")
	color.Yellow("%-27d │\n", meta.TotalQueries)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Duration
	fmt.Printf("│ %-31s │ ", "Duration")
	durationStr := fmt.Sprintf("%.2fs", meta.DurationSeconds)
	color.White("%-27s │\n", durationStr)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Timestamp
	fmt.Printf("│ %-31s │ ", "Timestamp")
	color.White("%-27s │\n", meta.Timestamp)

	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Println()
	if meta.FailedTests == 0 {
		color.Green("✓ All tests passed!")
	} else {
		color.Red("✗ %d test(s) failed", meta.FailedTests)
	}
}

// PrintTopCounts prints the n biggest query counts as a colored terminal
// section. n = 0 prints nothing; n < 0 prints every entry.
func (f *Formatter) PrintTopCounts(counts []domain.TestQueryCount, n int) {
	if n == 0 || len(counts) == 0 {
		return
	}

	top := querycounts.TopN(counts, n)
	title := fmt.Sprintf("%d biggest query counts", len(top))
	if n < 0 {
		title = "biggest query counts"
	}

	fmt.Println()
	color.Cyan(sectionLine(title))
	for _, entry := range top {
		countStr := color.YellowString("%d queries", entry.Queries)
		if entry.Queries == 1 {
			countStr = color.YellowString("1 query")
		}
		fmt.Printf("%s: %s\n", countStr, entry.TestID)
	}
}

// sectionLine centers a title in a line of = signs
func sectionLine(title string) string {
	const width = 80
	text := " " + title + " "
	if len(text) >= width {
		return text
	}
	pad := width - len(text)
	left := pad / 2
	return strings.Repeat("=", left) + text + strings.Repeat("=", pad-left)
}

// CountTestCases returns the total number of test functions across the given test files.
func (f *Formatter) CountTestCases(tests []string) (int, error) {
	var total int
	for _, test := range tests {
		cases, err := f.parser.FindTestCases(test)
		if err != nil {
			return 0, err
		}
		total += len(cases)
	}
	return total, nil
}

// PrintTestList prints a list of test files, optionally with test functions.
func (f *Formatter) PrintTestList(tests []string, showTestCases bool) error {
	if showTestCases {
		// Display tree view with test functions
		color.Green("Found %d test file(s) with test functions:\n", len(tests))

		for i, test := range tests {
			testCases, err := f.parser.FindTestCases(test)
			if err != nil {
				color.Red("Error reading test file %s: %v", test, err)
				continue
			}

			// Get relative path for cleaner display
			relPath, err := filepath.Rel(f.config.ProjectPath, test)
			if err != nil {
				relPath = test
			}

			// Print test file as root node
			isLastFile := i == len(tests)-1
			if isLastFile {
				color.Cyan("└── %s", relPath)
			} else {
				color.Cyan("├── %s", relPath)
			}

			// Print test functions as children
			if len(testCases) == 0 {
				var prefix string
				if isLastFile {
					prefix = "    └── "
				} else {
					prefix = "│   └── "
				}
				fmt.Printf("%s%s\n", prefix, color.RedString("(no test functions found)"))
			} else {
				for j, testCase := range testCases {
					isLastCase := j == len(testCases)-1

					var prefix string
					if isLastFile {
						if isLastCase {
							prefix = "    └── "
						} else {
							prefix = "    ├── "
						}
					} else {
						if isLastCase {
							prefix = "│   └── "
						} else {
							prefix = "│   ├── "
						}
					}

					fmt.Printf("%s%s\n", prefix, color.YellowString(testCase))
				}
			}

			// Add spacing between files (except for the last one)
			if i < len(tests)-1 {
				fmt.Println()
			}
		}
	} else {
		// Display simple list of test files
		color.Green("Found %d test file(s):\n", len(tests))

		for i, test := range tests {
			// Get relative path for cleaner display
			relPath, err := filepath.Rel(f.config.ProjectPath, test)
			if err != nil {
				relPath = test
			}

			if i == len(tests)-1 {
				color.Cyan("└── %s", relPath)
			} else {
				color.Cyan("├── %s", relPath)
			}
		}
	}

	return nil
}
