package discovery

import (
	"fmt"
	"os"
	"regexp"
	"sort"
)

// Parser parses test files to extract test functions
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// Test functions as go test sees them: exported Test prefix, *testing.T
// receiver parameter. Subtests only exist at runtime, so they are not
// listed here.
var testFuncPattern = regexp.MustCompile(`(?m)^func\s+(Test\w*)\s*\(\s*\w+\s+\*testing\.T\s*\)`)

// FindTestCases finds all test functions in a test file
func (p *Parser) FindTestCases(filePath string) ([]string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}

	testCasesMap := make(map[string]bool) // Use map to avoid duplicates

	matches := testFuncPattern.FindAllStringSubmatch(string(content), -1)
	for _, match := range matches {
		if len(match) > 1 && match[1] != "TestMain" {
			testCasesMap[match[1]] = true
		}
	}

	// Convert map to sorted slice for consistent output
	var testCases []string
	for testCase := range testCasesMap {
		testCases = append(testCases, testCase)
	}

	sort.Strings(testCases)

	return testCases, nil
}
