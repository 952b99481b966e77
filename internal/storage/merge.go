package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"qcounts/internal/domain"
)

// MergeCountFiles reads every count file a run's test binaries dropped into
// dir and returns the combined entries, qualified with their package import
// paths where those can be resolved from the run's results. Unreadable
// files are skipped: partial counts are still a useful report.
func MergeCountFiles(dir string, results []domain.TestResult) ([]domain.TestQueryCount, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list count files: %w", err)
	}

	byName := packagesByTestName(results)

	var merged []domain.TestQueryCount
	seen := make(map[string]bool)
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			continue
		}
		var output domain.RunOutput
		if err := json.Unmarshal(data, &output); err != nil {
			continue
		}

		hint := binaryHint(file)
		fileTag := strings.TrimSuffix(filepath.Base(file), ".json")
		for _, entry := range output.Counts {
			entry.Package = resolvePackage(byName[entry.TestID], hint)
			if entry.Package != "" {
				entry.TestID = entry.Package + "." + entry.TestID
			}
			if seen[entry.TestID] {
				// A qualified duplicate is the same test seen twice; an
				// unqualified one may be a different package's test, so it
				// stays distinct under the count file's name.
				if entry.Package != "" {
					continue
				}
				entry.TestID = fmt.Sprintf("%s (%s)", entry.TestID, fileTag)
				if seen[entry.TestID] {
					continue
				}
			}
			seen[entry.TestID] = true
			merged = append(merged, entry)
		}
	}

	return merged, nil
}

// packagesByTestName indexes the run's results: top-level test name to the
// packages that declare it.
func packagesByTestName(results []domain.TestResult) map[string][]string {
	byName := make(map[string][]string)
	for _, r := range results {
		// Subtests report as Parent/Sub; count entries use the full name too
		if containsPackage(byName[r.Name], r.Package) {
			continue
		}
		byName[r.Name] = append(byName[r.Name], r.Package)
	}
	return byName
}

// resolvePackage picks the package for a count entry. A unique declaring
// package wins outright; otherwise the count file's binary name (the
// package base name) disambiguates, but only when it matches exactly one
// candidate. Unresolvable entries stay unqualified.
func resolvePackage(candidates []string, hint string) string {
	if len(candidates) == 1 {
		return candidates[0]
	}
	match := ""
	for _, pkg := range candidates {
		if filepath.Base(pkg) == hint {
			if match != "" {
				return ""
			}
			match = pkg
		}
	}
	return match
}

// binaryHint extracts the test binary's base name from a count file name
// like "config-41523.json".
func binaryHint(file string) string {
	name := strings.TrimSuffix(filepath.Base(file), ".json")
	if i := strings.LastIndex(name, "-"); i > 0 {
		name = name[:i]
	}
	return name
}

func containsPackage(pkgs []string, pkg string) bool {
	for _, p := range pkgs {
		if p == pkg {
			return true
		}
	}
	return false
}
