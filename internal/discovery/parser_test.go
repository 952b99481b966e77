package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParser_FindTestCases(t *testing.T) {
	parser := NewParser()

	// Create a temporary Go test file
	tmpDir, err := os.MkdirTemp("", "qcounts-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	testFile := filepath.Join(tmpDir, "user_test.go")
	goContent := `package user

import "testing"

func TestMain(m *testing.M) {
	m.Run()
}

func TestCreateUser(t *testing.T) {
	// test code
}

func TestUpdateUser(tt *testing.T) {
	// test code
}

func BenchmarkCreateUser(b *testing.B) {
	// not a test
}

func helperFunc(t *testing.T) {
	// not exported, not a test
}

func TestDeleteUser(t *testing.T) {}
`
	if err := os.WriteFile(testFile, []byte(goContent), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	t.Run("finds test functions", func(t *testing.T) {
		testCases, err := parser.FindTestCases(testFile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(testCases) != 3 {
			t.Errorf("expected 3 test cases, got %d: %v", len(testCases), testCases)
		}

		found := make(map[string]bool)
		for _, tc := range testCases {
			found[tc] = true
		}

		expectedTests := []string{"TestCreateUser", "TestUpdateUser", "TestDeleteUser"}
		for _, expected := range expectedTests {
			if !found[expected] {
				t.Errorf("expected to find test case %s", expected)
			}
		}

		// TestMain and benchmarks are not runnable test cases
		if found["TestMain"] {
			t.Error("should not list TestMain as a test case")
		}
		if found["BenchmarkCreateUser"] {
			t.Error("should not list benchmarks as test cases")
		}
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		_, err := parser.FindTestCases("/non/existent/file.go")
		if err == nil {
			t.Error("expected error for non-existent file")
		}
	})
}
