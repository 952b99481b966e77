package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_GetTestPath(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name: "default path",
			config: &Config{
				ProjectPath: ".",
				TestPath:    ".",
				Flags:       Flags{},
			},
			expected: ".",
		},
		{
			name: "with test path flag",
			config: &Config{
				ProjectPath: "/project",
				TestPath:    ".",
				Flags: Flags{
					TestPath: "internal",
				},
			},
			expected: "/project/internal",
		},
		{
			name: "absolute test path",
			config: &Config{
				ProjectPath: "/project",
				TestPath:    ".",
				Flags: Flags{
					TestPath: "/absolute/path",
				},
			},
			expected: "/absolute/path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.GetTestPath()
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestConfig_GetTop(t *testing.T) {
	t.Run("default top", func(t *testing.T) {
		cfg := New()
		if top := cfg.GetTop(); top != DefaultTop {
			t.Errorf("expected %d, got %d", DefaultTop, top)
		}
	})

	t.Run("flag overrides default", func(t *testing.T) {
		cfg := New()
		cfg.Flags.Top = 3
		if top := cfg.GetTop(); top != 3 {
			t.Errorf("expected 3, got %d", top)
		}
	})
}

func TestConfig_GetDSN(t *testing.T) {
	t.Setenv("DB_HOST", "db.example.com")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("DB_USERNAME", "tester")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_DATABASE", "testing_1")

	cfg := New()
	expected := "tester:secret@tcp(db.example.com:3307)/testing_1"
	if dsn := cfg.GetDSN(); dsn != expected {
		t.Errorf("expected %s, got %s", expected, dsn)
	}
}

func TestConfig_LoadFile(t *testing.T) {
	t.Run("applies project file settings", func(t *testing.T) {
		tmpDir := t.TempDir()
		content := "top: 5\ntest_path: internal\noutput_dir: out\n"
		if err := os.WriteFile(filepath.Join(tmpDir, ".qcounts.yaml"), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		cfg := New()
		cfg.ProjectPath = tmpDir
		cfg.LoadFile()

		if cfg.Top != 5 {
			t.Errorf("expected top 5, got %d", cfg.Top)
		}
		if cfg.TestPath != "internal" {
			t.Errorf("expected test path internal, got %s", cfg.TestPath)
		}
		if cfg.OutputJSONDir != "out" {
			t.Errorf("expected output dir out, got %s", cfg.OutputJSONDir)
		}
		// Unset keys keep their defaults
		if cfg.OutputJSONFile != DefaultOutputJSONFile {
			t.Errorf("expected default output file, got %s", cfg.OutputJSONFile)
		}
	})

	t.Run("missing file keeps defaults", func(t *testing.T) {
		cfg := New()
		cfg.ProjectPath = t.TempDir()
		cfg.LoadFile()

		if cfg.Top != DefaultTop {
			t.Errorf("expected default top, got %d", cfg.Top)
		}
	})
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ProjectPath != DefaultProjectPath {
		t.Errorf("expected ProjectPath %s, got %s", DefaultProjectPath, cfg.ProjectPath)
	}

	if cfg.Top != DefaultTop {
		t.Errorf("expected Top %d, got %d", DefaultTop, cfg.Top)
	}

	if len(cfg.PathsToIgnore) != len(DefaultPathsToIgnore) {
		t.Errorf("expected %d paths to ignore, got %d", len(DefaultPathsToIgnore), len(cfg.PathsToIgnore))
	}
}
