package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	TestPath    string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Report settings
	Top int

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Top        int
	TestPath   string
	NameFilter string
	TestCases  bool
	Verbose    bool
	All        bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		TestPath:       DefaultTestPath,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Top:            DefaultTop,
		Flags:          Flags{Top: DefaultTop},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config, applies the optional project file, then flags
func Load(flags Flags) *Config {
	cfg := New()
	cfg.LoadEnv()
	cfg.LoadFile()
	cfg.Flags = flags

	// Apply flag overrides
	if flags.Top > 0 {
		cfg.Top = flags.Top
	}

	return cfg
}

// LoadEnv loads the project's .env file if present. A missing file is fine,
// environment variables still apply.
func (c *Config) LoadEnv() {
	envPath := filepath.Join(c.ProjectPath, ".env")
	_ = godotenv.Load(envPath)
}

// LoadFile applies the optional .qcounts.yaml from the project path. The
// file is additive: anything it does not set keeps its default.
func (c *Config) LoadFile() {
	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(c.ProjectPath)

	if err := v.ReadInConfig(); err != nil {
		// Missing or unreadable config file falls back to defaults
		return
	}

	if v.IsSet("test_path") {
		c.TestPath = v.GetString("test_path")
	}
	if v.IsSet("output_dir") {
		c.OutputJSONDir = v.GetString("output_dir")
	}
	if v.IsSet("output_file") {
		c.OutputJSONFile = v.GetString("output_file")
	}
	if v.IsSet("top") {
		if top := v.GetInt("top"); top > 0 {
			c.Top = top
		}
	}
	if v.IsSet("ignore") {
		c.PathsToIgnore = v.GetStringSlice("ignore")
	}
}

// GetTestPath returns the test path, using flag if provided
func (c *Config) GetTestPath() string {
	if c.Flags.TestPath != "" {
		// If TestPath is provided, make it relative to the project path if it's not absolute
		if filepath.IsAbs(c.Flags.TestPath) {
			return c.Flags.TestPath
		}
		return filepath.Join(c.ProjectPath, c.Flags.TestPath)
	}

	// Default: combine project path and test path
	return filepath.Join(c.ProjectPath, c.TestPath)
}

// GetOutputPath returns the full path to the output JSON file (under project so run and report use the same file).
// Resolves to an absolute path so run and report always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetTop returns the number of report entries, using flag if provided
func (c *Config) GetTop() int {
	if c.Flags.Top > 0 {
		return c.Flags.Top
	}
	return c.Top
}

// GetDSN builds the MySQL DSN for the check command from the environment,
// falling back to local defaults the same way the test databases are set up.
func (c *Config) GetDSN() string {
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "127.0.0.1"
	}
	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "3306"
	}
	dbUser := os.Getenv("DB_USERNAME")
	if dbUser == "" {
		dbUser = "root"
	}
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_DATABASE")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", dbUser, dbPassword, dbHost, dbPort, dbName)
}
