package execution

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/rs/zerolog"

	"qcounts/internal/config"
	"qcounts/internal/gotest"
	"qcounts/querycounts"
)

// Runner executes go test for the discovered packages, sequentially, with
// the counting plugin's output directory injected into the environment.
type Runner struct {
	config *config.Config
	logger zerolog.Logger
	parser *gotest.Parser
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config, logger zerolog.Logger, parser *gotest.Parser) *Runner {
	return &Runner{config: cfg, logger: logger, parser: parser}
}

// SetLogger replaces the runner's logger (e.g. when --verbose is set)
func (r *Runner) SetLogger(logger zerolog.Logger) {
	r.logger = logger
}

// Run executes go test -json for the given packages and streams the events
// through the parser. Packages run one at a time (-p 1) so tests stay
// sequential and per-binary count files never interleave. The returned exit
// code is go test's own: query counting never changes it.
func (r *Runner) Run(ctx context.Context, packages []string, countsDir string) (*gotest.Summary, time.Duration, int, error) {
	args := append([]string{"test", "-json", "-p", "1", "-count=1"}, packages...)
	cmd := exec.CommandContext(ctx, "go", args...)
	cmd.Dir = r.config.ProjectPath
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("%s=%s", querycounts.EnvOutput, countsDir),
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("create stdout pipe: %w", err)
	}

	r.logger.Debug().
		Strs("packages", packages).
		Str("counts_dir", countsDir).
		Msg("running go test")

	startTime := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, 0, 0, fmt.Errorf("start go test: %w", err)
	}

	summary, parseErr := r.parser.Parse(stdout)

	exitCode := 0
	if err := cmd.Wait(); err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			return nil, 0, 0, fmt.Errorf("go test: %w", err)
		}
		// Failing tests are a normal outcome, carried in the exit code
		exitCode = exitErr.ExitCode()
	}
	duration := time.Since(startTime)

	if parseErr != nil {
		return nil, 0, 0, fmt.Errorf("parse go test output: %w", parseErr)
	}

	r.logger.Debug().
		Int("total", summary.Total()).
		Int("passed", summary.Passed).
		Int("failed", summary.Failed).
		Int("exit_code", exitCode).
		Dur("duration", duration).
		Msg("go test finished")

	if stderr.Len() > 0 {
		r.logger.Debug().Str("stderr", stderr.String()).Msg("go test stderr")
	}

	return summary, duration, exitCode, nil
}
