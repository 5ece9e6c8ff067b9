package textextract

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"time"
)

// Runner lets tests stub the external pdftotext command.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct {
	logger *slog.Logger
}

// Run executes name and collects both output streams. Failures are reported
// by the caller together with stderr.
func (r execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	r.logger.Debug("pdftotext finished",
		"took", time.Since(start),
		"text_bytes", stdout.Len(),
		"ok", err == nil,
	)
	return stdout.Bytes(), stderr.Bytes(), err
}
