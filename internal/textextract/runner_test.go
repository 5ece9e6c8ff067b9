package textextract

import (
	"context"
	"io"
	"log/slog"
	"os/exec"
	"testing"
)

func TestExecRunner_CollectsBothStreams(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	r := execRunner{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	stdout, stderr, err := r.Run(context.Background(), "sh", "-c", "printf 40mm; printf broken >&2; exit 3")
	if err == nil {
		t.Fatalf("expected exit error")
	}
	if string(stdout) != "40mm" || string(stderr) != "broken" {
		t.Fatalf("stdout=%q stderr=%q", stdout, stderr)
	}
}
