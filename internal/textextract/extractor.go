// Package textextract converts uploaded drawings into plain text for the estimator.
package textextract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrUnreadable is returned when a document cannot be turned into text.
var ErrUnreadable = errors.New("document is not readable")

// Config configures the PDF extractor.
type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	MaxPages  int    // 0 = no limit
	TempDir   string // if empty -> os.TempDir()
}

// Extractor turns PDF bytes into text using pdfcpu for validation and
// poppler's pdftotext for the text layer.
type Extractor struct {
	cfg      Config
	runner   Runner
	validate func(path string) (int, error)
	logger   *slog.Logger
}

// NewExtractor returns a PDF extractor. A nil logger uses slog.Default().
func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	return &Extractor{
		cfg:      cfg,
		runner:   execRunner{logger: logger},
		validate: validatePDF,
		logger:   logger,
	}
}

// Extract returns the text layer of a PDF document.
func (e *Extractor) Extract(ctx context.Context, document []byte) (string, error) {
	if len(document) == 0 {
		return "", fmt.Errorf("empty document: %w", ErrUnreadable)
	}

	f, err := os.CreateTemp(e.cfg.TempDir, "drawing-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(document); err != nil {
		f.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	pages, err := e.validate(path)
	if err != nil {
		e.logger.Warn("pdf validation failed", "error", err)
		return "", fmt.Errorf("validate pdf: %v: %w", err, ErrUnreadable)
	}

	args := []string{"-enc", "UTF-8", "-eol", "unix"}
	if e.cfg.MaxPages > 0 {
		args = append(args, "-l", strconv.Itoa(e.cfg.MaxPages))
	}
	args = append(args, path, "-")

	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, args...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("pdftotext: %w", ctxErr)
		}
		return "", fmt.Errorf("pdftotext: %v: %s: %w", err, strings.TrimSpace(string(errb)), ErrUnreadable)
	}

	text := Normalize(string(out))
	e.logger.Debug("pdf text extracted", "pages", pages, "chars", len(text))
	return text, nil
}

func validatePDF(path string) (int, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.ValidateFile(path, conf); err != nil {
		return 0, err
	}
	return api.PageCountFile(path)
}

// PlainText treats the document bytes as UTF-8 text.
type PlainText struct{}

// Extract returns the document unchanged apart from line-ending normalisation.
func (PlainText) Extract(_ context.Context, document []byte) (string, error) {
	if !utf8.Valid(document) {
		return "", fmt.Errorf("invalid utf-8: %w", ErrUnreadable)
	}
	return Normalize(string(document)), nil
}

var (
	reCRLF          = regexp.MustCompile(`\r\n?`)
	reTrailingSpace = regexp.MustCompile(`(?m)[ \t]+$`)
)

// Normalize unifies line endings and trims trailing blanks. Numbers, units and
// inner spacing are left alone so the estimator sees what the drawing printed.
func Normalize(s string) string {
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reTrailingSpace.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
