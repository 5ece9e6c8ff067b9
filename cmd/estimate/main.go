// Command estimate prints the machining estimate for a drawing file.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Starkspan/Final5/internal/analyzer"
	"github.com/Starkspan/Final5/internal/estimate"
	"github.com/Starkspan/Final5/internal/logger"
	"github.com/Starkspan/Final5/internal/textextract"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "estimate:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("estimate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	quantity := fs.Int("quantity", estimate.DefaultQuantity, "number of parts")
	targetPrice := fs.String("target-price", "", "target unit price, echoed in the output")
	pdftotext := fs.String("pdftotext", "pdftotext", "pdftotext binary")
	timeout := fs.Duration("timeout", analyzer.DefaultTimeout, "text extraction timeout")
	logLevel := fs.String("log-level", "warn", "log level (debug, info, warn, error)")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: estimate [flags] <drawing.pdf|drawing.txt>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("expected exactly one input file")
	}

	path := fs.Arg(0)
	document, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{Level: *logLevel}, stderr)

	var extractor analyzer.TextExtractor = textextract.PlainText{}
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		extractor = textextract.NewExtractor(textextract.Config{Pdftotext: *pdftotext}, log)
	}

	svc := analyzer.NewService(extractor, estimate.DefaultCatalog(), log, nil, *timeout)

	in := analyzer.Input{Quantity: *quantity}
	if *targetPrice != "" {
		in.TargetPrice = *targetPrice
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout+5*time.Second)
	defer cancel()

	result, err := svc.Analyze(ctx, document, in)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result.Response())
}
