// Package analyzer runs the estimate pipeline behind a text-extraction
// collaborator, with a time bound, logging and metrics around it.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Starkspan/Final5/internal/estimate"
	"github.com/Starkspan/Final5/internal/logger"
	"github.com/Starkspan/Final5/internal/metrics"
)

// DefaultTimeout bounds text extraction when the service is built with zero.
const DefaultTimeout = 30 * time.Second

// ErrExtraction is returned when the document text could not be obtained.
var ErrExtraction = errors.New("text extraction failed")

// TextExtractor turns an uploaded document into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, document []byte) (string, error)
}

// Input carries the request parameters besides the document itself.
type Input struct {
	Quantity    int
	TargetPrice any
}

// Result is a finished analysis.
type Result struct {
	Estimate    estimate.Estimate
	TargetPrice any
}

// Response returns the JSON payload for the result.
func (r Result) Response() any {
	return r.Estimate.Response(r.TargetPrice)
}

// Service analyzes drawings. It holds no per-request state and is safe for
// concurrent use.
type Service struct {
	extractor TextExtractor
	catalog   estimate.Catalog
	logger    *slog.Logger
	metrics   *metrics.Recorder
	timeout   time.Duration
}

// NewService wires the pipeline. recorder may be nil.
func NewService(extractor TextExtractor, catalog estimate.Catalog, log *slog.Logger, recorder *metrics.Recorder, timeout time.Duration) *Service {
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		extractor: extractor,
		catalog:   catalog,
		logger:    log,
		metrics:   recorder,
		timeout:   timeout,
	}
}

// Catalog returns the materials and rates estimates are priced with.
func (s *Service) Catalog() estimate.Catalog {
	return s.catalog
}

// Analyze extracts the text of document and estimates the part.
func (s *Service) Analyze(ctx context.Context, document []byte, in Input) (Result, error) {
	log := logger.WithContext(ctx, s.logger)

	text, err := s.extract(ctx, document)
	if err != nil {
		log.Error("text extraction failed", "bytes", len(document), "error", err)
		s.recordOutcome(metrics.OutcomeError)
		return Result{}, fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	return s.AnalyzeText(ctx, text, in)
}

// AnalyzeText estimates the part from already extracted text.
func (s *Service) AnalyzeText(ctx context.Context, text string, in Input) (Result, error) {
	log := logger.WithContext(ctx, s.logger)

	est, err := estimate.Run(text, in.Quantity, s.catalog)
	if err != nil {
		log.Error("estimate failed", "error", err)
		s.recordOutcome(metrics.OutcomeError)
		return Result{}, err
	}

	s.recordOutcome(string(est.Outcome))
	log.Info("drawing analyzed",
		"outcome", est.Outcome,
		"shape", est.Shape,
		"material", est.Material,
		"weight_kg", est.Physical.Weight,
		"unit_price", est.Cost.UnitPriceFinal,
		"quantity", est.Quantity,
	)

	return Result{Estimate: est, TargetPrice: in.TargetPrice}, nil
}

func (s *Service) extract(ctx context.Context, document []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	text, err := s.extractor.Extract(ctx, document)
	if s.metrics != nil {
		s.metrics.RecordExtraction(time.Since(start), err)
	}
	return text, err
}

func (s *Service) recordOutcome(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordOutcome(outcome)
	}
}
