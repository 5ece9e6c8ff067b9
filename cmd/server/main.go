package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Starkspan/Final5/internal/analyzer"
	"github.com/Starkspan/Final5/internal/catalog"
	"github.com/Starkspan/Final5/internal/config"
	"github.com/Starkspan/Final5/internal/estimate"
	"github.com/Starkspan/Final5/internal/logger"
	"github.com/Starkspan/Final5/internal/metrics"
	"github.com/Starkspan/Final5/internal/textextract"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat := estimate.DefaultCatalog()
	if cfg.DBPath != "" {
		loaded, err := catalog.Open(ctx, cfg.DBPath, log)
		if err != nil {
			return err
		}
		cat = loaded
		log.Info("catalog loaded", "db_path", cfg.DBPath, "materials", len(cat.Materials))
	}

	extractor := textextract.NewExtractor(textextract.Config{
		Pdftotext: cfg.Pdftotext,
		MaxPages:  cfg.ExtractMaxPages,
	}, log)
	recorder := metrics.NewRecorder()

	srv := &server{
		analyzer:       analyzer.NewService(extractor, cat, log, recorder, cfg.ExtractTimeout),
		metrics:        recorder,
		logger:         log,
		maxUploadBytes: cfg.MaxUploadBytes,
		corsOrigin:     cfg.CORSAllowOrigin,
		exposeErrors:   cfg.IsDev(),
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "port", cfg.Port, "env", cfg.Env)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
