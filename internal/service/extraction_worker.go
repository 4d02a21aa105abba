package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"cardcomply/internal/port"
)

// ExtractionWorkerConfig holds settings for the extraction worker.
type ExtractionWorkerConfig struct {
	PollInterval time.Duration
	MaxAttempts  int
	Concurrency  int
	// Timeout bounds a single document extraction.
	Timeout time.Duration
}

// ExtractionWorker polls for pending reference documents and extracts their text.
type ExtractionWorker struct {
	repo    port.ReferenceDocumentRepository
	service ReferenceDocumentService
	cfg     ExtractionWorkerConfig
	logger  *zap.Logger
	wg      sync.WaitGroup
}

// NewExtractionWorker creates a new ExtractionWorker.
func NewExtractionWorker(repo port.ReferenceDocumentRepository, service ReferenceDocumentService, cfg ExtractionWorkerConfig, logger *zap.Logger) *ExtractionWorker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &ExtractionWorker{
		repo:    repo,
		service: service,
		cfg:     cfg,
		logger:  logger,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight extractions have finished.
func (w *ExtractionWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	w.logger.Info("extraction worker started",
		zap.Duration("poll", w.cfg.PollInterval),
		zap.Int("concurrency", w.cfg.Concurrency),
		zap.Int("max_attempts", w.cfg.MaxAttempts))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("extraction worker shutting down, waiting for in-flight extractions")
			w.wg.Wait()
			w.logger.Info("extraction worker stopped")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			docs, err := w.repo.ClaimPending(ctx, available)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				w.logger.Error("claiming pending reference documents failed", zap.Error(err))
				continue
			}

			for i := range docs {
				doc := docs[i]

				sem <- struct{}{}
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }()

					// In-flight extractions finish even during shutdown.
					extractCtx, cancel := context.WithTimeout(context.Background(), w.cfg.Timeout)
					defer cancel()

					w.service.Extract(extractCtx, &doc, w.cfg.MaxAttempts)
				}()
			}
		}
	}
}
