// @title Card Compliance API
// @version 1.0
// @description AI-assisted brand compliance review of card issuer advertising creative.
// @BasePath /api/v1
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cardcomply/internal/compliance"
	"cardcomply/internal/config"
	"cardcomply/internal/email/noop"
	"cardcomply/internal/email/ses"
	"cardcomply/internal/generator"
	"cardcomply/internal/generator/providers"
	"cardcomply/internal/handler"
	"cardcomply/internal/issuer"
	"cardcomply/internal/logging"
	"cardcomply/internal/metrics"
	"cardcomply/internal/port"
	"cardcomply/internal/reference"
	"cardcomply/internal/repository/postgres"
	"cardcomply/internal/router"
	"cardcomply/internal/service"
	s3storage "cardcomply/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	referenceRepo := postgres.NewReferenceDocumentRepo(db)
	runRepo := postgres.NewAnalysisRunRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	catalog, err := issuer.Load(cfg.Analysis.IssuerCatalogPath, cfg.Analysis.DefaultIssuer)
	if err != nil {
		return fmt.Errorf("failed to load issuer catalog: %w", err)
	}

	m := metrics.New()
	gen := newGenerator(&cfg.Generator, logger)
	refs := reference.NewProvider(referenceRepo, logger.Named("reference"), reference.DefaultMaxTextChars)
	analyzer := compliance.NewAnalyzer(gen, refs, catalog,
		compliance.WithLogger(logger.Named("compliance")),
		compliance.WithRecorder(m),
	)
	if err := analyzer.Ready(); err != nil {
		logger.Warn("live analysis unavailable; only demo requests will succeed", zap.Error(err))
	}

	emailSender, err := newEmailSender(&cfg.Email, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	// Initialize services
	complianceSvc := service.NewComplianceService(analyzer, s3Client, runRepo, &cfg.S3, cfg.Analysis, logger.Named("analysis"))
	referenceSvc := service.NewReferenceDocumentService(referenceRepo, s3Client, catalog, &cfg.S3, m, logger.Named("reference"))
	shareSvc := service.NewShareService(runRepo, emailSender, cfg.Share, logger.Named("share"))

	// Initialize handlers
	complianceH := handler.NewComplianceHandler(complianceSvc)
	referenceH := handler.NewReferenceDocumentHandler(referenceSvc)
	analysisH := handler.NewAnalysisHandler(shareSvc)
	issuerH := handler.NewIssuerHandler(catalog)
	healthH := handler.NewHealthHandler(postgres.NewPinger(db), analyzer)

	r := router.Setup(logger, cfg.CORS.AllowedOrigins, m, complianceH, referenceH, analysisH, issuerH, healthH)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := service.NewExtractionWorker(referenceRepo, referenceSvc, service.ExtractionWorkerConfig{
		PollInterval: time.Duration(cfg.Extraction.PollIntervalSecs) * time.Second,
		MaxAttempts:  cfg.Extraction.MaxAttempts,
		Concurrency:  cfg.Extraction.Concurrency,
	}, logger.Named("extraction"))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.Start(ctx)
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			stop()
			wg.Wait()
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	wg.Wait()
	return nil
}

// newGenerator builds the configured text generator behind a circuit breaker.
// It returns nil when the provider is unknown, leaving analysis unconfigured.
func newGenerator(cfg *config.GeneratorConfig, logger *zap.Logger) port.TextGenerator {
	providers.RegisterAll()
	primary := cfg.PrimaryConfig()
	gen, err := generator.NewGenerator(primary)
	if err != nil {
		logger.Warn("no text generator", zap.String("provider", primary.Provider), zap.Error(err))
		return nil
	}
	logger.Info("text generator configured",
		zap.String("provider", primary.Provider),
		zap.String("model", primary.DefaultModel))
	return generator.NewCircuitGenerator(gen, primary.Provider, logger.Named("generator"))
}

func newEmailSender(cfg *config.EmailConfig, logger *zap.Logger) (port.EmailSender, error) {
	if cfg.Provider == "ses" {
		return ses.NewSESSender(cfg.Region, cfg.FromAddress, cfg.FromName, cfg.FrontendURL)
	}
	return noop.NewNoopSender(cfg.FrontendURL, logger.Named("email")), nil
}
