package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/SCMGuru254/tenderbridge-sub003/internal/ats"
	"github.com/SCMGuru254/tenderbridge-sub003/internal/config"
	"github.com/SCMGuru254/tenderbridge-sub003/internal/handlers"
	"github.com/SCMGuru254/tenderbridge-sub003/internal/logger"
	"github.com/SCMGuru254/tenderbridge-sub003/internal/repositories"
	"github.com/SCMGuru254/tenderbridge-sub003/internal/server"
	"github.com/SCMGuru254/tenderbridge-sub003/internal/services"
)

func main() {
	// Load configuration
	cfg, dotenv := config.Load()

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if !dotenv {
		log.Debug("no .env file found, using process environment")
	}
	log.Info("config loaded", zap.String("env", cfg.Server.Env))

	// Keyword dictionary
	dict := ats.DefaultDictionary()
	if cfg.ATS.KeywordsFile != "" {
		dict, err = ats.LoadDictionary(cfg.ATS.KeywordsFile)
		if err != nil {
			log.Fatal("failed to load keyword dictionary", zap.String("path", cfg.ATS.KeywordsFile), zap.Error(err))
		}
	}
	log.Info("keyword dictionary ready", zap.Int("terms", dict.Len()))

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}

	// Initialize repositories
	docRepo := repositories.NewDocumentRepository(db)
	analysisRepo := repositories.NewAnalysisRepository(db)

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatal("failed to create upload directory", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := services.NewMetrics(reg)

	var textCache services.TextCache
	if cfg.Redis.Enabled() {
		ec, err := config.InitCache(cfg)
		if err != nil {
			log.Fatal("failed to initialize redis cache", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		textCache = services.NewTextCache(ec, cfg.Redis.TextTTL)
		log.Info("text cache enabled", zap.String("addr", cfg.Redis.Addr), zap.Duration("ttl", cfg.Redis.TextTTL))
	}

	retry := services.RetryPolicy{
		MaxAttempts:  cfg.Worker.RetryMaxAttempts,
		InitialDelay: cfg.Worker.RetryInitialDelay,
	}

	// Initialize worker
	worker := services.NewPersistWorker(
		analysisRepo,
		metrics,
		log.Named("persist"),
		cfg.Worker.Concurrency,
		cfg.Worker.QueueSize,
		retry,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.Start(ctx)

	analyzer := services.NewAnalyzerService(services.AnalyzerDeps{
		Storage: storageService,
		Parser:  services.NewDocumentParser(),
		Scorer:  ats.NewScorer(dict),
		Repo:    analysisRepo,
		Cache:   textCache,
		Worker:  worker,
		Metrics: metrics,
		Logger:  log.Named("analyzer"),
		Retry:   retry,
	})

	app := server.New(server.Options{
		MaxUploadSize:   cfg.Storage.MaxFileSize,
		RateLimitMax:    cfg.RateLimit.Max,
		RateLimitWindow: cfg.RateLimit.Window,
		Registry:        reg,
		Logger:          log.Named("http"),
	}, server.Handlers{
		Analyze:   handlers.NewAnalyzeHandler(analyzer, log.Named("analyze")),
		Upload:    handlers.NewUploadHandler(docRepo, storageService, cfg.Storage.MaxFileSize, log.Named("upload")),
		Documents: handlers.NewDocumentHandler(docRepo, log.Named("documents")),
		Result:    handlers.NewResultHandler(analysisRepo, log.Named("result")),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-quit
		log.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
		worker.Stop()
		cancel()
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
	<-done
}
