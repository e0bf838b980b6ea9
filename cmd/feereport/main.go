package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/library-fees/internal/config"
	"github.com/Dan9191/library-fees/internal/handler"
	"github.com/Dan9191/library-fees/internal/middleware"
	"github.com/Dan9191/library-fees/internal/repository"
	"github.com/Dan9191/library-fees/internal/scheduler"
	"github.com/Dan9191/library-fees/internal/service"
	"github.com/sirupsen/logrus"
)

const usage = `usage: feereport <command> [args...]

Commands:
  run [ledger] [report]  Generate the fee report once
  serve                  Start the HTTP API
  schedule               Regenerate the fee report on REPORT_SCHEDULE`

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(cfg.SentinelRows)
	svc := service.NewService(repo, logger, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch os.Args[1] {
	case "run":
		err = runOnce(ctx, cfg, svc, os.Args[2:])
	case "serve":
		err = serve(ctx, cfg, svc, logger)
	case "schedule":
		err = schedule(ctx, cfg, svc, logger)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		logger.Fatalf("%s failed: %v", os.Args[1], err)
	}
}

func runOnce(ctx context.Context, cfg *config.Config, svc *service.Service, args []string) error {
	ledger, report := cfg.LedgerPath(), cfg.ReportPath()
	if len(args) > 0 {
		ledger = cfg.ResolvePath(args[0])
	}
	if len(args) > 1 {
		report = cfg.ResolvePath(args[1])
	}
	return svc.GenerateFeeReport(ctx, ledger, report)
}

func serve(ctx context.Context, cfg *config.Config, svc *service.Service, logger *logrus.Logger) error {
	h := handler.NewHandler(svc, logger)
	r := handler.NewRouter(h, middleware.AuthMiddleware(cfg))

	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Server shutdown failed: %v", err)
		}
	}()

	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func schedule(ctx context.Context, cfg *config.Config, svc *service.Service, logger *logrus.Logger) error {
	s, err := scheduler.New(cfg.ReportSchedule, svc, cfg.LedgerPath(), cfg.ReportPath(), logger)
	if err != nil {
		return err
	}
	s.Run(ctx)
	return nil
}
