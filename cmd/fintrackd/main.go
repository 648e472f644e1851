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

	"github.com/rbarros/fintrack/internal/common"
	"github.com/rbarros/fintrack/internal/export"
	"github.com/rbarros/fintrack/internal/ledger"
	"github.com/rbarros/fintrack/internal/llm"
	"github.com/rbarros/fintrack/internal/llm/anthropic"
	"github.com/rbarros/fintrack/internal/llm/gemini"
	"github.com/rbarros/fintrack/internal/llm/openai"
	"github.com/rbarros/fintrack/internal/pdftext"
	"github.com/rbarros/fintrack/internal/pipeline"
	"github.com/rbarros/fintrack/internal/repository"
	"github.com/rbarros/fintrack/internal/server"
)

func main() {
	cfg, err := common.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := repository.Open(ctx, cfg.Database.Path, logger)
	cancel()
	if err != nil {
		logger.Error("failed to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("db close failed", slog.String("error", err.Error()))
		}
	}()

	registry := buildRegistry(cfg, logger)
	extractor := pdftext.NewExtractor(pdftext.Config{}, logger)
	processor := pipeline.NewProcessor(extractor, registry, logger)

	txRepo := repository.NewTransactionRepository(db, logger)
	histRepo := repository.NewHistoryRepository(db, logger)
	configRepo := repository.NewProviderConfigRepository(db, logger)

	ledgerSvc := ledger.NewService(txRepo, histRepo, logger)
	exportSvc := export.NewService(txRepo, logger)

	handler := server.NewHandler(processor, ledgerSvc, exportSvc, configRepo, cfg.Upload.MaxFileSize, logger)
	e := server.New(cfg, handler, logger)
	httpServer := server.NewHTTPServer(cfg.Server, e)

	logger.Info("server starting",
		"addr", cfg.Server.Addr,
		"providers", registry.Providers(),
		"db", cfg.Database.Path,
	)

	go func() {
		if err := e.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", slog.String("error", err.Error()))
		}
	}()

	shutdownSignal := make(chan os.Signal, 1)
	signal.Notify(shutdownSignal, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownSignal

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
	}
}

// buildRegistry registers a client for every provider that carries an API
// key. Providers without credentials stay unregistered and invisible to
// dispatch.
func buildRegistry(cfg *common.Config, logger *slog.Logger) *llm.Registry {
	registry := llm.NewRegistry(logger)

	if cfg.LLM.OpenAI.APIKey != "" {
		registry.Register(llm.ProviderOpenAI, openai.NewClient(openai.Config{
			APIKey:  cfg.LLM.OpenAI.APIKey,
			BaseURL: cfg.LLM.OpenAI.BaseURL,
			Model:   cfg.LLM.OpenAI.Model,
			Timeout: cfg.LLM.Timeout,
		}, logger))
	}
	if cfg.LLM.Anthropic.APIKey != "" {
		registry.Register(llm.ProviderAnthropic, anthropic.NewClient(anthropic.Config{
			APIKey:  cfg.LLM.Anthropic.APIKey,
			BaseURL: cfg.LLM.Anthropic.BaseURL,
			Model:   cfg.LLM.Anthropic.Model,
			Timeout: cfg.LLM.Timeout,
		}, logger))
	}
	if cfg.LLM.Gemini.APIKey != "" {
		registry.Register(llm.ProviderGemini, gemini.NewClient(gemini.Config{
			APIKey:  cfg.LLM.Gemini.APIKey,
			BaseURL: cfg.LLM.Gemini.BaseURL,
			Model:   cfg.LLM.Gemini.Model,
			Timeout: cfg.LLM.Timeout,
		}, logger))
	}

	return registry
}
