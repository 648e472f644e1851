// docparse runs the extraction pipeline once against a local PDF and prints
// the structured result as JSON. Useful for prompt and provider debugging
// without the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/rbarros/fintrack/constants"
	"github.com/rbarros/fintrack/internal/common"
	"github.com/rbarros/fintrack/internal/llm"
	"github.com/rbarros/fintrack/internal/llm/anthropic"
	"github.com/rbarros/fintrack/internal/llm/gemini"
	"github.com/rbarros/fintrack/internal/llm/openai"
	"github.com/rbarros/fintrack/internal/pdftext"
	"github.com/rbarros/fintrack/internal/pipeline"
)

func main() {
	var (
		file     = flag.String("file", "", "path to the PDF to process")
		kind     = flag.String("kind", "payslip", "document kind: payslip | bank_statement | card_statement")
		provider = flag.String("provider", "", "force a provider: openai | anthropic | gemini")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if *file == "" {
		logger.Error("usage: docparse -file <path.pdf> [-kind payslip|bank_statement|card_statement] [-provider name]")
		os.Exit(2)
	}

	cfg, err := common.LoadConfig()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	requested, err := llm.ParseProvider(*provider)
	if err != nil {
		logger.Error("invalid provider", "error", err)
		os.Exit(2)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		logger.Error("read file", "path", *file, "error", err)
		os.Exit(1)
	}

	registry := llm.NewRegistry(logger)
	if cfg.LLM.OpenAI.APIKey != "" {
		registry.Register(llm.ProviderOpenAI, openai.NewClient(openai.Config{
			APIKey: cfg.LLM.OpenAI.APIKey, BaseURL: cfg.LLM.OpenAI.BaseURL,
			Model: cfg.LLM.OpenAI.Model, Timeout: cfg.LLM.Timeout,
		}, logger))
	}
	if cfg.LLM.Anthropic.APIKey != "" {
		registry.Register(llm.ProviderAnthropic, anthropic.NewClient(anthropic.Config{
			APIKey: cfg.LLM.Anthropic.APIKey, BaseURL: cfg.LLM.Anthropic.BaseURL,
			Model: cfg.LLM.Anthropic.Model, Timeout: cfg.LLM.Timeout,
		}, logger))
	}
	if cfg.LLM.Gemini.APIKey != "" {
		registry.Register(llm.ProviderGemini, gemini.NewClient(gemini.Config{
			APIKey: cfg.LLM.Gemini.APIKey, BaseURL: cfg.LLM.Gemini.BaseURL,
			Model: cfg.LLM.Gemini.Model, Timeout: cfg.LLM.Timeout,
		}, logger))
	}

	extractor := pdftext.NewExtractor(pdftext.Config{}, logger)
	processor := pipeline.NewProcessor(extractor, registry, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	req := pipeline.DocumentRequest{
		Data:     data,
		Filename: *file,
		MimeType: constants.MimePDF,
		Provider: requested,
	}

	var document any
	switch constants.DocumentKind(*kind) {
	case constants.DocPayslip:
		res, err := processor.ProcessPayslip(ctx, req)
		if err != nil {
			logger.Error("process payslip", "error", err)
			os.Exit(1)
		}
		document = res.Document
	case constants.DocBankStatement:
		res, err := processor.ProcessBankStatement(ctx, req)
		if err != nil {
			logger.Error("process bank statement", "error", err)
			os.Exit(1)
		}
		document = res.Document
	case constants.DocCardStatement:
		res, err := processor.ProcessCardStatement(ctx, req)
		if err != nil {
			logger.Error("process card statement", "error", err)
			os.Exit(1)
		}
		document = res.Document
	default:
		logger.Error("unknown kind", "kind", *kind)
		os.Exit(2)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(document); err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
}
