// Package pipeline chains the extraction stages for one uploaded document:
// format gate, PDF text extraction, prompt construction, LLM dispatch,
// output decoding, and total reconciliation. Every stage failure aborts the
// document; nothing is retried.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rbarros/fintrack/constants"
	"github.com/rbarros/fintrack/internal/common"
	"github.com/rbarros/fintrack/internal/extract"
	"github.com/rbarros/fintrack/internal/llm"
	"github.com/rbarros/fintrack/internal/pdftext"
)

// TextExtractor turns PDF bytes into plain text.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte) (pdftext.Result, error)
}

// Dispatcher sends a prompt to one LLM provider.
type Dispatcher interface {
	Dispatch(ctx context.Context, prompt llm.Prompt, requested llm.Provider) (string, llm.Provider, error)
}

// DocumentRequest is one uploaded document plus processing options.
type DocumentRequest struct {
	Data     []byte
	Filename string
	MimeType string
	Provider llm.Provider // empty means no preference
}

// Processor runs the document pipeline.
type Processor struct {
	text   TextExtractor
	llm    Dispatcher
	logger *slog.Logger
}

func NewProcessor(text TextExtractor, dispatcher Dispatcher, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{text: text, llm: dispatcher, logger: logger}
}

// PayslipResult pairs the extracted document with processing metadata.
type PayslipResult struct {
	Document extract.Payslip
	Meta     Meta
}

type BankStatementResult struct {
	Document extract.BankStatement
	Meta     Meta
}

type CardStatementResult struct {
	Document extract.CardStatement
	Meta     Meta
}

// Meta describes how a document was processed.
type Meta struct {
	Provider llm.Provider
	Pages    int
	Duration time.Duration
}

func (p *Processor) ProcessPayslip(ctx context.Context, req DocumentRequest) (PayslipResult, error) {
	raw, meta, err := p.run(ctx, constants.DocPayslip, req)
	if err != nil {
		return PayslipResult{}, err
	}
	doc, err := llm.DecodePayslip(raw)
	if err != nil {
		p.logger.Error("pipeline.decode_failed", "kind", constants.DocPayslip, "file", req.Filename, "error", err)
		return PayslipResult{}, err
	}
	doc = extract.ReconcilePayslip(doc)
	doc = extract.CategorizePayslip(doc)
	p.logger.Info("pipeline.done",
		"kind", constants.DocPayslip, "file", req.Filename,
		"provider", meta.Provider,
		"creditos", len(doc.RubricasCreditos), "debitos", len(doc.RubricasDebitos),
		"elapsed_ms", meta.Duration.Milliseconds(),
	)
	return PayslipResult{Document: doc, Meta: meta}, nil
}

func (p *Processor) ProcessBankStatement(ctx context.Context, req DocumentRequest) (BankStatementResult, error) {
	raw, meta, err := p.run(ctx, constants.DocBankStatement, req)
	if err != nil {
		return BankStatementResult{}, err
	}
	doc, err := llm.DecodeBankStatement(raw)
	if err != nil {
		p.logger.Error("pipeline.decode_failed", "kind", constants.DocBankStatement, "file", req.Filename, "error", err)
		return BankStatementResult{}, err
	}
	doc = extract.ReconcileBankStatement(doc)
	p.logger.Info("pipeline.done",
		"kind", constants.DocBankStatement, "file", req.Filename,
		"provider", meta.Provider,
		"transacoes", doc.TotalTransacoes,
		"elapsed_ms", meta.Duration.Milliseconds(),
	)
	return BankStatementResult{Document: doc, Meta: meta}, nil
}

func (p *Processor) ProcessCardStatement(ctx context.Context, req DocumentRequest) (CardStatementResult, error) {
	raw, meta, err := p.run(ctx, constants.DocCardStatement, req)
	if err != nil {
		return CardStatementResult{}, err
	}
	doc, err := llm.DecodeCardStatement(raw)
	if err != nil {
		p.logger.Error("pipeline.decode_failed", "kind", constants.DocCardStatement, "file", req.Filename, "error", err)
		return CardStatementResult{}, err
	}
	doc = extract.ReconcileCardStatement(doc)
	p.logger.Info("pipeline.done",
		"kind", constants.DocCardStatement, "file", req.Filename,
		"provider", meta.Provider,
		"transacoes", doc.TotalTransacoes,
		"elapsed_ms", meta.Duration.Milliseconds(),
	)
	return CardStatementResult{Document: doc, Meta: meta}, nil
}

// run executes the stages shared by all three document kinds and returns the
// raw model output.
func (p *Processor) run(ctx context.Context, kind constants.DocumentKind, req DocumentRequest) (string, Meta, error) {
	start := time.Now()

	p.logger.Info("pipeline.start",
		"kind", kind, "file", req.Filename,
		"bytes", len(req.Data), "mime", req.MimeType, "provider", req.Provider,
	)

	// The declared content type is checked before the byte sniff so a caller
	// mislabeling a PDF gets the same error as one uploading a real non-PDF.
	if req.MimeType != constants.MimePDF {
		return "", Meta{}, fmt.Errorf("%w: mime type %q", common.ErrUnsupportedFormat, req.MimeType)
	}

	res, err := p.text.ExtractText(ctx, req.Data)
	if err != nil {
		p.logger.Error("pipeline.extract_failed", "kind", kind, "file", req.Filename, "error", err)
		return "", Meta{}, err
	}

	prompt := llm.BuildPrompt(kind, req.Filename, res.Text)
	if prompt.Truncated {
		p.logger.Warn("pipeline.text_truncated", "kind", kind, "file", req.Filename, "pages", res.Pages)
	}

	raw, provider, err := p.llm.Dispatch(ctx, prompt, req.Provider)
	if err != nil {
		return "", Meta{}, err
	}

	return raw, Meta{Provider: provider, Pages: res.Pages, Duration: time.Since(start)}, nil
}
