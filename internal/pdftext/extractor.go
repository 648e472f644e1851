package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rbarros/fintrack/internal/common"
)

var pdfMagic = []byte("%PDF-")

// Config for the extractor.
type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
}

// Result is the outcome of one extraction.
type Result struct {
	Text     string
	Pages    int
	Duration time.Duration
}

// Extractor renders a PDF byte stream as plain sequential text by
// concatenating every page, in page order. No OCR, no layout reconstruction:
// the output is expected to be noisy and is consumed by a language model.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// ExtractText extracts the text of every page of the given PDF bytes.
// Returns common.ErrUnsupportedFormat when the stream is not a PDF and
// common.ErrExtractionFailure when the parser errors mid-document.
func (e *Extractor) ExtractText(ctx context.Context, data []byte) (Result, error) {
	start := time.Now()

	if !bytes.HasPrefix(data, pdfMagic) {
		return Result{}, fmt.Errorf("%w: missing PDF header", common.ErrUnsupportedFormat)
	}

	tmp, err := os.CreateTemp("", "fintrack-*.pdf")
	if err != nil {
		return Result{}, fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if rmErr := os.Remove(tmp.Name()); rmErr != nil {
			e.logger.Warn("pdftext.tmp_remove_failed", "path", tmp.Name(), "error", rmErr)
		}
	}()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return Result{}, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return Result{}, fmt.Errorf("close temp file: %w", err)
	}

	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", tmp.Name(), "-")
	if err != nil {
		detail := strings.TrimSpace(string(errb))
		if detail == "" {
			detail = err.Error()
		}
		e.logger.Error("pdftext.extract_failed", "error", err, "stderr", detail)
		return Result{}, fmt.Errorf("%w: %s", common.ErrExtractionFailure, detail)
	}

	text := string(out)
	// A form-feed \f is used as page separator by default.
	pages := 1 + strings.Count(text, "\f")

	res := Result{Text: text, Pages: pages, Duration: time.Since(start)}
	e.logger.Debug("pdftext.extract_ok", "pages", pages, "bytes", len(text), "elapsed_ms", res.Duration.Milliseconds())
	return res, nil
}
