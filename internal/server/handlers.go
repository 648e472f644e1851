package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rbarros/fintrack/constants"
	"github.com/rbarros/fintrack/internal/common"
	"github.com/rbarros/fintrack/internal/extract"
	"github.com/rbarros/fintrack/internal/ledger"
	"github.com/rbarros/fintrack/internal/llm"
	"github.com/rbarros/fintrack/internal/pipeline"
	"github.com/rbarros/fintrack/internal/repository"
)

// DocumentProcessor runs the extraction pipeline for one uploaded document.
type DocumentProcessor interface {
	ProcessPayslip(ctx context.Context, req pipeline.DocumentRequest) (pipeline.PayslipResult, error)
	ProcessBankStatement(ctx context.Context, req pipeline.DocumentRequest) (pipeline.BankStatementResult, error)
	ProcessCardStatement(ctx context.Context, req pipeline.DocumentRequest) (pipeline.CardStatementResult, error)
}

// Ledger persists extraction results and serves stored data.
type Ledger interface {
	Record(ctx context.Context, kind constants.DocumentKind, filename, provider string, document any) (repository.HistoryEntry, error)
	History(ctx context.Context, kind constants.DocumentKind) ([]repository.HistoryEntry, error)
	Transactions(ctx context.Context, from, to string) ([]repository.Transaction, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
	ImportPayslip(ctx context.Context, req ledger.ImportRequest) (ledger.ImportResult, error)
}

// Exporter renders stored transactions as a workbook.
type Exporter interface {
	ExportTransactionsXLSX(ctx context.Context, from, to string) ([]byte, error)
}

// Handler carries the HTTP endpoints.
type Handler struct {
	processor DocumentProcessor
	ledger    Ledger
	exporter  Exporter
	configs   repository.ProviderConfigRepository

	maxUpload int64
	logger    *slog.Logger
}

func NewHandler(
	processor DocumentProcessor,
	ldg Ledger,
	exporter Exporter,
	configs repository.ProviderConfigRepository,
	maxUpload int64,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		processor: processor,
		ledger:    ldg,
		exporter:  exporter,
		configs:   configs,
		maxUpload: maxUpload,
		logger:    logger,
	}
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// upload reads the "arquivo" multipart field and the optional "provider"
// form value, enforcing the size gate before the file is even read.
func (h *Handler) upload(c echo.Context) (pipeline.DocumentRequest, error) {
	fh, err := c.FormFile("arquivo")
	if err != nil {
		return pipeline.DocumentRequest{}, echo.NewHTTPError(http.StatusBadRequest, "campo 'arquivo' é obrigatório")
	}
	if fh.Size > h.maxUpload {
		return pipeline.DocumentRequest{}, echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("arquivo excede o limite de %d bytes", h.maxUpload))
	}

	provider, err := llm.ParseProvider(c.FormValue("provider"))
	if err != nil {
		return pipeline.DocumentRequest{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	f, err := fh.Open()
	if err != nil {
		return pipeline.DocumentRequest{}, echo.NewHTTPError(http.StatusBadRequest, "não foi possível ler o arquivo")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUpload+1))
	if err != nil {
		return pipeline.DocumentRequest{}, echo.NewHTTPError(http.StatusBadRequest, "não foi possível ler o arquivo")
	}
	if int64(len(data)) > h.maxUpload {
		return pipeline.DocumentRequest{}, echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("arquivo excede o limite de %d bytes", h.maxUpload))
	}

	return pipeline.DocumentRequest{
		Data:     data,
		Filename: fh.Filename,
		MimeType: fh.Header.Get("Content-Type"),
		Provider: provider,
	}, nil
}

func (h *Handler) ProcessPayslip(c echo.Context) error {
	req, err := h.upload(c)
	if err != nil {
		return err
	}
	res, err := h.processor.ProcessPayslip(c.Request().Context(), req)
	if err != nil {
		return pipelineHTTPError(err)
	}
	entry, err := h.ledger.Record(c.Request().Context(), constants.DocPayslip, req.Filename, string(res.Meta.Provider), res.Document)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, processResponse{
		HistoryID: entry.ID,
		Provider:  string(res.Meta.Provider),
		Pages:     res.Meta.Pages,
		Document:  res.Document,
	})
}

func (h *Handler) ProcessBankStatement(c echo.Context) error {
	req, err := h.upload(c)
	if err != nil {
		return err
	}
	res, err := h.processor.ProcessBankStatement(c.Request().Context(), req)
	if err != nil {
		return pipelineHTTPError(err)
	}
	entry, err := h.ledger.Record(c.Request().Context(), constants.DocBankStatement, req.Filename, string(res.Meta.Provider), res.Document)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, processResponse{
		HistoryID: entry.ID,
		Provider:  string(res.Meta.Provider),
		Pages:     res.Meta.Pages,
		Document:  res.Document,
	})
}

func (h *Handler) ProcessCardStatement(c echo.Context) error {
	req, err := h.upload(c)
	if err != nil {
		return err
	}
	res, err := h.processor.ProcessCardStatement(c.Request().Context(), req)
	if err != nil {
		return pipelineHTTPError(err)
	}
	entry, err := h.ledger.Record(c.Request().Context(), constants.DocCardStatement, req.Filename, string(res.Meta.Provider), res.Document)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, processResponse{
		HistoryID: entry.ID,
		Provider:  string(res.Meta.Provider),
		Pages:     res.Meta.Pages,
		Document:  res.Document,
	})
}

type processResponse struct {
	HistoryID uuid.UUID `json:"history_id"`
	Provider  string    `json:"provider"`
	Pages     int       `json:"paginas"`
	Document  any       `json:"documento"`
}

type importPayslipRequest struct {
	Filename  string          `json:"arquivo" validate:"required"`
	HistoryID uuid.UUID       `json:"history_id"`
	Payslip   extract.Payslip `json:"contracheque" validate:"required"`
}

func (h *Handler) ImportPayslip(c echo.Context) error {
	var req importPayslipRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corpo inválido")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.ledger.ImportPayslip(c.Request().Context(), ledger.ImportRequest{
		Filename:  req.Filename,
		HistoryID: req.HistoryID,
		Payslip:   req.Payslip,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) PayslipHistory(c echo.Context) error {
	return h.history(c, constants.DocPayslip)
}

func (h *Handler) BankStatementHistory(c echo.Context) error {
	return h.history(c, constants.DocBankStatement)
}

func (h *Handler) CardStatementHistory(c echo.Context) error {
	return h.history(c, constants.DocCardStatement)
}

func (h *Handler) history(c echo.Context, kind constants.DocumentKind) error {
	entries, err := h.ledger.History(c.Request().Context(), kind)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if entries == nil {
		entries = []repository.HistoryEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *Handler) ListTransactions(c echo.Context) error {
	txs, err := h.ledger.Transactions(c.Request().Context(), c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if txs == nil {
		txs = []repository.Transaction{}
	}
	return c.JSON(http.StatusOK, txs)
}

func (h *Handler) DeleteTransaction(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id inválido")
	}
	if err := h.ledger.DeleteTransaction(c.Request().Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "transação não encontrada")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

type createProviderConfigRequest struct {
	Provider string `json:"provider" validate:"required,oneof=openai anthropic gemini"`
	Model    string `json:"model" validate:"required"`
	APIKey   string `json:"api_key" validate:"required"`
	IsActive bool   `json:"is_active"`
}

func (h *Handler) CreateProviderConfig(c echo.Context) error {
	var req createProviderConfigRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "corpo inválido")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cfg, err := h.configs.Create(c.Request().Context(), repository.ProviderConfig{
		Provider: req.Provider,
		Model:    req.Model,
		APIKey:   req.APIKey,
		IsActive: req.IsActive,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	// Never echo the credential back.
	cfg.APIKey = ""
	return c.JSON(http.StatusCreated, cfg)
}

func (h *Handler) ListProviderConfigs(c echo.Context) error {
	cfgs, err := h.configs.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if cfgs == nil {
		cfgs = []repository.ProviderConfig{}
	}
	return c.JSON(http.StatusOK, cfgs)
}

func (h *Handler) DeleteProviderConfig(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id inválido")
	}
	if err := h.configs.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "configuração não encontrada")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ExportXLSX(c echo.Context) error {
	out, err := h.exporter.ExportTransactionsXLSX(c.Request().Context(), c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="transacoes.xlsx"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", out)
}

// pipelineHTTPError maps pipeline failures to HTTP status codes. The error
// text is forwarded so the caller can see which stage and provider failed.
func pipelineHTTPError(err error) error {
	switch {
	case errors.Is(err, common.ErrUnsupportedFormat):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrNoProviderAvailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, common.ErrProviderCall),
		errors.Is(err, common.ErrExtractionFailure),
		errors.Is(err, common.ErrMalformedModelOutput):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
