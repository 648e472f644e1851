// Package ledger turns extracted documents into stored transactions and
// processing history.
package ledger

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rbarros/fintrack/constants"
	"github.com/rbarros/fintrack/internal/common"
	"github.com/rbarros/fintrack/internal/extract"
	"github.com/rbarros/fintrack/internal/repository"
)

// Service persists extraction results.
type Service struct {
	transactions repository.TransactionRepository
	history      repository.HistoryRepository
	logger       *slog.Logger
}

func NewService(tx repository.TransactionRepository, hist repository.HistoryRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{transactions: tx, history: hist, logger: logger}
}

// Record stores one processed document in the history. The document is kept
// as JSON verbatim so past extractions can be re-rendered or imported later.
func (s *Service) Record(ctx context.Context, kind constants.DocumentKind, filename, provider string, document any) (repository.HistoryEntry, error) {
	raw, err := json.Marshal(document)
	if err != nil {
		return repository.HistoryEntry{}, common.WrapError(err, "marshal document")
	}
	entry, err := s.history.Save(ctx, repository.HistoryEntry{
		Kind:     kind,
		Filename: filename,
		Provider: provider,
		Document: raw,
	})
	if err != nil {
		return repository.HistoryEntry{}, common.WrapError(err, "save history")
	}
	s.logger.Info("ledger.history_recorded", "kind", kind, "file", filename, "id", entry.ID)
	return entry, nil
}

// History lists processed documents of one kind, newest first.
func (s *Service) History(ctx context.Context, kind constants.DocumentKind) ([]repository.HistoryEntry, error) {
	return s.history.List(ctx, kind)
}

// Transactions lists stored ledger entries in the optional [from, to] date
// range (YYYY-MM-DD, inclusive).
func (s *Service) Transactions(ctx context.Context, from, to string) ([]repository.Transaction, error) {
	return s.transactions.List(ctx, from, to)
}

// DeleteTransaction removes one ledger entry.
func (s *Service) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return s.transactions.Delete(ctx, id)
}

// ImportRequest asks for a payslip's rubricas to become ledger entries.
// HistoryID, when set, marks the originating history row as imported.
type ImportRequest struct {
	Filename  string
	HistoryID uuid.UUID
	Payslip   extract.Payslip
}

// ImportResult summarizes one payslip import.
type ImportResult struct {
	Created       int             `json:"transacoes_criadas"`
	Skipped       int             `json:"rubricas_ignoradas"`
	TotalReceitas decimal.Decimal `json:"total_receitas"`
	TotalGastos   decimal.Decimal `json:"total_gastos"`
}

// ImportPayslip creates one receita per credit rubrica and one gasto per
// debit rubrica. Rubricas with a non-positive amount are skipped, not
// errored: models occasionally emit zero-value informational lines.
func (s *Service) ImportPayslip(ctx context.Context, req ImportRequest) (ImportResult, error) {
	// Entries are dated on the day of the import, not the payslip's own
	// period: the ledger tracks when money moved into it.
	date := time.Now().Format("2006-01-02")
	var res ImportResult

	for _, rub := range req.Payslip.RubricasCreditos {
		if !rub.Valor.IsPositive() {
			res.Skipped++
			continue
		}
		tx := repository.Transaction{
			Tipo:        constants.EntryReceita,
			Descricao:   "CONTRACHEQUE - " + rub.Descricao,
			Valor:       rub.Valor,
			Data:        date,
			Categoria:   extract.Categorize(rub.Descricao, extract.BucketCredit),
			Observacoes: "Importado de contracheque - " + req.Filename,
		}
		if _, err := s.transactions.Insert(ctx, tx); err != nil {
			return ImportResult{}, common.WrapError(err, "insert receita")
		}
		res.Created++
		res.TotalReceitas = res.TotalReceitas.Add(rub.Valor)
	}

	for _, rub := range req.Payslip.RubricasDebitos {
		if !rub.Valor.IsPositive() {
			res.Skipped++
			continue
		}
		tx := repository.Transaction{
			Tipo:           constants.EntryGasto,
			Descricao:      "CONTRACHEQUE - " + rub.Descricao,
			Valor:          rub.Valor,
			Data:           date,
			Categoria:      extract.Categorize(rub.Descricao, extract.BucketDebit),
			FormaPagamento: "conta_corrente",
			Observacoes:    "Importado de contracheque - " + req.Filename,
		}
		if _, err := s.transactions.Insert(ctx, tx); err != nil {
			return ImportResult{}, common.WrapError(err, "insert gasto")
		}
		res.Created++
		res.TotalGastos = res.TotalGastos.Add(rub.Valor)
	}

	if req.HistoryID != uuid.Nil {
		if err := s.history.MarkImported(ctx, req.HistoryID); err != nil {
			s.logger.Warn("ledger.mark_imported_failed", "id", req.HistoryID, "error", err)
		}
	}

	s.logger.Info("ledger.payslip_imported",
		"file", req.Filename, "created", res.Created, "skipped", res.Skipped,
		"receitas", res.TotalReceitas, "gastos", res.TotalGastos,
	)
	return res, nil
}
