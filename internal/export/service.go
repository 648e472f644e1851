package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/rbarros/fintrack/internal/repository"
)

// Service is a tiny façade over the transaction repository that produces
// XLSX bytes for exports.
type Service struct {
	transactions repository.TransactionRepository
	logger       *slog.Logger
}

func NewService(tx repository.TransactionRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{transactions: tx, logger: logger}
}

// ExportTransactionsXLSX returns an XLSX workbook (as bytes) for the given
// date window. Empty bounds are open-ended.
func (s *Service) ExportTransactionsXLSX(ctx context.Context, from, to string) ([]byte, error) {
	start := time.Now()

	txs, err := s.transactions.List(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Transações"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// Drop excelize's default sheet so the workbook opens on ours.
	if idx, _ := f.GetSheetIndex("Sheet1"); idx != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"Data",
		"Tipo",
		"Descrição",
		"Valor",
		"Categoria",
		"Forma de Pagamento",
		"Observações",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, tx := range txs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, tx.Data)
		write(2, tx.Tipo)
		write(3, tx.Descricao)
		// Exact decimal string; spreadsheet consumers parse it locally.
		write(4, tx.Valor.StringFixed(2))
		write(5, tx.Categoria)
		write(6, tx.FormaPagamento)
		write(7, tx.Observacoes)

		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 12) // date
	_ = f.SetColWidth(sheet, "B", "B", 10) // type
	_ = f.SetColWidth(sheet, "C", "C", 40) // description
	_ = f.SetColWidth(sheet, "D", "D", 14) // amount
	_ = f.SetColWidth(sheet, "E", "E", 26) // category
	_ = f.SetColWidth(sheet, "F", "F", 20) // payment method
	_ = f.SetColWidth(sheet, "G", "G", 48) // notes

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(txs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
