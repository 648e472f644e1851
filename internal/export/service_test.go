package export

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/rbarros/fintrack/constants"
	"github.com/rbarros/fintrack/internal/repository"
)

type fakeTransactions struct {
	rows    []repository.Transaction
	gotFrom string
	gotTo   string
}

func (f *fakeTransactions) Insert(_ context.Context, tx repository.Transaction) (repository.Transaction, error) {
	return tx, nil
}

func (f *fakeTransactions) List(_ context.Context, from, to string) ([]repository.Transaction, error) {
	f.gotFrom, f.gotTo = from, to
	return f.rows, nil
}

func (f *fakeTransactions) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func TestExportTransactionsXLSX(t *testing.T) {
	repo := &fakeTransactions{rows: []repository.Transaction{
		{
			Tipo:      constants.EntryReceita,
			Descricao: "CONTRACHEQUE - Subsídio",
			Valor:     decimal.RequireFromString("30000.5"),
			Data:      "2025-01-31",
			Categoria: constants.CategorySalario,
		},
		{
			Tipo:           constants.EntryGasto,
			Descricao:      "CONTRACHEQUE - Plano de Saúde",
			Valor:          decimal.RequireFromString("1200.00"),
			Data:           "2025-01-31",
			Categoria:      constants.CategorySaude,
			FormaPagamento: "conta_corrente",
		},
	}}
	svc := NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	out, err := svc.ExportTransactionsXLSX(context.Background(), "2025-01-01", "2025-01-31")
	if err != nil {
		t.Fatalf("ExportTransactionsXLSX: %v", err)
	}
	if repo.gotFrom != "2025-01-01" || repo.gotTo != "2025-01-31" {
		t.Errorf("date range not forwarded: %q..%q", repo.gotFrom, repo.gotTo)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("open produced workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Transações")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "Data" || rows[0][3] != "Valor" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][2] != "CONTRACHEQUE - Subsídio" {
		t.Errorf("row 1 descricao = %q", rows[1][2])
	}
	if rows[1][3] != "30000.50" {
		t.Errorf("row 1 valor = %q, want fixed two decimals", rows[1][3])
	}
	if rows[2][5] != "conta_corrente" {
		t.Errorf("row 2 forma_pagamento = %q", rows[2][5])
	}
}

func TestExportEmptyLedger(t *testing.T) {
	svc := NewService(&fakeTransactions{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	out, err := svc.ExportTransactionsXLSX(context.Background(), "", "")
	if err != nil {
		t.Fatalf("ExportTransactionsXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("open produced workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Transações")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("rows = %d, want header only", len(rows))
	}
}
