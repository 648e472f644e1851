package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rbarros/fintrack/constants"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), ":memory:", slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTransactionInsertListDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(openTestDB(t), testLogger())

	ins, err := repo.Insert(ctx, Transaction{
		Tipo:      constants.EntryReceita,
		Descricao: "CONTRACHEQUE - Subsídio",
		Valor:     decimal.RequireFromString("30000.00"),
		Data:      "2025-01-31",
		Categoria: constants.CategorySalario,
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if ins.ID == uuid.Nil {
		t.Fatal("Insert must assign an id")
	}

	got, err := repo.List(ctx, "", "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("List = %d rows, want 1", len(got))
	}
	if !got[0].Valor.Equal(decimal.RequireFromString("30000.00")) {
		t.Errorf("valor = %s, want exact decimal round-trip", got[0].Valor)
	}
	if got[0].Descricao != "CONTRACHEQUE - Subsídio" {
		t.Errorf("descricao = %q", got[0].Descricao)
	}

	if err := repo.Delete(ctx, ins.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, ins.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("second Delete err = %v, want ErrNoRows", err)
	}
}

func TestTransactionListDateRange(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(openTestDB(t), testLogger())

	for _, d := range []string{"2025-01-10", "2025-02-10", "2025-03-10"} {
		if _, err := repo.Insert(ctx, Transaction{
			Tipo: constants.EntryGasto, Descricao: "x", Valor: decimal.New(1, 0), Data: d,
		}); err != nil {
			t.Fatalf("Insert %s: %v", d, err)
		}
	}

	got, err := repo.List(ctx, "2025-02-01", "2025-02-28")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].Data != "2025-02-10" {
		t.Errorf("List in range = %+v, want only the february row", got)
	}

	all, err := repo.List(ctx, "2025-02-01", "")
	if err != nil {
		t.Fatalf("List open-ended: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("open-ended upper bound = %d rows, want 2", len(all))
	}
	if all[0].Data != "2025-03-10" {
		t.Errorf("ordering = %s first, want newest first", all[0].Data)
	}
}

func TestHistorySaveListMarkImported(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepository(openTestDB(t), testLogger())

	doc, _ := json.Marshal(map[string]any{"funcionario": "Maria"})
	saved, err := repo.Save(ctx, HistoryEntry{
		Kind:     constants.DocPayslip,
		Filename: "contracheque.pdf",
		Provider: "openai",
		Document: doc,
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.Status != constants.StatusProcessed {
		t.Errorf("default status = %s, want PROCESSED", saved.Status)
	}

	// Another kind must not leak into the payslip listing.
	if _, err := repo.Save(ctx, HistoryEntry{
		Kind: constants.DocBankStatement, Filename: "extrato.pdf", Provider: "gemini", Document: []byte("{}"),
	}); err != nil {
		t.Fatalf("Save bank: %v", err)
	}

	got, err := repo.List(ctx, constants.DocPayslip)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("List = %d rows, want 1", len(got))
	}
	var decoded map[string]any
	if err := json.Unmarshal(got[0].Document, &decoded); err != nil {
		t.Fatalf("document round-trip: %v", err)
	}
	if decoded["funcionario"] != "Maria" {
		t.Errorf("document = %v", decoded)
	}

	if err := repo.MarkImported(ctx, saved.ID); err != nil {
		t.Fatalf("MarkImported: %v", err)
	}
	got, _ = repo.List(ctx, constants.DocPayslip)
	if got[0].Status != constants.StatusImported {
		t.Errorf("status = %s, want IMPORTED", got[0].Status)
	}

	if err := repo.MarkImported(ctx, uuid.New()); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("MarkImported unknown id err = %v, want ErrNoRows", err)
	}
}

func TestProviderConfigMasking(t *testing.T) {
	ctx := context.Background()
	repo := NewProviderConfigRepository(openTestDB(t), testLogger())

	created, err := repo.Create(ctx, ProviderConfig{
		Provider: "openai",
		Model:    "gpt-4o",
		APIKey:   "sk-proj-abcdefghijklmnop",
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.APIKeyPreview != "sk-p...mnop" {
		t.Errorf("preview = %q, want sk-p...mnop", created.APIKeyPreview)
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("List = %d rows, want 1", len(got))
	}
	if got[0].APIKey != "" {
		t.Error("List must never return the full api key")
	}
	if got[0].APIKeyPreview != "sk-p...mnop" {
		t.Errorf("listed preview = %q", got[0].APIKeyPreview)
	}
	if !got[0].IsActive {
		t.Error("is_active lost in round-trip")
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, created.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("second Delete err = %v, want ErrNoRows", err)
	}
}

func TestMaskAPIKeyShortKeys(t *testing.T) {
	if got := MaskAPIKey("short"); got != "*****" {
		t.Errorf("MaskAPIKey(short) = %q", got)
	}
	if got := MaskAPIKey(""); got != "" {
		t.Errorf("MaskAPIKey(empty) = %q", got)
	}
}
