package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is one ledger entry. Valor is stored as its exact decimal
// string, never as a float column.
type Transaction struct {
	ID             uuid.UUID       `json:"id"`
	Tipo           string          `json:"tipo"` // receita | gasto
	Descricao      string          `json:"descricao"`
	Valor          decimal.Decimal `json:"valor"`
	Data           string          `json:"data"` // YYYY-MM-DD
	Categoria      string          `json:"categoria"`
	FormaPagamento string          `json:"forma_pagamento,omitempty"`
	Observacoes    string          `json:"observacoes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

type TransactionRepository interface {
	Insert(ctx context.Context, tx Transaction) (Transaction, error)
	List(ctx context.Context, from, to string) ([]Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type transactionRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewTransactionRepository(db *sql.DB, logger *slog.Logger) TransactionRepository {
	return &transactionRepository{db: db, logger: logger}
}

func (r *transactionRepository) Insert(ctx context.Context, tx Transaction) (Transaction, error) {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (id, tipo, descricao, valor, data, categoria, forma_pagamento, observacoes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID.String(), tx.Tipo, tx.Descricao, tx.Valor.String(), tx.Data,
		tx.Categoria, tx.FormaPagamento, tx.Observacoes, tx.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		r.logger.Error("transactions.insert_failed", "error", err)
		return Transaction{}, err
	}
	return tx, nil
}

// List returns transactions ordered by date, newest first. Empty from/to
// leave the corresponding bound open.
func (r *transactionRepository) List(ctx context.Context, from, to string) ([]Transaction, error) {
	q := `SELECT id, tipo, descricao, valor, data, categoria, forma_pagamento, observacoes, created_at
		FROM transactions WHERE 1=1`
	var args []any
	if from != "" {
		q += " AND data >= ?"
		args = append(args, from)
	}
	if to != "" {
		q += " AND data <= ?"
		args = append(args, to)
	}
	q += " ORDER BY data DESC, created_at DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanTransaction(rows *sql.Rows) (Transaction, error) {
	var tx Transaction
	var id, valor, createdAt string
	if err := rows.Scan(&id, &tx.Tipo, &tx.Descricao, &valor, &tx.Data,
		&tx.Categoria, &tx.FormaPagamento, &tx.Observacoes, &createdAt); err != nil {
		return Transaction{}, err
	}
	var err error
	if tx.ID, err = uuid.Parse(id); err != nil {
		return Transaction{}, err
	}
	if tx.Valor, err = decimal.NewFromString(valor); err != nil {
		return Transaction{}, err
	}
	if tx.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}
