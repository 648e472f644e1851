// Package repository persists ledger transactions, processing histories, and
// provider configurations in SQLite.
package repository

import (
	"context"
	"database/sql"
	"log/slog"

	_ "modernc.org/sqlite"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS transactions (
	id               TEXT PRIMARY KEY,
	tipo             TEXT NOT NULL CHECK (tipo IN ('receita', 'gasto')),
	descricao        TEXT NOT NULL,
	valor            TEXT NOT NULL,
	data             TEXT NOT NULL,
	categoria        TEXT NOT NULL DEFAULT '',
	forma_pagamento  TEXT NOT NULL DEFAULT '',
	observacoes      TEXT NOT NULL DEFAULT '',
	created_at       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transactions_data ON transactions (data);

CREATE TABLE IF NOT EXISTS processing_history (
	id         TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	filename   TEXT NOT NULL,
	provider   TEXT NOT NULL,
	status     TEXT NOT NULL,
	document   TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_processing_history_kind ON processing_history (kind, created_at);

CREATE TABLE IF NOT EXISTS provider_configs (
	id              TEXT PRIMARY KEY,
	provider        TEXT NOT NULL,
	model           TEXT NOT NULL,
	api_key         TEXT NOT NULL,
	api_key_preview TEXT NOT NULL,
	is_active       INTEGER NOT NULL DEFAULT 1,
	created_at      TEXT NOT NULL
);
`

// Open opens (creating if necessary) the SQLite database at path and applies
// the schema. Use path ":memory:" for tests.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	logger.Info("db.open", "path", path)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		logger.Error("db.open_failed", "error", err)
		return nil, err
	}
	// modernc.org/sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		logger.Error("db.ping_failed", "error", err)
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		logger.Error("db.migrate_failed", "error", err)
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
