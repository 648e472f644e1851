package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rbarros/fintrack/constants"
)

// HistoryEntry records one processed document. Document holds the full
// extracted structure as JSON so the frontend can re-render past results
// without reprocessing the file.
type HistoryEntry struct {
	ID        uuid.UUID                  `json:"id"`
	Kind      constants.DocumentKind     `json:"kind"`
	Filename  string                     `json:"filename"`
	Provider  string                     `json:"provider"`
	Status    constants.ProcessingStatus `json:"status"`
	Document  json.RawMessage            `json:"document"`
	CreatedAt time.Time                  `json:"created_at"`
}

type HistoryRepository interface {
	Save(ctx context.Context, entry HistoryEntry) (HistoryEntry, error)
	List(ctx context.Context, kind constants.DocumentKind) ([]HistoryEntry, error)
	MarkImported(ctx context.Context, id uuid.UUID) error
}

type historyRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewHistoryRepository(db *sql.DB, logger *slog.Logger) HistoryRepository {
	return &historyRepository{db: db, logger: logger}
}

func (r *historyRepository) Save(ctx context.Context, entry HistoryEntry) (HistoryEntry, error) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if entry.Status == "" {
		entry.Status = constants.StatusProcessed
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO processing_history (id, kind, filename, provider, status, document, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID.String(), string(entry.Kind), entry.Filename, entry.Provider,
		string(entry.Status), string(entry.Document), entry.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		r.logger.Error("history.save_failed", "kind", entry.Kind, "error", err)
		return HistoryEntry{}, err
	}
	return entry, nil
}

func (r *historyRepository) List(ctx context.Context, kind constants.DocumentKind) ([]HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, kind, filename, provider, status, document, created_at
		FROM processing_history WHERE kind = ? ORDER BY created_at DESC`,
		string(kind),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var id, kind, status, document, createdAt string
		if err := rows.Scan(&id, &kind, &e.Filename, &e.Provider, &status, &document, &createdAt); err != nil {
			return nil, err
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		e.Kind = constants.DocumentKind(kind)
		e.Status = constants.ProcessingStatus(status)
		e.Document = json.RawMessage(document)
		if e.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *historyRepository) MarkImported(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE processing_history SET status = ? WHERE id = ?`,
		string(constants.StatusImported), id.String(),
	)
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
