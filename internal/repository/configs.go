package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProviderConfig is a stored provider credential. The full key never leaves
// the repository: listings carry only the masked preview.
type ProviderConfig struct {
	ID            uuid.UUID `json:"id"`
	Provider      string    `json:"provider"`
	Model         string    `json:"model"`
	APIKey        string    `json:"-"`
	APIKeyPreview string    `json:"api_key_preview"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

type ProviderConfigRepository interface {
	Create(ctx context.Context, cfg ProviderConfig) (ProviderConfig, error)
	List(ctx context.Context) ([]ProviderConfig, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type providerConfigRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewProviderConfigRepository(db *sql.DB, logger *slog.Logger) ProviderConfigRepository {
	return &providerConfigRepository{db: db, logger: logger}
}

// MaskAPIKey renders a key as its first 4 and last 4 characters with the
// middle elided. Keys too short to mask meaningfully come back fully elided.
func MaskAPIKey(key string) string {
	runes := []rune(key)
	if len(runes) <= 8 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:4]) + "..." + string(runes[len(runes)-4:])
}

func (r *providerConfigRepository) Create(ctx context.Context, cfg ProviderConfig) (ProviderConfig, error) {
	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = time.Now().UTC()
	}
	cfg.APIKeyPreview = MaskAPIKey(cfg.APIKey)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO provider_configs (id, provider, model, api_key, api_key_preview, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		cfg.ID.String(), cfg.Provider, cfg.Model, cfg.APIKey, cfg.APIKeyPreview,
		boolToInt(cfg.IsActive), cfg.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		r.logger.Error("provider_configs.create_failed", "provider", cfg.Provider, "error", err)
		return ProviderConfig{}, err
	}
	return cfg, nil
}

// List returns stored configs with the APIKey field cleared; only the
// preview survives.
func (r *providerConfigRepository) List(ctx context.Context) ([]ProviderConfig, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, provider, model, api_key_preview, is_active, created_at
		FROM provider_configs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProviderConfig
	for rows.Next() {
		var c ProviderConfig
		var id, createdAt string
		var active int
		if err := rows.Scan(&id, &c.Provider, &c.Model, &c.APIKeyPreview, &active, &createdAt); err != nil {
			return nil, err
		}
		if c.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		c.IsActive = active != 0
		if c.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *providerConfigRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM provider_configs WHERE id = ?`, id.String())
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

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
