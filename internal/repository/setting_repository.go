package repository

import (
	"context"
	"database/sql"
	"fmt"

	"storefront/internal/domain"
)

// SettingRepository defines the interface for key/value setting storage
type SettingRepository interface {
	Upsert(ctx context.Context, key, value string) error
	ListByPrefix(ctx context.Context, prefix string) ([]domain.Setting, error)
}

type settingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new instance of SettingRepository
func NewSettingRepository(db *sql.DB) SettingRepository {
	return &settingRepository{db: db}
}

// Upsert stores a setting, replacing any existing value for the key
func (r *settingRepository) Upsert(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to upsert setting: %w", err)
	}

	return nil
}

// ListByPrefix retrieves all settings whose key starts with the prefix
func (r *settingRepository) ListByPrefix(ctx context.Context, prefix string) ([]domain.Setting, error) {
	query := `
		SELECT key, value
		FROM settings
		WHERE key LIKE $1 || '%'
		ORDER BY key ASC
	`

	rows, err := r.db.QueryContext(ctx, query, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	settings := []domain.Setting{}
	for rows.Next() {
		setting := domain.Setting{}
		if err := rows.Scan(&setting.Key, &setting.Value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings = append(settings, setting)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settings: %w", err)
	}

	return settings, nil
}
