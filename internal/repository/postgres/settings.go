package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Pesokrava/ratingfy/internal/domain"
)

// SettingsRepository implements domain.SettingsRepository for PostgreSQL.
// Rows live in a flat key/value table keyed by credential + suffix.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository creates a new PostgreSQL settings repository
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the raw value of one key
func (r *SettingsRepository) Get(ctx context.Context, credential, suffix string) (string, bool, error) {
	var value string
	err := r.db.GetContext(ctx, &value, `SELECT value FROM settings WHERE key = $1`, domain.SettingKey(credential, suffix))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}

	return value, true, nil
}

// GetAll loads the five keys of a credential, defaulting the missing ones
func (r *SettingsRepository) GetAll(ctx context.Context, credential string) (domain.Settings, error) {
	var settings domain.Settings

	rows, err := r.db.QueryxContext(ctx, `SELECT key, value FROM settings WHERE key = ANY($1)`, pq.Array(domain.SettingKeys(credential)))
	if err != nil {
		return settings, err
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return settings, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings.Set(strings.TrimPrefix(key, credential), value)
	}
	if err := rows.Err(); err != nil {
		return settings, err
	}

	settings.ApplyDefaults()
	return settings, nil
}

// UpsertAll writes all five keys in one statement
func (r *SettingsRepository) UpsertAll(ctx context.Context, credential string, settings domain.Settings) error {
	return upsertSettings(ctx, r.db, credential, settings)
}

func upsertSettings(ctx context.Context, exec sqlx.ExecerContext, credential string, settings domain.Settings) error {
	entries := settings.Entries()
	keys := domain.SettingKeys(credential)
	values := make([]string, 0, len(keys))
	for _, suffix := range domain.SettingSuffixes {
		values = append(values, entries[suffix])
	}

	query := `
		INSERT INTO settings (key, value)
		SELECT * FROM unnest($1::text[], $2::text[])
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`

	if _, err := exec.ExecContext(ctx, query, pq.Array(keys), pq.Array(values)); err != nil {
		return fmt.Errorf("failed to upsert settings: %w", err)
	}
	return nil
}
