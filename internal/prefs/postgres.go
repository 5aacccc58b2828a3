package prefs

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgxpool.Pool, pgx.Conn and pgx.Tx the store uses.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

const createThemeTable = `
CREATE TABLE IF NOT EXISTS theme_preferences (
    client_id  TEXT PRIMARY KEY,
    theme      TEXT NOT NULL CHECK (theme IN ('light', 'dark')),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const selectTheme = `SELECT theme FROM theme_preferences WHERE client_id = $1`

const upsertTheme = `
INSERT INTO theme_preferences (client_id, theme, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (client_id) DO UPDATE
SET theme = EXCLUDED.theme, updated_at = EXCLUDED.updated_at`

// PostgresStore keeps preferences in the theme_preferences table.
type PostgresStore struct {
	db DBTX
}

// NewPostgresStore wraps a pool or connection.
func NewPostgresStore(db DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the preferences table if it does not exist.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, createThemeTable); err != nil {
		return fmt.Errorf("create theme_preferences: %w", err)
	}
	return nil
}

func (p *PostgresStore) Theme(ctx context.Context, clientID string) (Theme, error) {
	var raw string
	err := p.db.QueryRow(ctx, selectTheme, clientID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return DefaultTheme, nil
	}
	if err != nil {
		return "", fmt.Errorf("get theme: %w", err)
	}
	return ParseTheme(raw)
}

func (p *PostgresStore) SetTheme(ctx context.Context, clientID string, theme Theme) error {
	if _, err := p.db.Exec(ctx, upsertTheme, clientID, string(theme)); err != nil {
		return fmt.Errorf("set theme: %w", err)
	}
	return nil
}
