package credentials

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/apexfit/apexfit-go/internal/client/migrations"
	"github.com/apexfit/apexfit-go/internal/client/models"
	"github.com/apexfit/apexfit-go/internal/dbx"
)

// SQLiteBackend stores the token pair in a single-row sqlite table.
type SQLiteBackend struct {
	db *sql.DB
}

func NewSQLiteBackend(db *sql.DB) *SQLiteBackend {
	return &SQLiteBackend{db: db}
}

// InitDatabase opens the client sqlite database at dsn and applies schema
// migrations.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

func (r *SQLiteBackend) Name() string { return "sqlite" }

func (r *SQLiteBackend) Get(ctx context.Context) (*models.Credentials, error) {
	var c models.Credentials
	err := r.db.QueryRowContext(ctx,
		`SELECT access_token, refresh_token FROM credentials WHERE id = 1`,
	).Scan(&c.AccessToken, &c.RefreshToken)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}
	return &c, nil
}

func (r *SQLiteBackend) Set(ctx context.Context, creds models.Credentials) error {
	// Single-row upsert inside a transaction keeps the pair atomic.
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO credentials (id, access_token, refresh_token) VALUES (1, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				access_token = excluded.access_token,
				refresh_token = excluded.refresh_token
		`, creds.AccessToken, creds.RefreshToken)
		if err != nil {
			return fmt.Errorf("failed to write credentials: %w", err)
		}
		return nil
	})
}

func (r *SQLiteBackend) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}
