package selection

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"
)

const createTable = `
	CREATE TABLE IF NOT EXISTS selections (
		id         TEXT PRIMARY KEY,
		doc        JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

// PostgresConnector stores selection documents as jsonb rows.
type PostgresConnector struct {
	dsn string
}

func NewPostgresConnector(dsn string) *PostgresConnector {
	return &PostgresConnector{dsn: dsn}
}

func (c *PostgresConnector) Connect(ctx context.Context) (DB, error) {
	if c.dsn == "" {
		return nil, fmt.Errorf("postgres: DATABASE_URL is not set")
	}
	db, err := sql.Open("postgres", c.dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	if _, err := db.ExecContext(ctx, createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("db migrate error: %w", err)
	}
	return &repo{db: db}, nil
}

type repo struct {
	db *sql.DB
}

func (r *repo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *repo) CreateDocument(ctx context.Context, doc Document) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO selections (id, doc)
		VALUES ($1, $2)
	`, doc.ID, string(b))
	return err
}

func (r *repo) Exists(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM selections WHERE id = $1)
	`, id).Scan(&ok)
	return ok, err
}

func (r *repo) Close() error {
	return r.db.Close()
}
