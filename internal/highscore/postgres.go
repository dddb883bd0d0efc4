package highscore

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const createTable = `
	CREATE TABLE IF NOT EXISTS high_scores (
		id         SERIAL PRIMARY KEY,
		score      INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// PostgresStore keeps every score in the high_scores table.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres connects, pings and creates the table if needed.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create high_scores table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (p *PostgresStore) Submit(ctx context.Context, score int) error {
	if _, err := p.db.ExecContext(ctx, `INSERT INTO high_scores (score) VALUES ($1)`, score); err != nil {
		return fmt.Errorf("failed to submit score: %w", err)
	}
	return nil
}

func (p *PostgresStore) Top(ctx context.Context, n int) ([]int, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT score FROM high_scores ORDER BY score DESC, created_at ASC LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer rows.Close()

	var scores []int
	for rows.Next() {
		var s int
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		scores = append(scores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read scores: %w", err)
	}
	return scores, nil
}

func (p *PostgresStore) Close() error {
	return p.db.Close()
}
