package sink

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/optimode/mxsweep/types"
)

// Postgres stores verdicts in an email_checks table. The schema is kept
// deliberately flat so external tools can query the email and status
// columns directly. database/sql serializes each INSERT on its own
// connection, so concurrent workers need no additional locking here.
type Postgres struct {
	db *sql.DB
}

// NewPostgres opens a connection pool for the given DSN, verifies it, and
// creates the schema if it does not exist yet.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("newPostgres: error opening database: %w", err)
	}

	if err = db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("newPostgres: error verifying database connection: %w", err)
	}

	if err = createIfNotExists(ctx, db); err != nil {
		return nil, fmt.Errorf("newPostgres: error creating database structure: %w", err)
	}
	return &Postgres{db: db}, nil
}

func createIfNotExists(ctx context.Context, db *sql.DB) error {
	createTablesQuery := `
		CREATE TABLE IF NOT EXISTS email_checks (
			id BIGSERIAL PRIMARY KEY,
			email TEXT NOT NULL,
			status TEXT NOT NULL,
			checked_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_email_checks_email ON email_checks(email);`

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("createIfNotExists: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, createTablesQuery); err != nil {
		return fmt.Errorf("createIfNotExists: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("createIfNotExists: %w", err)
	}
	return nil
}

// Write appends one verdict row.
func (p *Postgres) Write(ctx context.Context, v types.Verdict) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO email_checks (email, status, checked_at) VALUES ($1, $2, $3)`,
		v.Email, v.Status, v.CheckedAt)
	if err != nil {
		return fmt.Errorf("write: error inserting verdict: %w", err)
	}
	return nil
}

// Query returns stored verdicts matching the criteria, oldest first.
func (p *Postgres) Query(ctx context.Context, c Criteria) ([]types.Verdict, error) {
	query := `SELECT email, status, checked_at FROM email_checks
		WHERE ($1 = '' OR email = $1) AND ($2 = '' OR status = $2)
		ORDER BY id`

	rows, err := p.db.QueryContext(ctx, query, c.Email, c.Status)
	if err != nil {
		return nil, fmt.Errorf("query: error selecting verdicts: %w", err)
	}
	defer rows.Close()

	var out []types.Verdict
	for rows.Next() {
		var v types.Verdict
		if err = rows.Scan(&v.Email, &v.Status, &v.CheckedAt); err != nil {
			return nil, fmt.Errorf("query: error scanning row: %w", err)
		}
		out = append(out, v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("query: rows error: %w", err)
	}
	return out, nil
}

// Summary returns the stored record count per status.
func (p *Postgres) Summary(ctx context.Context) (map[types.Status]int, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM email_checks GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("summary: error selecting counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[types.Status]int)
	for rows.Next() {
		var status types.Status
		var count int
		if err = rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("summary: error scanning row: %w", err)
		}
		counts[status] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("summary: rows error: %w", err)
	}
	return counts, nil
}

// Close releases the underlying connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}
