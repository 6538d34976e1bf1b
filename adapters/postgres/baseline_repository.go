package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"growthcast/domain/core"
	"growthcast/domain/forecast"
	"growthcast/ports"
)

const baselineSchema = `
CREATE TABLE IF NOT EXISTS baselines (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	document   JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

// baselineRepository implements the BaselineRepository interface
type baselineRepository struct {
	db *sqlx.DB
}

// Connect opens the database and ensures the baselines schema exists.
func Connect(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if _, err := db.Exec(baselineSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure baselines schema: %w", err)
	}
	return db, nil
}

// NewBaselineRepository creates a new baseline repository
func NewBaselineRepository(db *sqlx.DB) ports.BaselineRepository {
	return &baselineRepository{db: db}
}

// Save upserts a named baseline document
func (r *baselineRepository) Save(ctx context.Context, b *ports.NamedBaseline) error {
	if b.ID == "" {
		b.ID = core.BaselineID(core.NewID())
	}
	document, err := json.Marshal(b.Dataset)
	if err != nil {
		return fmt.Errorf("failed to marshal baseline: %w", err)
	}

	query := `INSERT INTO baselines (id, name, document, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (name) DO UPDATE SET document = $3, updated_at = $4`

	if _, err := r.db.ExecContext(ctx, query, b.ID, b.Name, document, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save baseline %q: %w", b.Name, err)
	}
	return nil
}

// GetByName retrieves a baseline by its name
func (r *baselineRepository) GetByName(ctx context.Context, name string) (*ports.NamedBaseline, error) {
	var row struct {
		ID       string `db:"id"`
		Name     string `db:"name"`
		Document []byte `db:"document"`
	}
	query := `SELECT id, name, document FROM baselines WHERE name = $1`
	if err := r.db.GetContext(ctx, &row, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", core.ErrBaselineNotFound, name)
		}
		return nil, fmt.Errorf("failed to get baseline %q: %w", name, err)
	}

	var dataset forecast.BaselineDataset
	if err := json.Unmarshal(row.Document, &dataset); err != nil {
		return nil, fmt.Errorf("failed to unmarshal baseline %q: %w", name, err)
	}
	return &ports.NamedBaseline{
		ID:      core.BaselineID(row.ID),
		Name:    row.Name,
		Dataset: dataset,
	}, nil
}

// List returns every stored baseline, newest first
func (r *baselineRepository) List(ctx context.Context) ([]ports.NamedBaseline, error) {
	var rows []struct {
		ID       string `db:"id"`
		Name     string `db:"name"`
		Document []byte `db:"document"`
	}
	query := `SELECT id, name, document FROM baselines ORDER BY updated_at DESC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list baselines: %w", err)
	}

	out := make([]ports.NamedBaseline, 0, len(rows))
	for _, row := range rows {
		var dataset forecast.BaselineDataset
		if err := json.Unmarshal(row.Document, &dataset); err != nil {
			return nil, fmt.Errorf("failed to unmarshal baseline %q: %w", row.Name, err)
		}
		out = append(out, ports.NamedBaseline{
			ID:      core.BaselineID(row.ID),
			Name:    row.Name,
			Dataset: dataset,
		})
	}
	return out, nil
}

// Delete removes a baseline by name
func (r *baselineRepository) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM baselines WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("failed to delete baseline %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", core.ErrBaselineNotFound, name)
	}
	return nil
}
