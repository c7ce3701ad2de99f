package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/MrJamesThe3rd/tally/internal/points"
)

// Store persists the ledger snapshot in Postgres. The whole session state
// (users, categories, rewards, pool, history) is one JSONB document in a
// single row, upserted on every checkpoint. History entries inside the
// document keep their name/color snapshots verbatim, so nothing here joins
// back to live catalog rows.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Init creates the snapshot table if it is missing.
func (s *Store) Init(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS ledger_snapshots (
			id INT PRIMARY KEY,
			data JSONB NOT NULL,
			saved_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("creating snapshot table: %w", err)
	}

	return nil
}

const snapshotRow = 1

func (s *Store) Load(ctx context.Context) (*points.Snapshot, error) {
	query := `SELECT data FROM ledger_snapshots WHERE id = $1`

	var raw []byte
	if err := s.db.QueryRowContext(ctx, query, snapshotRow).Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return nil, points.ErrNoSnapshot
		}

		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	var snap points.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}

	return &snap, nil
}

func (s *Store) Save(ctx context.Context, snap *points.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	query := `
		INSERT INTO ledger_snapshots (id, data, saved_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, saved_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, snapshotRow, raw); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	return nil
}
