package player

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/KirkDiggler/rpg-forms/internal/entities"
	"github.com/KirkDiggler/rpg-forms/internal/errors"
	"github.com/KirkDiggler/rpg-forms/internal/pkg/clock"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS player_records (
	entity_id TEXT PRIMARY KEY,
	payload BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteConfig contains configuration for the SQLite player repository.
type SQLiteConfig struct {
	// Path is the database file
	Path  string
	Clock clock.Clock
}

// Validate validates the SQLiteConfig.
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if strings.TrimSpace(cfg.Path) == "" {
		return errors.InvalidArgument("path cannot be empty")
	}
	return nil
}

// SQLiteRepository stores each record as a JSON payload in one table
type SQLiteRepository struct {
	db    *sql.DB
	clock clock.Clock
}

// NewSQLite opens the database at cfg.Path and creates the schema
func NewSQLite(ctx context.Context, cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	dsn := cfg.Path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sqlite database")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to ping sqlite database")
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to create player_records table")
	}

	return &SQLiteRepository{db: db, clock: c}, nil
}

// Close closes the database handle
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Get retrieves a record by entity ID
func (r *SQLiteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.EntityID == "" {
		return nil, errors.InvalidArgument(errEntityIDEmpty)
	}

	var payload []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM player_records WHERE entity_id = ?`,
		input.EntityID,
	).Scan(&payload)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundf("player record %s not found", input.EntityID)
		}
		return nil, errors.Wrapf(err, "failed to get player record")
	}

	record, err := decode(input.EntityID, payload)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Record: record}, nil
}

// Save inserts or replaces a record
func (r *SQLiteRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	record, err := prepare(input.Record, r.clock)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal player record")
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO player_records (entity_id, payload, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(entity_id) DO UPDATE SET
		   payload = excluded.payload,
		   updated_at = excluded.updated_at`,
		record.EntityID,
		payload,
		record.UpdatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save player record")
	}

	return &SaveOutput{Record: record}, nil
}

// Delete removes a record
func (r *SQLiteRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.EntityID == "" {
		return nil, errors.InvalidArgument(errEntityIDEmpty)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM player_records WHERE entity_id = ?`, input.EntityID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete player record")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete player record")
	}
	if n == 0 {
		return nil, errors.NotFoundf("player record %s not found", input.EntityID)
	}

	return &DeleteOutput{}, nil
}

// List returns every record ordered by entity ID
func (r *SQLiteRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT entity_id, payload FROM player_records ORDER BY entity_id`)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list player records")
	}
	defer func() { _ = rows.Close() }()

	records := make([]*entities.PlayerRecord, 0)
	for rows.Next() {
		var (
			id      string
			payload []byte
		)
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, errors.Wrapf(err, "failed to scan player record")
		}
		record, err := decode(id, payload)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to list player records")
	}

	return &ListOutput{Records: records}, nil
}

func decode(entityID string, payload []byte) (*entities.PlayerRecord, error) {
	var record entities.PlayerRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal player record %s", entityID)
	}
	normalize(&record)
	return &record, nil
}
