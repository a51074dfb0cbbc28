package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"game_duration/internal/checkpoint"
	"game_duration/internal/domain"
)

type checkpointRow struct {
	League            string         `db:"league"`
	Season            string         `db:"season"`
	Team              string         `db:"team"`
	Version           int            `db:"version"`
	LastCompletedUnit string         `db:"last_completed_unit"`
	PendingUnits      pq.StringArray `db:"pending_units"`
	CompletedUnits    pq.StringArray `db:"completed_units"`
	SkippedUnits      pq.StringArray `db:"skipped_units"`
	Done              bool           `db:"done"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

func (r checkpointRow) toDomain() *domain.Checkpoint {
	return &domain.Checkpoint{
		Version:           r.Version,
		League:            domain.League(r.League),
		Season:            r.Season,
		Team:              r.Team,
		LastCompletedUnit: r.LastCompletedUnit,
		PendingUnits:      []string(nonNil(r.PendingUnits)),
		CompletedUnits:    []string(nonNil(r.CompletedUnits)),
		SkippedUnits:      []string(r.SkippedUnits),
		Done:              r.Done,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

// newCheckpointRow binds empty unit lists as '{}' rather than NULL; the
// array columns are NOT NULL.
func newCheckpointRow(cp *domain.Checkpoint) checkpointRow {
	return checkpointRow{
		League:            string(cp.League),
		Season:            cp.Season,
		Team:              cp.Team,
		Version:           cp.Version,
		LastCompletedUnit: cp.LastCompletedUnit,
		PendingUnits:      nonNil(cp.PendingUnits),
		CompletedUnits:    nonNil(cp.CompletedUnits),
		SkippedUnits:      nonNil(cp.SkippedUnits),
		Done:              cp.Done,
		CreatedAt:         cp.CreatedAt,
		UpdatedAt:         cp.UpdatedAt,
	}
}

func nonNil(a []string) pq.StringArray {
	if a == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(a)
}

// CheckpointStore keeps fetch checkpoints in the fetch_checkpoints table, one
// row per (league, season, team) key.
type CheckpointStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewCheckpointStore(db *sqlx.DB) *CheckpointStore {
	return &CheckpointStore{db: db, now: time.Now}
}

const selectCheckpoint = `
	SELECT league, season, team, version, last_completed_unit,
		pending_units, completed_units, skipped_units, done, created_at, updated_at
	FROM fetch_checkpoints
	WHERE league = $1 AND season = $2 AND team = $3`

func (s *CheckpointStore) Load(ctx context.Context, key domain.CheckpointKey) (*domain.Checkpoint, error) {
	return s.load(ctx, GetExecutor(ctx, s.db), selectCheckpoint, key)
}

func (s *CheckpointStore) load(ctx context.Context, q sqlx.QueryerContext, query string, key domain.CheckpointKey) (*domain.Checkpoint, error) {
	var row checkpointRow
	err := sqlx.GetContext(ctx, q, &row, query, string(key.League), key.Season, key.Team)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	cp := row.toDomain()
	if err := cp.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", checkpoint.ErrCorruptCheckpoint, key, err)
	}
	return cp, nil
}

func (s *CheckpointStore) Save(ctx context.Context, cp *domain.Checkpoint) error {
	if err := cp.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid checkpoint: %w", err)
	}
	return s.save(ctx, GetExecutor(ctx, s.db), cp)
}

func (s *CheckpointStore) save(ctx context.Context, exec sqlx.ExecerContext, cp *domain.Checkpoint) error {
	query := `
		INSERT INTO fetch_checkpoints (
			league, season, team, version, last_completed_unit,
			pending_units, completed_units, skipped_units, done, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (league, season, team) DO UPDATE SET
			version = EXCLUDED.version,
			last_completed_unit = EXCLUDED.last_completed_unit,
			pending_units = EXCLUDED.pending_units,
			completed_units = EXCLUDED.completed_units,
			skipped_units = EXCLUDED.skipped_units,
			done = EXCLUDED.done,
			updated_at = EXCLUDED.updated_at`

	row := newCheckpointRow(cp)
	_, err := exec.ExecContext(ctx, query,
		row.League,
		row.Season,
		row.Team,
		row.Version,
		row.LastCompletedUnit,
		row.PendingUnits,
		row.CompletedUnits,
		row.SkippedUnits,
		row.Done,
		row.CreatedAt,
		row.UpdatedAt,
	)
	return err
}

// MarkUnitComplete advances the stored checkpoint by one unit. The row is
// locked for the read-modify-write so concurrent runs of the same key
// serialize.
func (s *CheckpointStore) MarkUnitComplete(ctx context.Context, key domain.CheckpointKey, unit string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	cp, err := s.load(ctx, tx, selectCheckpoint+" FOR UPDATE", key)
	if err == nil && cp == nil {
		err = fmt.Errorf("%w: %s", checkpoint.ErrNoCheckpoint, key)
	}
	if err == nil {
		err = cp.MarkComplete(unit, s.now())
	}
	if err == nil {
		err = s.save(ctx, tx, cp)
	}
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
