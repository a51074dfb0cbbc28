package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"game_duration/internal/domain"
)

type GameRecordStore struct {
	db *sqlx.DB
}

func NewGameRecordStore(db *sqlx.DB) *GameRecordStore {
	return &GameRecordStore{db: db}
}

// UpsertBatch writes records keyed by game id. A recomputed game replaces
// the stored row. Runs inside the caller's transaction when there is one.
func (s *GameRecordStore) UpsertBatch(ctx context.Context, records []domain.GameRecord) error {
	if len(records) == 0 {
		return nil
	}

	query := `
		INSERT INTO game_records (
			game_id, season, start_time, end_time, duration_minutes,
			periods, truncated, reject_reason, duplicate_anomalies,
			timeouts, challenges, replays, fouls, free_throws,
			avg_timeout_seconds, avg_replay_seconds, halftime_minutes, final_period_minutes,
			clock_regressions, score_drops, duration_outlier
		) VALUES (
			:game_id, :season, :start_time, :end_time, :duration_minutes,
			:periods, :truncated, :reject_reason, :duplicate_anomalies,
			:timeouts, :challenges, :replays, :fouls, :free_throws,
			:avg_timeout_seconds, :avg_replay_seconds, :halftime_minutes, :final_period_minutes,
			:clock_regressions, :score_drops, :duration_outlier
		)
		ON CONFLICT (game_id) DO UPDATE SET
			season = EXCLUDED.season,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			duration_minutes = EXCLUDED.duration_minutes,
			periods = EXCLUDED.periods,
			truncated = EXCLUDED.truncated,
			reject_reason = EXCLUDED.reject_reason,
			duplicate_anomalies = EXCLUDED.duplicate_anomalies,
			timeouts = EXCLUDED.timeouts,
			challenges = EXCLUDED.challenges,
			replays = EXCLUDED.replays,
			fouls = EXCLUDED.fouls,
			free_throws = EXCLUDED.free_throws,
			avg_timeout_seconds = EXCLUDED.avg_timeout_seconds,
			avg_replay_seconds = EXCLUDED.avg_replay_seconds,
			halftime_minutes = EXCLUDED.halftime_minutes,
			final_period_minutes = EXCLUDED.final_period_minutes,
			clock_regressions = EXCLUDED.clock_regressions,
			score_drops = EXCLUDED.score_drops,
			duration_outlier = EXCLUDED.duration_outlier,
			updated_at = NOW()`

	exec := GetExecutor(ctx, s.db)
	for i := range records {
		if _, err := sqlx.NamedExecContext(ctx, exec, query, &records[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *GameRecordStore) GetBySeason(ctx context.Context, season int) ([]domain.GameRecord, error) {
	query := `
		SELECT game_id, season, start_time, end_time, duration_minutes,
			periods, truncated, reject_reason, duplicate_anomalies,
			timeouts, challenges, replays, fouls, free_throws,
			avg_timeout_seconds, avg_replay_seconds, halftime_minutes, final_period_minutes,
			clock_regressions, score_drops, duration_outlier
		FROM game_records
		WHERE season = $1
		ORDER BY game_id`

	var records []domain.GameRecord
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &records, query, season)
	return records, err
}
