package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"game_duration/internal/domain"
)

type Source interface {
	ID() string
	Name() string
	Teams(league domain.League) []domain.Team
	FindTeam(league domain.League, query string) (domain.Team, error)
	ListGames(ctx context.Context, league domain.League, season string, teamID int64) ([]domain.GameRef, error)
	FetchPlayByPlay(ctx context.Context, gameID string, feedTeamID int64) ([]domain.RawEventRow, error)
}

type CheckpointStore interface {
	Load(ctx context.Context, key domain.CheckpointKey) (*domain.Checkpoint, error)
	Save(ctx context.Context, cp *domain.Checkpoint) error
	MarkUnitComplete(ctx context.Context, key domain.CheckpointKey, unit string) error
}

type RawStore interface {
	WriteUnit(ctx context.Context, key domain.CheckpointKey, unit string, rows []domain.RawEventRow) error
	HasUnit(key domain.CheckpointKey, unit string) bool
	ReadAll(key domain.CheckpointKey) ([]domain.RawEventRow, error)
}

type Fetcher interface {
	Key(req domain.FetchRequest) (domain.CheckpointKey, error)
	Fetch(ctx context.Context, req domain.FetchRequest) (*domain.FetchStats, error)
}

type Calculator interface {
	Calculate(gameID string, rows []domain.RawEventRow) domain.GameRecord
}

type RecordWriter interface {
	WriteRecords(ctx context.Context, key domain.CheckpointKey, records []domain.GameRecord) error
	WriteSummaries(ctx context.Context, key domain.CheckpointKey, summaries []domain.SeasonSummary) error
	WriteMetrics(ctx context.Context, key domain.CheckpointKey, records []domain.GameRecord, seasons []domain.SeasonMetrics) error
}

type GameRecordStore interface {
	UpsertBatch(ctx context.Context, records []domain.GameRecord) error
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, runID string, record *domain.GameRecord) error
	Close() error
}
