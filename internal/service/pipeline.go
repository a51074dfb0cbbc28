package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"game_duration/internal/config"
	"game_duration/internal/dedupe"
	"game_duration/internal/domain"
	"game_duration/internal/metrics"
	"game_duration/internal/summary"
)

type RunRequest struct {
	League  domain.League
	Seasons []domain.Season
	Team    string
}

// PipelineService sequences fetch, dedupe, duration and the record sinks.
// gameStore, txManager and publisher are optional.
type PipelineService struct {
	fetcher           Fetcher
	raw               RawStore
	calc              Calculator
	records           RecordWriter
	gameStore         GameRecordStore
	txManager         TransactionManager
	publisher         Publisher
	logger            *slog.Logger
	config            config.PipelineConfig
	regularSeasonOnly bool
}

func NewPipelineService(
	fetcher Fetcher,
	raw RawStore,
	calc Calculator,
	records RecordWriter,
	gameStore GameRecordStore,
	txManager TransactionManager,
	publisher Publisher,
	logger *slog.Logger,
	cfg config.PipelineConfig,
	fetchCfg config.FetchConfig,
) *PipelineService {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &PipelineService{
		fetcher:           fetcher,
		raw:               raw,
		calc:              calc,
		records:           records,
		gameStore:         gameStore,
		txManager:         txManager,
		publisher:         publisher,
		logger:            logger.With("component", "pipeline"),
		config:            cfg,
		regularSeasonOnly: fetchCfg.RegularSeasonOnly,
	}
}

// Run fetches every requested season, then derives records for each key
// whose fetch is done. It stops at the first season that was interrupted or
// hit a transient failure; rerunning resumes from there.
func (s *PipelineService) Run(ctx context.Context, req RunRequest) (*domain.RunStats, error) {
	stats := s.newStats()
	startTime := time.Now()
	logger := s.logger.With("run_id", stats.RunID)

	logger.Info("starting run", "league", req.League, "seasons", len(req.Seasons), "team", req.Team)

	for _, season := range req.Seasons {
		fstats, err := s.fetcher.Fetch(ctx, domain.FetchRequest{League: req.League, Season: season, Team: req.Team})
		if fstats != nil {
			stats.Fetch = append(stats.Fetch, *fstats)
		}
		if err != nil {
			stats.Duration = time.Since(startTime)
			return stats, fmt.Errorf("fetch season %s: %w", season.Format(req.League), err)
		}

		if fstats.Interrupted || fstats.TransientFailure {
			logger.Info("run stopped early, rerun to resume",
				"season", fstats.Key.Season,
				"remaining", fstats.Remaining,
			)
			break
		}
		if !fstats.Done {
			continue
		}

		if err := s.derive(ctx, fstats.Key, stats, logger); err != nil {
			stats.Duration = time.Since(startTime)
			return stats, err
		}
	}

	stats.Duration = time.Since(startTime)
	s.logCompleted(logger, stats)
	return stats, nil
}

// Derive runs the offline stages over whatever raw units are already on disk.
func (s *PipelineService) Derive(ctx context.Context, req RunRequest) (*domain.RunStats, error) {
	stats := s.newStats()
	startTime := time.Now()
	logger := s.logger.With("run_id", stats.RunID)

	for _, season := range req.Seasons {
		key, err := s.fetcher.Key(domain.FetchRequest{League: req.League, Season: season, Team: req.Team})
		if err != nil {
			return stats, err
		}
		if err := s.derive(ctx, key, stats, logger); err != nil {
			stats.Duration = time.Since(startTime)
			return stats, err
		}
	}

	stats.Duration = time.Since(startTime)
	s.logCompleted(logger, stats)
	return stats, nil
}

func (s *PipelineService) newStats() *domain.RunStats {
	return &domain.RunStats{
		RunID:    uuid.NewString(),
		ByReason: make(map[string]int),
	}
}

func (s *PipelineService) derive(ctx context.Context, key domain.CheckpointKey, stats *domain.RunStats, logger *slog.Logger) error {
	logger = logger.With("checkpoint", key.String())

	rows, err := s.raw.ReadAll(key)
	if err != nil {
		return fmt.Errorf("read raw units: %w", err)
	}
	rows = s.filterGameTypes(rows)

	deduped, anomalies := dedupe.Deduplicate(rows)
	perGame := make(map[string]int, len(anomalies))
	for _, a := range anomalies {
		perGame[a.GameID]++
		logger.Warn("event duplicated more than twice",
			"game_id", a.GameID,
			"event_num", a.EventNum,
			"count", a.Count,
		)
	}
	stats.Anomalies += len(anomalies)

	records, err := s.calculate(ctx, key.League, deduped, perGame)
	if err != nil {
		return err
	}
	metrics.FlagOutliers(records)

	flagged := 0
	for _, r := range records {
		stats.Games++
		if r.Valid() {
			stats.Valid++
		} else {
			stats.Rejected++
			stats.ByReason[r.RejectReason]++
		}
		if flags := r.Flags(); len(flags) > 0 {
			flagged++
			logger.Debug("game flagged", "game_id", r.GameID, "flags", flags)
		}
	}
	stats.Flagged += flagged

	if err := s.records.WriteRecords(ctx, key, records); err != nil {
		return err
	}

	summaries := summary.Summarize(records)
	if err := s.records.WriteSummaries(ctx, key, summaries); err != nil {
		return err
	}
	stats.Seasons = append(stats.Seasons, summaries...)

	seasonMetrics := metrics.Summarize(records)
	if err := s.records.WriteMetrics(ctx, key, records, seasonMetrics); err != nil {
		return err
	}
	stats.Metrics = append(stats.Metrics, seasonMetrics...)

	s.store(ctx, records, stats, logger)
	s.publish(ctx, stats.RunID, records, stats, logger)

	logger.Info("derived game records",
		"rows", len(rows),
		"games", len(records),
		"anomalies", len(anomalies),
		"flagged", flagged,
	)
	return nil
}

func (s *PipelineService) filterGameTypes(rows []domain.RawEventRow) []domain.RawEventRow {
	if !s.regularSeasonOnly {
		return rows
	}
	kept := make([]domain.RawEventRow, 0, len(rows))
	for _, r := range rows {
		if gt, err := domain.GameTypeOf(r.GameID); err == nil && gt == domain.GameTypeRegularSeason {
			kept = append(kept, r)
		}
	}
	return kept
}

// calculate runs the per-game duration and metrics stages on a bounded
// worker pool and returns records ordered by game id.
func (s *PipelineService) calculate(ctx context.Context, league domain.League, rows []domain.RawEventRow, anomalies map[string]int) ([]domain.GameRecord, error) {
	ids, games := dedupe.GroupByGame(rows)
	records := make([]domain.GameRecord, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec := s.calc.Calculate(id, games[id])
			rec.Anomalies = anomalies[id]
			rec.GameMetrics = metrics.Compute(games[id], league.RegulationPeriods(rec.Season))
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("calculate durations: %w", err)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].GameID < records[j].GameID })
	return records, nil
}

func (s *PipelineService) store(ctx context.Context, records []domain.GameRecord, stats *domain.RunStats, logger *slog.Logger) {
	if s.gameStore == nil || len(records) == 0 {
		return
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.gameStore.UpsertBatch(txCtx, records)
	})
	if err != nil {
		stats.Errors++
		logger.Error("failed to store game records", "error", err)
	}
}

func (s *PipelineService) publish(ctx context.Context, runID string, records []domain.GameRecord, stats *domain.RunStats, logger *slog.Logger) {
	if s.publisher == nil {
		return
	}

	for i := range records {
		if err := s.publisher.Publish(ctx, runID, &records[i]); err != nil {
			stats.Errors++
			logger.Error("failed to publish game record", "game_id", records[i].GameID, "error", err)
			continue
		}
		stats.Published++
	}
}

func (s *PipelineService) logCompleted(logger *slog.Logger, stats *domain.RunStats) {
	logger.Info("run completed",
		"games", stats.Games,
		"valid", stats.Valid,
		"rejected", stats.Rejected,
		"by_reason", stats.ByReason,
		"anomalies", stats.Anomalies,
		"flagged", stats.Flagged,
		"published", stats.Published,
		"errors", stats.Errors,
		"complete", stats.Complete(),
		"duration", stats.Duration,
	)
}
