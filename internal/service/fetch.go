package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"game_duration/internal/checkpoint"
	"game_duration/internal/config"
	"game_duration/internal/domain"
	"game_duration/internal/source/nbastats"
)

// FetchService downloads the play-by-play of one checkpoint key unit by unit.
// Every unit's rows are durably written before the checkpoint advances, so a
// run can stop at any point and the next one picks up where it left off.
type FetchService struct {
	source      Source
	checkpoints CheckpointStore
	raw         RawStore
	logger      *slog.Logger
	config      config.FetchConfig
}

func NewFetchService(
	source Source,
	checkpoints CheckpointStore,
	raw RawStore,
	logger *slog.Logger,
	cfg config.FetchConfig,
) *FetchService {
	return &FetchService{
		source:      source,
		checkpoints: checkpoints,
		raw:         raw,
		logger:      logger.With("source", source.ID()),
		config:      cfg,
	}
}

// Key resolves the checkpoint key a request maps to.
func (s *FetchService) Key(req domain.FetchRequest) (domain.CheckpointKey, error) {
	_, label, err := s.teams(req)
	if err != nil {
		return domain.CheckpointKey{}, err
	}
	return domain.CheckpointKey{
		League: req.League,
		Season: req.Season.Format(req.League),
		Team:   label,
	}, nil
}

func (s *FetchService) teams(req domain.FetchRequest) ([]domain.Team, string, error) {
	if req.Team == "" || strings.EqualFold(req.Team, domain.AllTeams) {
		return s.source.Teams(req.League), domain.AllTeams, nil
	}
	team, err := s.source.FindTeam(req.League, req.Team)
	if err != nil {
		return nil, "", err
	}
	return []domain.Team{team}, team.Abbreviation, nil
}

// Fetch runs the key's pending units in order. A transient upstream failure or
// cancellation stops the run without an error; the stats say which. Any other
// failure is returned and leaves the failing unit pending.
func (s *FetchService) Fetch(ctx context.Context, req domain.FetchRequest) (stats *domain.FetchStats, err error) {
	startTime := time.Now()

	teams, label, err := s.teams(req)
	if err != nil {
		return nil, fmt.Errorf("resolve team: %w", err)
	}
	key := domain.CheckpointKey{League: req.League, Season: req.Season.Format(req.League), Team: label}
	logger := s.logger.With("league", key.League, "season", key.Season, "team", key.Team)
	stats = &domain.FetchStats{Key: key}

	logger.Info("starting fetch",
		"source_name", s.source.Name(),
		"granularity", s.config.Granularity,
		"teams", len(teams),
	)

	sess, err := checkpoint.Open(ctx, s.checkpoints, key, func(ctx context.Context) ([]string, error) {
		return s.resolveUnits(ctx, key, teams, logger)
	}, logger)
	if err != nil {
		if s.stopped(ctx, err, stats, logger) {
			stats.Duration = time.Since(startTime)
			return stats, nil
		}
		return stats, fmt.Errorf("open checkpoint: %w", err)
	}
	defer func() {
		if cerr := sess.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()

	stats.Resumed = sess.Resumed()

	if err := s.requeueMissing(ctx, sess, stats, logger); err != nil {
		return stats, err
	}

	pending := sess.Pending()
	stats.Total = sess.Total()

	if sess.Done() {
		logger.Info("checkpoint already done, nothing to fetch", "units", stats.Total)
	}

	for i, unit := range pending {
		if ctx.Err() != nil {
			stats.Interrupted = true
			logger.Info("interrupted between units", "next_unit", unit)
			break
		}

		if err := sess.Begin(unit); err != nil {
			return stats, err
		}

		rows, err := s.fetchUnit(ctx, key.League, key.Season, unit)
		if err != nil {
			if rerr := sess.Release(unit); rerr != nil {
				return stats, rerr
			}
			if s.stopped(ctx, err, stats, logger.With("unit", unit)) {
				break
			}
			return stats, fmt.Errorf("fetch unit %s: %w", unit, err)
		}

		// Rows are in hand: persist them even if an interrupt arrives now.
		persistCtx := context.WithoutCancel(ctx)

		if len(rows) == 0 {
			if err := sess.Skip(persistCtx, unit); err != nil {
				return stats, err
			}
			stats.Skipped++
			logger.Info("unit has no play-by-play, skipped", "unit", unit)
			continue
		}

		if err := s.raw.WriteUnit(persistCtx, key, unit, rows); err != nil {
			if rerr := sess.Release(unit); rerr != nil {
				return stats, rerr
			}
			return stats, err
		}
		if err := sess.Complete(persistCtx, unit); err != nil {
			return stats, err
		}

		stats.Fetched++
		stats.Rows += len(rows)
		logger.Debug("unit complete",
			"unit", unit,
			"rows", len(rows),
			"progress", fmt.Sprintf("%d/%d", i+1, len(pending)),
		)
	}

	stats.Remaining = len(sess.Pending())
	stats.Done = sess.Done()
	stats.Duration = time.Since(startTime)

	logger.Info("fetch finished",
		"fetched", stats.Fetched,
		"skipped", stats.Skipped,
		"requeued", stats.Requeued,
		"remaining", stats.Remaining,
		"rows", stats.Rows,
		"done", stats.Done,
		"interrupted", stats.Interrupted,
		"transient_failure", stats.TransientFailure,
		"duration", stats.Duration,
	)

	return stats, nil
}

// stopped records an interrupt or transient failure on stats and reports
// whether err was one of them.
func (s *FetchService) stopped(ctx context.Context, err error, stats *domain.FetchStats, logger *slog.Logger) bool {
	switch {
	case ctx.Err() != nil || errors.Is(err, context.Canceled):
		stats.Interrupted = true
		logger.Info("interrupted, progress saved", "error", err)
		return true
	case nbastats.IsTransient(err):
		stats.TransientFailure = true
		logger.Warn("transient upstream failure, stopping run; rerun to resume", "error", err)
		return true
	default:
		return false
	}
}

// requeueMissing puts completed units whose data file is gone back in the queue.
func (s *FetchService) requeueMissing(ctx context.Context, sess *checkpoint.Session, stats *domain.FetchStats, logger *slog.Logger) error {
	for _, unit := range sess.Completed() {
		if s.raw.HasUnit(sess.Key(), unit) {
			continue
		}
		if err := sess.Requeue(ctx, unit); err != nil {
			return fmt.Errorf("requeue unit %s: %w", unit, err)
		}
		stats.Requeued++
		logger.Warn("completed unit has no data file, requeued", "unit", unit)
	}
	return nil
}

func (s *FetchService) resolveUnits(ctx context.Context, key domain.CheckpointKey, teams []domain.Team, logger *slog.Logger) ([]string, error) {
	var units []string
	for _, team := range teams {
		games, err := s.listGames(ctx, key.League, key.Season, team.ID)
		if err != nil {
			return nil, err
		}

		switch s.config.Granularity {
		case config.GranularityTeam:
			if len(games) > 0 {
				units = append(units, domain.FetchUnit{TeamID: team.ID}.String())
			}
		default:
			for _, g := range games {
				units = append(units, domain.FetchUnit{TeamID: team.ID, GameID: g.GameID}.String())
			}
		}

		logger.Debug("resolved team schedule", "team", team.Abbreviation, "games", len(games))
	}

	logger.Info("resolved fetch units", "units", len(units))
	return units, nil
}

func (s *FetchService) listGames(ctx context.Context, league domain.League, season string, teamID int64) ([]domain.GameRef, error) {
	games, err := s.source.ListGames(ctx, league, season, teamID)
	if err != nil {
		return nil, err
	}
	if !s.config.RegularSeasonOnly {
		return games, nil
	}

	kept := games[:0:0]
	for _, g := range games {
		if gt, err := domain.GameTypeOf(g.GameID); err == nil && gt == domain.GameTypeRegularSeason {
			kept = append(kept, g)
		}
	}
	return kept, nil
}

// fetchUnit returns a unit's rows. A team-season unit concatenates every game
// of the team; games without play-by-play contribute nothing.
func (s *FetchService) fetchUnit(ctx context.Context, league domain.League, season, unit string) ([]domain.RawEventRow, error) {
	u, err := domain.ParseFetchUnit(unit)
	if err != nil {
		return nil, err
	}
	if u.GameID != "" {
		return s.source.FetchPlayByPlay(ctx, u.GameID, u.TeamID)
	}

	games, err := s.listGames(ctx, league, season, u.TeamID)
	if err != nil {
		return nil, err
	}

	var rows []domain.RawEventRow
	for _, g := range games {
		gameRows, err := s.source.FetchPlayByPlay(ctx, g.GameID, u.TeamID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, gameRows...)
	}
	return rows, nil
}
