package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"game_duration/internal/checkpoint"
	"game_duration/internal/config"
	"game_duration/internal/domain"
	"game_duration/internal/duration"
	"game_duration/internal/publisher"
	"game_duration/internal/service"
	"game_duration/internal/source/nbastats"
	"game_duration/internal/storage/csvfile"
	"game_duration/internal/storage/postgres"
	"game_duration/migrations"
)

type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	league  domain.League
	seasons []domain.Season

	db        *sqlx.DB
	publisher *publisher.RabbitMQ

	fetcher  *service.FetchService
	pipeline *service.PipelineService
}

func newApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: setupLogger(cfg.LogLevel)}
	slog.SetDefault(a.logger)

	if a.league, err = cfg.LeagueID(); err != nil {
		return nil, err
	}
	if a.seasons, err = cfg.SeasonList(); err != nil {
		return nil, err
	}

	if err := a.connect(ctx); err != nil {
		a.Close()
		return nil, err
	}

	calc, err := duration.New(cfg.Calculator(a.league))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("duration settings: %w", err)
	}

	source := nbastats.New(nbastats.Config{
		BaseURL:        cfg.API.BaseURL,
		Timeout:        cfg.API.Timeout,
		MaxAttempts:    cfg.API.Retry.MaxAttempts,
		InitialBackoff: cfg.API.Retry.InitialBackoff,
		MaxBackoff:     cfg.API.Retry.MaxBackoff,
		MinPacing:      cfg.API.Pacing.Min,
		MaxPacing:      cfg.API.Pacing.Max,
	}, a.logger)

	var checkpoints service.CheckpointStore = checkpoint.NewFileStore(cfg.Storage.CheckpointDir)
	if cfg.Storage.CheckpointBackend == config.CheckpointBackendPostgres {
		checkpoints = postgres.NewCheckpointStore(a.db)
	}

	raw := csvfile.NewRawStore(cfg.Storage.RawDir)
	a.fetcher = service.NewFetchService(source, checkpoints, raw, a.logger, cfg.Fetch)

	// Optional sinks stay nil interfaces when disabled.
	var (
		gameStore service.GameRecordStore
		txManager service.TransactionManager
		pub       service.Publisher
	)
	if a.db != nil {
		gameStore = postgres.NewGameRecordStore(a.db)
		txManager = postgres.NewTransactionManager(a.db)
	}
	if a.publisher != nil {
		pub = a.publisher
	}

	a.pipeline = service.NewPipelineService(
		a.fetcher,
		raw,
		calc,
		csvfile.NewTableWriter(cfg.Storage.OutputDir),
		gameStore,
		txManager,
		pub,
		a.logger,
		cfg.Pipeline,
		cfg.Fetch,
	)

	a.logger.Info("game duration pipeline ready",
		"source", source.Name(),
		"league", a.league,
		"seasons", len(a.seasons),
		"team", cfg.Team,
		"granularity", cfg.Fetch.Granularity,
		"checkpoint_backend", cfg.Storage.CheckpointBackend,
		"database", a.db != nil,
		"rabbitmq", a.publisher != nil,
	)

	return a, nil
}

// loadConfig reads the config file and applies command-line overrides. A
// missing default config file is not an error.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := flags.config
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if flags.league != "" {
		cfg.League = flags.league
	}
	if len(flags.seasons) > 0 {
		cfg.Seasons = flags.seasons
		cfg.SeasonFrom, cfg.SeasonTo = "", ""
	}
	if flags.team != "" {
		cfg.Team = flags.team
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (a *app) connect(ctx context.Context) error {
	if a.cfg.Database.Enabled {
		db, err := sqlx.ConnectContext(ctx, "postgres", a.cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		a.db = db

		if err := migrations.Up(db.DB); err != nil {
			return err
		}
		a.logger.Info("connected to database")
	}

	if a.cfg.RabbitMQ.Enabled {
		pub, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        a.cfg.RabbitMQ.URL,
			Exchange:   a.cfg.RabbitMQ.Exchange,
			RoutingKey: a.cfg.RabbitMQ.RoutingKey,
			QueueName:  a.cfg.RabbitMQ.QueueName,
		}, a.logger)
		if err != nil {
			return err
		}
		a.publisher = pub
	}
	return nil
}

func (a *app) Close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq", "error", err)
		}
	}
	if a.db != nil {
		a.db.Close()
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
