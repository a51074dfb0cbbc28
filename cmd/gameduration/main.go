package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"game_duration/internal/domain"
	"game_duration/internal/scheduler"
	"game_duration/internal/service"
)

// errIncomplete marks a run that stopped on a transient upstream failure.
// Its progress is saved; rerunning with the same flags resumes it.
var errIncomplete = errors.New("fetch incomplete, rerun with the same parameters to resume")

const exitIncomplete = 3

var flags struct {
	config  string
	league  string
	seasons []string
	team    string
	watch   bool
}

var rootCmd = &cobra.Command{
	Use:   "gameduration",
	Short: "Resumable play-by-play fetcher and game duration calculator",
	Long: `gameduration downloads NBA and WNBA play-by-play one unit at a time,
checkpointing after every unit, and derives the wall-clock duration of each game.

An interrupted run loses nothing: rerun the same command to resume.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download play-by-play for the selected seasons",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			var stopped bool
			for _, season := range a.seasons {
				stats, err := a.fetcher.Fetch(ctx, domain.FetchRequest{League: a.league, Season: season, Team: a.cfg.Team})
				if err != nil {
					return err
				}
				if stats.Interrupted || stats.TransientFailure {
					stopped = true
					break
				}
			}
			if stopped && ctx.Err() == nil {
				return errIncomplete
			}
			return nil
		})
	},
}

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Compute game durations from already fetched play-by-play",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			_, err := a.pipeline.Derive(ctx, a.request())
			return err
		})
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, then derive game durations for every fully fetched season",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			if flags.watch {
				sched := scheduler.NewScheduler(a.pipeline, a.cfg.Sync.Interval, a.cfg.Sync.MaxRuns, a.logger)
				_, err := sched.Start(ctx, a.request())
				if errors.Is(err, scheduler.ErrMaxRuns) {
					return errIncomplete
				}
				return err
			}

			stats, err := a.pipeline.Run(ctx, a.request())
			if err != nil {
				return err
			}
			if stats.Stopped() && ctx.Err() == nil {
				return errIncomplete
			}
			return nil
		})
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.config, "config", "config.yaml", "path to config file")
	pf.StringVar(&flags.league, "league", "", "league: nba or wnba (overrides config)")
	pf.StringSliceVar(&flags.seasons, "season", nil, "season to process, e.g. 2023-24 or 2019; repeatable (overrides config)")
	pf.StringVar(&flags.team, "team", "", `team id, abbreviation or nickname, or "all" (overrides config)`)

	runCmd.Flags().BoolVar(&flags.watch, "watch", false, "rerun on the sync interval until every season is fully fetched")

	rootCmd.AddCommand(fetchCmd, deriveCmd, runCmd)
}

// withApp builds the application, runs fn under a context cancelled on
// SIGINT/SIGTERM, and treats an interrupt as a clean exit.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx, cancel := trapInterrupt(cmd.Context())
	defer cancel()

	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	err = fn(ctx, a)
	if ctx.Err() != nil && (err == nil || errors.Is(err, context.Canceled)) {
		a.logger.Info("interrupted, rerun the same command to resume")
		return nil
	}
	return err
}

// trapInterrupt returns a context cancelled on SIGINT/SIGTERM. The handler is
// installed before it returns, so a signal during startup still goes through
// the checkpoint flush instead of killing the process.
func trapInterrupt(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			slog.Info("received shutdown signal, saving progress", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

func (a *app) request() service.RunRequest {
	return service.RunRequest{League: a.league, Seasons: a.seasons, Team: a.cfg.Team}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errIncomplete) {
			slog.Warn(err.Error())
			os.Exit(exitIncomplete)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
