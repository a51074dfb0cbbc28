package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"game_duration/internal/domain"
	"game_duration/internal/storage/atomicfile"
)

var (
	RecordHeader  = []string{"game_id", "season", "start_time", "end_time", "duration_minutes"}
	SummaryHeader = []string{"season", "games", "valid", "rejected", "mean", "median", "q1", "q3", "min", "max", "std_dev", "skewness"}

	GameMetricsHeader = []string{
		"game_id", "season", "timeouts", "challenges", "replays", "fouls", "free_throws",
		"avg_timeout_seconds", "avg_replay_seconds", "halftime_minutes", "final_period_minutes",
		"clock_regressions", "score_drops", "duration_outlier", "flags",
	}
	SeasonMetricsHeader = []string{
		"season", "games", "flagged", "timeouts", "challenges", "replays", "fouls", "free_throws",
		"avg_timeout_seconds", "avg_replay_seconds", "halftime_minutes", "final_period_minutes",
	}
)

// TableWriter writes the derived record and summary tables of a key into one directory.
type TableWriter struct {
	dir string
}

func NewTableWriter(dir string) *TableWriter {
	return &TableWriter{dir: dir}
}

func (w *TableWriter) RecordsPath(key domain.CheckpointKey) string {
	return filepath.Join(w.dir, key.String()+"_game_durations.csv")
}

func (w *TableWriter) SummaryPath(key domain.CheckpointKey) string {
	return filepath.Join(w.dir, key.String()+"_season_summary.csv")
}

func (w *TableWriter) GameMetricsPath(key domain.CheckpointKey) string {
	return filepath.Join(w.dir, key.String()+"_game_metrics.csv")
}

func (w *TableWriter) SeasonMetricsPath(key domain.CheckpointKey) string {
	return filepath.Join(w.dir, key.String()+"_season_metrics.csv")
}

// WriteRecords replaces the record table of key. A null value is an empty cell.
func (w *TableWriter) WriteRecords(_ context.Context, key domain.CheckpointKey, records []domain.GameRecord) error {
	err := writeTable(w.RecordsPath(key), RecordHeader, len(records), func(i int) []string {
		r := records[i]
		return []string{
			r.GameID,
			strconv.Itoa(r.Season),
			deref(r.StartTime),
			deref(r.EndTime),
			formatOptional(r.DurationMinutes),
		}
	})
	if err != nil {
		return fmt.Errorf("write records: %w", err)
	}
	return nil
}

func (w *TableWriter) WriteSummaries(_ context.Context, key domain.CheckpointKey, summaries []domain.SeasonSummary) error {
	err := writeTable(w.SummaryPath(key), SummaryHeader, len(summaries), func(i int) []string {
		s := summaries[i]
		return []string{
			strconv.Itoa(s.Season),
			strconv.Itoa(s.Games),
			strconv.Itoa(s.Valid),
			strconv.Itoa(s.Rejected),
			formatStat(s.Mean),
			formatStat(s.Median),
			formatStat(s.Q1),
			formatStat(s.Q3),
			formatStat(s.Min),
			formatStat(s.Max),
			formatStat(s.StdDev),
			formatStat(s.Skewness),
		}
	})
	if err != nil {
		return fmt.Errorf("write summaries: %w", err)
	}
	return nil
}

// WriteMetrics replaces the per-game and per-season metrics tables of key.
// Season averages cover valid games only.
func (w *TableWriter) WriteMetrics(_ context.Context, key domain.CheckpointKey, records []domain.GameRecord, seasons []domain.SeasonMetrics) error {
	err := writeTable(w.GameMetricsPath(key), GameMetricsHeader, len(records), func(i int) []string {
		r := records[i]
		return []string{
			r.GameID,
			strconv.Itoa(r.Season),
			strconv.Itoa(r.Timeouts),
			strconv.Itoa(r.Challenges),
			strconv.Itoa(r.Replays),
			strconv.Itoa(r.Fouls),
			strconv.Itoa(r.FreeThrows),
			formatOptionalStat(r.TimeoutSeconds),
			formatOptionalStat(r.ReplaySeconds),
			formatOptional(r.HalftimeMinutes),
			formatOptional(r.FinalPeriodMinutes),
			strconv.Itoa(r.ClockRegressions),
			strconv.Itoa(r.ScoreDrops),
			r.DurationOutlier,
			strings.Join(r.Flags(), ";"),
		}
	})
	if err != nil {
		return fmt.Errorf("write game metrics: %w", err)
	}

	err = writeTable(w.SeasonMetricsPath(key), SeasonMetricsHeader, len(seasons), func(i int) []string {
		s := seasons[i]
		return []string{
			strconv.Itoa(s.Season),
			strconv.Itoa(s.Games),
			strconv.Itoa(s.Flagged),
			formatOptionalStat(s.Timeouts),
			formatOptionalStat(s.Challenges),
			formatOptionalStat(s.Replays),
			formatOptionalStat(s.Fouls),
			formatOptionalStat(s.FreeThrows),
			formatOptionalStat(s.TimeoutSeconds),
			formatOptionalStat(s.ReplaySeconds),
			formatOptionalStat(s.HalftimeMinutes),
			formatOptionalStat(s.FinalPeriodMinutes),
		}
	})
	if err != nil {
		return fmt.Errorf("write season metrics: %w", err)
	}
	return nil
}

func writeTable(path string, header []string, n int, row func(i int) []string) error {
	return atomicfile.Write(path, func(out io.Writer) error {
		cw := csv.NewWriter(out)
		if err := cw.Write(header); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := cw.Write(row(i)); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatOptionalStat(v *float64) string {
	if v == nil {
		return ""
	}
	return formatStat(*v)
}

func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
