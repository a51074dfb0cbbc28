// Package duration derives a game's wall-clock length from its play-by-play.
package duration

import (
	"fmt"
	"slices"

	"game_duration/internal/domain"
)

// Reasons a record carries a null duration.
const (
	ReasonNoRows             = "no_rows"
	ReasonNoTipoff           = "no_tipoff"
	ReasonMalformedTimestamp = "malformed_timestamp"
	ReasonCorruptMarker      = "corrupt_marker"
	ReasonIncomplete         = "incomplete"
	ReasonImplausible        = "implausible_duration"
)

// MarkerPair is a start/end timestamp pair upstream emits in place of
// missing data.
type MarkerPair struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

type Config struct {
	League           domain.League
	MinMinutes       float64
	MaxMinutes       float64
	TipoffClocks     []string
	CorruptMarkers   []MarkerPair
	RejectIncomplete bool
}

var defaultTipoffClocks = map[domain.League][]string{
	domain.LeagueNBA:  {"12:00", "11:59", "11:58"},
	domain.LeagueWNBA: {"10:00", "9:59", "9:58", "20:00", "19:59"},
}

func DefaultTipoffClocks(league domain.League) []string {
	return slices.Clone(defaultTipoffClocks[league])
}

func DefaultConfig(league domain.League) Config {
	return Config{
		League:           league,
		MinMinutes:       60,
		MaxMinutes:       220,
		TipoffClocks:     DefaultTipoffClocks(league),
		CorruptMarkers:   []MarkerPair{{Start: "00:00:00", End: "23:59:00"}},
		RejectIncomplete: true,
	}
}

type marker struct {
	start, end int
}

// Calculator turns one game's deduplicated rows into a GameRecord. It holds
// no mutable state and is safe for concurrent use.
type Calculator struct {
	league           domain.League
	minMinutes       float64
	maxMinutes       float64
	tipoff           TipoffRule
	markers          []marker
	rejectIncomplete bool
}

func New(cfg Config) (*Calculator, error) {
	if cfg.MinMinutes > cfg.MaxMinutes {
		return nil, fmt.Errorf("min minutes %v exceeds max minutes %v", cfg.MinMinutes, cfg.MaxMinutes)
	}

	tipoff, err := NewTipoffRule(cfg.TipoffClocks)
	if err != nil {
		return nil, err
	}

	markers := make([]marker, 0, len(cfg.CorruptMarkers))
	for _, p := range cfg.CorruptMarkers {
		start, err := ParseWallClock(p.Start)
		if err != nil {
			return nil, fmt.Errorf("corrupt marker start: %w", err)
		}
		end, err := ParseWallClock(p.End)
		if err != nil {
			return nil, fmt.Errorf("corrupt marker end: %w", err)
		}
		markers = append(markers, marker{start: start, end: end})
	}

	return &Calculator{
		league:           cfg.League,
		minMinutes:       cfg.MinMinutes,
		maxMinutes:       cfg.MaxMinutes,
		tipoff:           tipoff,
		markers:          markers,
		rejectIncomplete: cfg.RejectIncomplete,
	}, nil
}

// Calculate never fails: every data-quality problem becomes a null duration
// with a RejectReason. rows is not modified.
func (c *Calculator) Calculate(gameID string, rows []domain.RawEventRow) domain.GameRecord {
	rec := domain.GameRecord{GameID: domain.NormalizeGameID(gameID)}
	rec.Season, _ = domain.SeasonOf(gameID)

	if len(rows) == 0 {
		rec.RejectReason = ReasonNoRows
		return rec
	}

	ordered := slices.Clone(rows)
	slices.SortStableFunc(ordered, func(a, b domain.RawEventRow) int {
		return a.EventNum - b.EventNum
	})

	for _, r := range ordered {
		rec.Periods = max(rec.Periods, r.Period)
	}
	rec.Truncated = rec.Periods < c.league.RegulationPeriods(rec.Season)

	last := ordered[len(ordered)-1]
	if last.WallClockTime != "" {
		end := last.WallClockTime
		rec.EndTime = &end
	}

	tip, ok := c.tipoff.Select(ordered)
	if !ok {
		rec.RejectReason = ReasonNoTipoff
		return rec
	}
	start := tip.WallClockTime
	rec.StartTime = &start

	startSec, err := ParseWallClock(tip.WallClockTime)
	if err != nil {
		rec.RejectReason = ReasonMalformedTimestamp
		return rec
	}
	endSec, err := ParseWallClock(last.WallClockTime)
	if err != nil {
		rec.RejectReason = ReasonMalformedTimestamp
		return rec
	}

	for _, m := range c.markers {
		if m.start == startSec && m.end == endSec {
			rec.RejectReason = ReasonCorruptMarker
			return rec
		}
	}

	if rec.Truncated && c.rejectIncomplete {
		rec.RejectReason = ReasonIncomplete
		return rec
	}

	minutes := Elapsed(startSec, endSec)
	if minutes < c.minMinutes || minutes > c.maxMinutes {
		rec.RejectReason = ReasonImplausible
		return rec
	}

	rec.DurationMinutes = &minutes
	return rec
}
