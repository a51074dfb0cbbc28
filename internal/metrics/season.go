package metrics

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"game_duration/internal/domain"
	"game_duration/internal/summary"
)

// minOutlierSample is the fewest valid durations a season needs before its
// interquartile fences mean anything.
const minOutlierSample = 4

// FlagOutliers marks valid records whose duration falls outside
// [Q1 - 1.5 IQR, Q3 + 1.5 IQR] of their season. Records are updated in place.
func FlagOutliers(records []domain.GameRecord) {
	bySeason := make(map[int][]float64)
	for _, r := range records {
		if r.Valid() {
			bySeason[r.Season] = append(bySeason[r.Season], *r.DurationMinutes)
		}
	}

	type fence struct{ low, high float64 }
	fences := make(map[int]fence, len(bySeason))
	for season, x := range bySeason {
		if len(x) < minOutlierSample {
			continue
		}
		sort.Float64s(x)
		q1, q3 := summary.Quantile(0.25, x), summary.Quantile(0.75, x)
		iqr := q3 - q1
		fences[season] = fence{low: q1 - 1.5*iqr, high: q3 + 1.5*iqr}
	}

	for i := range records {
		r := &records[i]
		r.DurationOutlier = ""
		f, ok := fences[r.Season]
		if !ok || !r.Valid() {
			continue
		}
		switch d := *r.DurationMinutes; {
		case d < f.low:
			r.DurationOutlier = domain.OutlierLow
		case d > f.high:
			r.DurationOutlier = domain.OutlierHigh
		}
	}
}

// Summarize averages the metrics of valid records per season, ordered by
// season. Rejected games are left out.
func Summarize(records []domain.GameRecord) []domain.SeasonMetrics {
	bySeason := make(map[int][]domain.GameRecord)
	for _, r := range records {
		if r.Valid() {
			bySeason[r.Season] = append(bySeason[r.Season], r)
		}
	}

	out := make([]domain.SeasonMetrics, 0, len(bySeason))
	for season, games := range bySeason {
		out = append(out, summarizeSeason(season, games))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Season < out[j].Season })
	return out
}

func summarizeSeason(season int, games []domain.GameRecord) domain.SeasonMetrics {
	s := domain.SeasonMetrics{Season: season, Games: len(games)}
	for _, g := range games {
		if len(g.Flags()) > 0 {
			s.Flagged++
		}
	}

	count := func(f func(domain.GameMetrics) int) *float64 {
		x := make([]float64, len(games))
		for i, g := range games {
			x[i] = float64(f(g.GameMetrics))
		}
		return mean(x)
	}
	length := func(f func(domain.GameMetrics) *float64) *float64 {
		var x []float64
		for _, g := range games {
			if v := f(g.GameMetrics); v != nil {
				x = append(x, *v)
			}
		}
		return mean(x)
	}

	s.Timeouts = count(func(m domain.GameMetrics) int { return m.Timeouts })
	s.Challenges = count(func(m domain.GameMetrics) int { return m.Challenges })
	s.Replays = count(func(m domain.GameMetrics) int { return m.Replays })
	s.Fouls = count(func(m domain.GameMetrics) int { return m.Fouls })
	s.FreeThrows = count(func(m domain.GameMetrics) int { return m.FreeThrows })
	s.TimeoutSeconds = length(func(m domain.GameMetrics) *float64 { return m.TimeoutSeconds })
	s.ReplaySeconds = length(func(m domain.GameMetrics) *float64 { return m.ReplaySeconds })
	s.HalftimeMinutes = length(func(m domain.GameMetrics) *float64 { return m.HalftimeMinutes })
	s.FinalPeriodMinutes = length(func(m domain.GameMetrics) *float64 { return m.FinalPeriodMinutes })
	return s
}

func mean(x []float64) *float64 {
	if len(x) == 0 {
		return nil
	}
	m := stat.Mean(x, nil)
	return &m
}
