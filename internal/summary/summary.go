// Package summary aggregates valid game durations per season.
package summary

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"game_duration/internal/domain"
)

// Summarize returns one summary per season present in records, ordered by season.
// Statistics cover valid durations only; seasons without any are all zero.
func Summarize(records []domain.GameRecord) []domain.SeasonSummary {
	bySeason := make(map[int]*domain.SeasonSummary)
	values := make(map[int][]float64)

	for _, r := range records {
		s, ok := bySeason[r.Season]
		if !ok {
			s = &domain.SeasonSummary{Season: r.Season}
			bySeason[r.Season] = s
		}
		s.Games++
		if r.Valid() {
			s.Valid++
			values[r.Season] = append(values[r.Season], *r.DurationMinutes)
		} else {
			s.Rejected++
		}
	}

	out := make([]domain.SeasonSummary, 0, len(bySeason))
	for season, s := range bySeason {
		fill(s, values[season])
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Season < out[j].Season })
	return out
}

func fill(s *domain.SeasonSummary, x []float64) {
	if len(x) == 0 {
		return
	}
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)

	s.Mean = stat.Mean(sorted, nil)
	s.Median = Quantile(0.5, sorted)
	s.Q1 = Quantile(0.25, sorted)
	s.Q3 = Quantile(0.75, sorted)
	s.Min = floats.Min(sorted)
	s.Max = floats.Max(sorted)
	s.StdDev = finite(stat.StdDev(sorted, nil))
	s.Skewness = finite(stat.Skew(sorted, nil))
}

// Quantile interpolates linearly between the two closest ranks, h = (n-1)p,
// which is how the season tables have always been computed. sorted must be
// ascending and non-empty.
func Quantile(p float64, sorted []float64) float64 {
	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
