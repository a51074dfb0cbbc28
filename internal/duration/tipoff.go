package duration

import (
	"cmp"
	"fmt"
	"slices"

	"game_duration/internal/domain"
)

// TipoffCandidate is a first-period row whose game clock is an accepted
// tipoff value.
type TipoffCandidate struct {
	Row      domain.RawEventRow
	Priority int // index in the accepted-clock list, lower wins
	Position int // index in event order, higher wins on a priority tie
}

// compareCandidates orders the best tipoff candidate first.
func compareCandidates(a, b TipoffCandidate) int {
	if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
		return c
	}
	return cmp.Compare(b.Position, a.Position)
}

// TipoffRule holds the accepted tipoff clock values, most canonical first.
type TipoffRule struct {
	clocks []gameClock
}

func NewTipoffRule(values []string) (TipoffRule, error) {
	if len(values) == 0 {
		return TipoffRule{}, fmt.Errorf("no tipoff clock values")
	}
	clocks := make([]gameClock, 0, len(values))
	for _, v := range values {
		c, err := parseGameClock(v)
		if err != nil {
			return TipoffRule{}, fmt.Errorf("tipoff clock: %w", err)
		}
		clocks = append(clocks, c)
	}
	return TipoffRule{clocks: clocks}, nil
}

// Candidates returns the tipoff candidates of rows, which must be in event order.
func (r TipoffRule) Candidates(rows []domain.RawEventRow) []TipoffCandidate {
	var out []TipoffCandidate
	for i, row := range rows {
		if row.Period != 1 {
			continue
		}
		c, err := parseGameClock(row.GameClockTime)
		if err != nil {
			continue
		}
		if p := slices.Index(r.clocks, c); p >= 0 {
			out = append(out, TipoffCandidate{Row: row, Priority: p, Position: i})
		}
	}
	return out
}

// Select picks the tipoff row: the highest-priority clock value, and among
// rows at that value the latest one in event order.
func (r TipoffRule) Select(rows []domain.RawEventRow) (domain.RawEventRow, bool) {
	candidates := r.Candidates(rows)
	if len(candidates) == 0 {
		return domain.RawEventRow{}, false
	}
	return slices.MinFunc(candidates, compareCandidates).Row, true
}
