// Package metrics derives the secondary per-game counts, segment lengths and
// data-quality flags from deduplicated play-by-play.
package metrics

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"game_duration/internal/domain"
	"game_duration/internal/duration"
)

// Plausible windows, in seconds. Gaps outside them span a period break or a
// logging hole and are dropped.
const (
	minTimeoutGap     = 15
	maxTimeoutGap     = 300
	minReplayGap      = 5
	maxReplayGap      = 180
	minHalftime       = 120
	maxHalftime       = 1800
	minFinalPeriod    = 60
	maxFinalPeriod    = 7200
	rolloverThreshold = -12 * 3600
	secondsPerDay     = 24 * 3600
)

var scoreRe = regexp.MustCompile(`\d+`)

type event struct {
	domain.RawEventRow
	desc    string
	wall    int
	hasWall bool
}

func (e event) mentions(words ...string) bool {
	for _, w := range words {
		if strings.Contains(e.desc, w) {
			return true
		}
	}
	return false
}

func isTimeout(e event) bool {
	return e.EventType == domain.EventTimeout || e.mentions("timeout")
}

func isReplay(e event) bool {
	return e.EventType == domain.EventInstantReplay || e.mentions("replay", "review")
}

func isChallenge(e event) bool {
	return e.mentions("challenge")
}

func isFoul(e event) bool {
	return e.EventType == domain.EventFoul || e.mentions("foul")
}

func isFreeThrow(e event) bool {
	return e.EventType == domain.EventFreeThrow || e.mentions("free throw")
}

// Compute measures one game. rows are the game's deduplicated events in any
// order; regulation is the number of regulation periods for the game's
// season, which locates halftime and the final period. rows is not modified.
func Compute(rows []domain.RawEventRow, regulation int) domain.GameMetrics {
	events := prepare(rows)

	var m domain.GameMetrics
	for _, e := range events {
		if isTimeout(e) {
			m.Timeouts++
		}
		if isChallenge(e) {
			m.Challenges++
		}
		if isReplay(e) {
			m.Replays++
		}
		if isFoul(e) {
			m.Fouls++
		}
		if isFreeThrow(e) {
			m.FreeThrows++
		}
	}

	m.TimeoutSeconds = averageGap(events, isTimeout, minTimeoutGap, maxTimeoutGap)
	m.ReplaySeconds = averageGap(events, isReplay, minReplayGap, maxReplayGap)
	m.HalftimeMinutes = halftime(events, regulation)
	m.FinalPeriodMinutes = finalPeriod(events, regulation)
	m.ClockRegressions = clockRegressions(events)
	m.ScoreDrops = scoreDrops(events)
	return m
}

func prepare(rows []domain.RawEventRow) []event {
	ordered := slices.Clone(rows)
	slices.SortStableFunc(ordered, func(a, b domain.RawEventRow) int {
		if a.Period != b.Period {
			return a.Period - b.Period
		}
		return a.EventNum - b.EventNum
	})

	events := make([]event, len(ordered))
	for i, r := range ordered {
		events[i] = event{RawEventRow: r, desc: r.Description()}
		if sec, err := duration.ParseWallClock(r.WallClockTime); err == nil {
			events[i].wall = sec
			events[i].hasWall = true
		}
	}
	return events
}

// since returns the seconds from a to b, assuming b is at most one midnight
// later.
func since(a, b event) float64 {
	d := b.wall - a.wall
	if d < rolloverThreshold {
		d += secondsPerDay
	}
	return float64(d)
}

// averageGap averages, over every event matching match, the time until the
// next timestamped event that does not match, keeping gaps within [lo, hi].
func averageGap(events []event, match func(event) bool, lo, hi float64) *float64 {
	var sum float64
	var n int
	for i, e := range events {
		if !match(e) || !e.hasWall {
			continue
		}
		for _, next := range events[i+1:] {
			if match(next) || !next.hasWall {
				continue
			}
			if gap := since(e, next); gap >= lo && gap <= hi {
				sum += gap
				n++
			}
			break
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return strconv.Itoa(n) + suffix
}

// periodStart finds the first timestamped start marker of period p.
func periodStart(events []event, p int) (event, bool) {
	text := "start of " + ordinal(p) + " "
	for _, e := range events {
		if !e.hasWall {
			continue
		}
		if (e.EventType == domain.EventPeriodStart && e.Period == p) || e.mentions(text) {
			return e, true
		}
	}
	return event{}, false
}

// periodEnd finds the last timestamped end marker of period p. With final
// set, an "end of game" marker stands in when the period has none.
func periodEnd(events []event, p int, final bool) (event, bool) {
	text := "end of " + ordinal(p) + " "
	if e, ok := last(events, func(e event) bool {
		return (e.EventType == domain.EventPeriodEnd && e.Period == p) || e.mentions(text)
	}); ok || !final {
		return e, ok
	}
	return last(events, func(e event) bool { return e.mentions("end of game") })
}

func last(events []event, match func(event) bool) (event, bool) {
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].hasWall && match(events[i]) {
			return events[i], true
		}
	}
	return event{}, false
}

func segment(from, to event, lo, hi float64) *float64 {
	sec := since(from, to)
	if sec < lo || sec > hi {
		return nil
	}
	minutes := math.Round(sec/60*100) / 100
	return &minutes
}

// halftime is the break between the end of the first half and the start of
// the second: periods 2 and 3 in a four-quarter game, 1 and 2 in halves.
func halftime(events []event, regulation int) *float64 {
	half := regulation / 2
	if half < 1 {
		return nil
	}
	end, ok := periodEnd(events, half, false)
	if !ok {
		return nil
	}
	start, ok := periodStart(events, half+1)
	if !ok {
		return nil
	}
	return segment(end, start, minHalftime, maxHalftime)
}

// finalPeriod is the wall-clock length of the last regulation period.
func finalPeriod(events []event, regulation int) *float64 {
	if regulation < 1 {
		return nil
	}
	start, ok := periodStart(events, regulation)
	if !ok {
		return nil
	}
	end, ok := periodEnd(events, regulation, true)
	if !ok {
		return nil
	}
	return segment(start, end, minFinalPeriod, maxFinalPeriod)
}

// clockRegressions counts readings where the period clock went up between
// consecutive events of the same period. The clock only counts down.
func clockRegressions(events []event) int {
	n := 0
	period := -1
	var prev float64
	havePrev := false
	for _, e := range events {
		if e.Period != period {
			period = e.Period
			havePrev = false
		}
		v, err := duration.GameClockSeconds(e.GameClockTime)
		if err != nil {
			continue
		}
		if havePrev && v > prev {
			n++
		}
		prev = v
		havePrev = true
	}
	return n
}

// scoreDrops counts scores whose leading side is lower than a score already
// seen. Scores only go up.
func scoreDrops(events []event) int {
	n := 0
	best := -1
	for _, e := range events {
		v, ok := leadingScore(e.Score)
		if !ok {
			continue
		}
		if v < best {
			n++
		}
		best = max(best, v)
	}
	return n
}

func leadingScore(s string) (int, bool) {
	nums := scoreRe.FindAllString(s, -1)
	if len(nums) != 2 {
		return 0, false
	}
	a, _ := strconv.Atoi(nums[0])
	b, _ := strconv.Atoi(nums[1])
	return max(a, b), true
}
