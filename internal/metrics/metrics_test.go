package metrics

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"game_duration/internal/domain"
	"game_duration/testdata/utils"
)

type ev struct {
	period, num, typ int
	wall, clock      string
	desc, score      string
}

func rows(events ...ev) []domain.RawEventRow {
	out := make([]domain.RawEventRow, len(events))
	for i, e := range events {
		out[i] = domain.RawEventRow{
			GameID:             "0022300001",
			EventNum:           e.num,
			EventType:          e.typ,
			Period:             e.period,
			WallClockTime:      e.wall,
			GameClockTime:      e.clock,
			NeutralDescription: e.desc,
			Score:              e.score,
			TeamID:             1610612738,
		}
	}
	return out
}

func quarterGame() []domain.RawEventRow {
	return rows(
		ev{1, 0, 12, "7:40 PM", "12:00", "Start of 1st Period (7:40 PM EST)", ""},
		ev{1, 1, 10, "7:41 PM", "12:00", "Jump Ball Horford vs. Robinson", ""},
		ev{1, 2, 6, "7:45 PM", "10:30", "Tatum S.FOUL (P1.T1)", ""},
		ev{1, 3, 3, "7:45 PM", "10:30", "Brunson Free Throw 1 of 2 (1 PTS)", "0 - 1"},
		ev{1, 4, 3, "7:46 PM", "10:30", "Brunson Free Throw 2 of 2 (2 PTS)", "0 - 2"},
		ev{1, 5, 9, "7:50 PM", "8:00", "Celtics Timeout: Regular (Full 1 Short 0)", ""},
		ev{1, 6, 1, "7:52 PM", "7:40", "Tatum 26' 3PT Jump Shot (3 PTS)", "3 - 2"},
		ev{1, 7, 18, "7:55 PM", "7:00", "Instant Replay Challenge: Overturned", ""},
		ev{1, 8, 2, "7:56 PM", "7:10", "MISS Brown Layup", ""},
		ev{1, 9, 13, "8:05 PM", "0:00", "End of 1st Period", ""},
		ev{2, 10, 12, "8:07 PM", "12:00", "Start of 2nd Period", ""},
		ev{2, 11, 1, "8:20 PM", "5:00", "Brown Dunk", "40 - 38"},
		ev{2, 12, 13, "8:30 PM", "0:00", "End of 2nd Period (8:30 PM EST)", ""},
		ev{3, 13, 12, "8:45 PM", "12:00", "Start of 3rd Period", ""},
		ev{3, 14, 1, "8:50 PM", "10:00", "Hart Layup", "39 - 38"},
		ev{3, 15, 13, "9:10 PM", "0:00", "End of 3rd Period", ""},
		ev{4, 16, 12, "9:12 PM", "12:00", "Start of 4th Period", ""},
		ev{4, 17, 13, "9:45 PM", "0:00", "End of 4th Period", ""},
	)
}

func TestCompute_QuarterGame(t *testing.T) {
	m := Compute(quarterGame(), 4)

	assert.Equal(t, 1, m.Timeouts)
	assert.Equal(t, 1, m.Challenges)
	assert.Equal(t, 1, m.Replays)
	assert.Equal(t, 1, m.Fouls)
	assert.Equal(t, 2, m.FreeThrows)

	require.NotNil(t, m.TimeoutSeconds)
	assert.InDelta(t, 120.0, *m.TimeoutSeconds, 1e-9)
	require.NotNil(t, m.ReplaySeconds)
	assert.InDelta(t, 60.0, *m.ReplaySeconds, 1e-9)
	require.NotNil(t, m.HalftimeMinutes)
	assert.InDelta(t, 15.0, *m.HalftimeMinutes, 1e-9)
	require.NotNil(t, m.FinalPeriodMinutes)
	assert.InDelta(t, 33.0, *m.FinalPeriodMinutes, 1e-9)

	assert.Equal(t, 1, m.ClockRegressions)
	assert.Equal(t, 1, m.ScoreDrops)
	assert.Empty(t, m.DurationOutlier)
}

func TestCompute_OrderIndependent(t *testing.T) {
	in := quarterGame()
	shuffled := slices.Clone(in)
	slices.Reverse(shuffled)
	snapshot := slices.Clone(shuffled)

	assert.Equal(t, Compute(in, 4), Compute(shuffled, 4))
	assert.Equal(t, snapshot, shuffled)
}

func TestCompute_HalvesEra(t *testing.T) {
	in := rows(
		ev{1, 0, 0, "7:00 PM", "20:00", "Start of 1st Half", ""},
		ev{1, 1, 0, "8:30 PM", "0:00", "End of 1st Half", ""},
		ev{2, 2, 0, "8:45 PM", "20:00", "Start of 2nd Half", ""},
		ev{2, 3, 0, "9:40 PM", "0:00", "End of Game", ""},
	)

	m := Compute(in, 2)

	require.NotNil(t, m.HalftimeMinutes)
	assert.InDelta(t, 15.0, *m.HalftimeMinutes, 1e-9)
	require.NotNil(t, m.FinalPeriodMinutes)
	assert.InDelta(t, 55.0, *m.FinalPeriodMinutes, 1e-9)
}

func TestCompute_TimeoutAcrossMidnight(t *testing.T) {
	in := rows(
		ev{4, 1, 9, "11:59 PM", "1:00", "Knicks Timeout: Regular", ""},
		ev{4, 2, 1, "12:01 AM", "0:58", "Brunson Jump Shot", ""},
	)

	m := Compute(in, 4)

	require.NotNil(t, m.TimeoutSeconds)
	assert.InDelta(t, 120.0, *m.TimeoutSeconds, 1e-9)
}

func TestCompute_ImplausibleGapsDropped(t *testing.T) {
	in := rows(
		ev{2, 1, 9, "7:50 PM", "0:30", "Celtics Timeout: Regular", ""},
		ev{2, 2, 13, "8:10 PM", "0:00", "End of 2nd Period", ""},
		ev{3, 3, 12, "8:11 PM", "12:00", "Start of 3rd Period", ""},
	)

	m := Compute(in, 4)

	assert.Equal(t, 1, m.Timeouts)
	assert.Nil(t, m.TimeoutSeconds)
	assert.Nil(t, m.HalftimeMinutes, "a one-minute halftime is a logging hole")
	assert.Nil(t, m.FinalPeriodMinutes)
}

func TestCompute_NoRows(t *testing.T) {
	assert.Equal(t, domain.GameMetrics{}, Compute(nil, 4))
}

func TestOrdinal(t *testing.T) {
	for n, want := range map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th", 21: "21st"} {
		assert.Equal(t, want, ordinal(n))
	}
}

func record(season int, minutes *float64, m domain.GameMetrics) domain.GameRecord {
	r := domain.GameRecord{GameID: "0022300001", Season: season, DurationMinutes: minutes, GameMetrics: m}
	if minutes == nil {
		r.RejectReason = "implausible_duration"
	}
	return r
}

func TestFlagOutliers(t *testing.T) {
	var records []domain.GameRecord
	for _, d := range []float64{60, 120, 125, 130, 135, 140, 300} {
		records = append(records, record(2023, utils.Ptr(d), domain.GameMetrics{}))
	}
	records = append(records, record(2023, nil, domain.GameMetrics{}))
	records = append(records, record(2022, utils.Ptr(300.0), domain.GameMetrics{}), record(2022, utils.Ptr(120.0), domain.GameMetrics{}))

	FlagOutliers(records)

	assert.Equal(t, domain.OutlierLow, records[0].DurationOutlier)
	for _, r := range records[1:6] {
		assert.Empty(t, r.DurationOutlier)
	}
	assert.Equal(t, domain.OutlierHigh, records[6].DurationOutlier)
	assert.Empty(t, records[7].DurationOutlier, "rejected games are never flagged")
	assert.Empty(t, records[8].DurationOutlier, "too few games for fences")
	assert.Equal(t, []string{"duration_high"}, records[6].Flags())
	assert.True(t, records[6].Valid(), "flags never reject a game")
}

func TestFlags(t *testing.T) {
	m := domain.GameMetrics{DurationOutlier: domain.OutlierLow, ClockRegressions: 2, ScoreDrops: 1, Timeouts: domain.MaxTimeouts + 1}
	assert.Equal(t, []string{"duration_low", "clock_regression", "score_drop", "timeouts_high"}, m.Flags())
	assert.Empty(t, domain.GameMetrics{Timeouts: domain.MaxTimeouts}.Flags())
}

func TestSummarize(t *testing.T) {
	records := []domain.GameRecord{
		record(2023, utils.Ptr(130.0), domain.GameMetrics{Timeouts: 2, Fouls: 40, HalftimeMinutes: utils.Ptr(15.0)}),
		record(2023, utils.Ptr(140.0), domain.GameMetrics{Timeouts: 4, Fouls: 44, ClockRegressions: 1}),
		record(2023, nil, domain.GameMetrics{Timeouts: 100}),
		record(2019, utils.Ptr(125.0), domain.GameMetrics{FreeThrows: 30}),
	}

	got := Summarize(records)

	require.Len(t, got, 2)
	assert.Equal(t, 2019, got[0].Season)
	require.NotNil(t, got[0].FreeThrows)
	assert.InDelta(t, 30.0, *got[0].FreeThrows, 1e-9)

	s := got[1]
	assert.Equal(t, 2023, s.Season)
	assert.Equal(t, 2, s.Games)
	assert.Equal(t, 1, s.Flagged)
	require.NotNil(t, s.Timeouts)
	assert.InDelta(t, 3.0, *s.Timeouts, 1e-9)
	require.NotNil(t, s.Fouls)
	assert.InDelta(t, 42.0, *s.Fouls, 1e-9)
	require.NotNil(t, s.HalftimeMinutes)
	assert.InDelta(t, 15.0, *s.HalftimeMinutes, 1e-9)
	assert.Nil(t, s.ReplaySeconds)
	assert.Nil(t, s.FinalPeriodMinutes)
}
