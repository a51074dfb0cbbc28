package domain

// GameRecord is the derived per-game result. A nil DurationMinutes means the
// game was rejected; RejectReason says why.
type GameRecord struct {
	GameID          string   `json:"game_id" db:"game_id"`
	Season          int      `json:"season" db:"season"`
	StartTime       *string  `json:"start_time" db:"start_time"`
	EndTime         *string  `json:"end_time" db:"end_time"`
	DurationMinutes *float64 `json:"duration_minutes" db:"duration_minutes"`
	Periods         int      `json:"periods" db:"periods"`
	Truncated       bool     `json:"truncated" db:"truncated"`
	RejectReason    string   `json:"reject_reason,omitempty" db:"reject_reason"`
	Anomalies       int      `json:"duplicate_anomalies" db:"duplicate_anomalies"`

	GameMetrics `json:"metrics"`
}

func (r GameRecord) Valid() bool {
	return r.DurationMinutes != nil
}

// Duration outlier sides, relative to the season's interquartile fences.
const (
	OutlierLow  = "low"
	OutlierHigh = "high"
)

// Games with more timeouts than this are flagged.
const MaxTimeouts = 8

// GameMetrics holds the secondary per-game counts and lengths. A nil length
// means the game lacked the events needed to measure it.
type GameMetrics struct {
	Timeouts           int      `json:"timeouts" db:"timeouts"`
	Challenges         int      `json:"challenges" db:"challenges"`
	Replays            int      `json:"replays" db:"replays"`
	Fouls              int      `json:"fouls" db:"fouls"`
	FreeThrows         int      `json:"free_throws" db:"free_throws"`
	TimeoutSeconds     *float64 `json:"avg_timeout_seconds" db:"avg_timeout_seconds"`
	ReplaySeconds      *float64 `json:"avg_replay_seconds" db:"avg_replay_seconds"`
	HalftimeMinutes    *float64 `json:"halftime_minutes" db:"halftime_minutes"`
	FinalPeriodMinutes *float64 `json:"final_period_minutes" db:"final_period_minutes"`
	ClockRegressions   int      `json:"clock_regressions" db:"clock_regressions"`
	ScoreDrops         int      `json:"score_drops" db:"score_drops"`
	DurationOutlier    string   `json:"duration_outlier,omitempty" db:"duration_outlier"`
}

// Flags lists the data-quality flags raised for the game. They never change
// whether the duration is valid.
func (m GameMetrics) Flags() []string {
	var flags []string
	if m.DurationOutlier != "" {
		flags = append(flags, "duration_"+m.DurationOutlier)
	}
	if m.ClockRegressions > 0 {
		flags = append(flags, "clock_regression")
	}
	if m.ScoreDrops > 0 {
		flags = append(flags, "score_drop")
	}
	if m.Timeouts > MaxTimeouts {
		flags = append(flags, "timeouts_high")
	}
	return flags
}

// SeasonMetrics averages GameMetrics over the valid games of one season.
// A nil average means no game of the season had the metric.
type SeasonMetrics struct {
	Season             int
	Games              int
	Flagged            int
	Timeouts           *float64
	Challenges         *float64
	Replays            *float64
	Fouls              *float64
	FreeThrows         *float64
	TimeoutSeconds     *float64
	ReplaySeconds      *float64
	HalftimeMinutes    *float64
	FinalPeriodMinutes *float64
}

// SeasonSummary aggregates the valid durations of one season.
type SeasonSummary struct {
	Season   int
	Games    int
	Valid    int
	Rejected int
	Mean     float64
	Median   float64
	Q1       float64
	Q3       float64
	Min      float64
	Max      float64
	StdDev   float64
	Skewness float64
}
