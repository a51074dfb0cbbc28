package domain

import "time"

// FetchStats holds statistics about one checkpoint key's fetch run.
type FetchStats struct {
	Key              CheckpointKey
	Resumed          bool
	Total            int
	Fetched          int
	Skipped          int
	Requeued         int
	Remaining        int
	Rows             int
	Interrupted      bool
	TransientFailure bool
	Done             bool
	Duration         time.Duration
}

// RunStats holds statistics about a full pipeline run.
type RunStats struct {
	RunID     string
	Fetch     []FetchStats
	Games     int
	Valid     int
	Rejected  int
	ByReason  map[string]int
	Anomalies int
	Flagged   int
	Published int
	Errors    int
	Seasons   []SeasonSummary
	Metrics   []SeasonMetrics
	Duration  time.Duration
}

// Complete reports whether every key touched by the run is fully fetched.
func (s *RunStats) Complete() bool {
	for _, f := range s.Fetch {
		if !f.Done {
			return false
		}
	}
	return true
}

// Stopped reports whether the run ended early on an interrupt or a transient failure.
func (s *RunStats) Stopped() bool {
	for _, f := range s.Fetch {
		if f.Interrupted || f.TransientFailure {
			return true
		}
	}
	return false
}

// FetchRequest selects one checkpoint key to fetch.
type FetchRequest struct {
	League League
	Season Season
	Team   string // "all", or a team id, abbreviation or nickname
}
