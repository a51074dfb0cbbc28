package nbastats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"game_duration/internal/domain"
)

const (
	SourceID   = "nbastats"
	SourceName = "NBA Stats"

	DefaultBaseURL = "https://stats.nba.com/stats"
)

// Config holds stats.nba.com source configuration.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	MinPacing      time.Duration
	MaxPacing      time.Duration
}

// Source reads schedules and play-by-play tables from stats.nba.com.
type Source struct {
	httpClient     *http.Client
	baseURL        string
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	minPacing      time.Duration
	maxPacing      time.Duration
	logger         *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Source {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Source{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        cfg.BaseURL,
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		minPacing:      cfg.MinPacing,
		maxPacing:      cfg.MaxPacing,
		logger:         logger.With("source", SourceID),
	}
}

func (s *Source) ID() string {
	return SourceID
}

func (s *Source) Name() string {
	return SourceName
}

// ListGames returns a team's schedule for one season, ordered by date then game id.
func (s *Source) ListGames(ctx context.Context, league domain.League, season string, teamID int64) ([]domain.GameRef, error) {
	q := url.Values{}
	q.Set("PlayerOrTeam", "T")
	q.Set("LeagueID", league.ID())
	q.Set("TeamID", strconv.FormatInt(teamID, 10))
	q.Set("Season", season)

	resp, err := s.get(ctx, "leaguegamefinder", q)
	if err != nil {
		return nil, fmt.Errorf("list games for team %d: %w", teamID, err)
	}

	t, err := newTable(resp.first(), "GAME_ID")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(t.rows))
	games := make([]domain.GameRef, 0, len(t.rows))
	for _, row := range t.rows {
		id := domain.NormalizeGameID(t.str(row, "GAME_ID"))
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		games = append(games, domain.GameRef{
			GameID:   id,
			TeamID:   teamID,
			GameDate: t.str(row, "GAME_DATE"),
			Matchup:  t.str(row, "MATCHUP"),
		})
	}

	sort.Slice(games, func(i, j int) bool {
		if games[i].GameDate != games[j].GameDate {
			return games[i].GameDate < games[j].GameDate
		}
		return games[i].GameID < games[j].GameID
	})

	s.logger.Debug("listed games", "team_id", teamID, "season", season, "games", len(games))
	return games, nil
}

// FetchPlayByPlay returns one game's events as seen by feedTeamID's feed.
// An empty, error-free result means the game has no play-by-play.
func (s *Source) FetchPlayByPlay(ctx context.Context, gameID string, feedTeamID int64) ([]domain.RawEventRow, error) {
	q := url.Values{}
	q.Set("GameID", domain.NormalizeGameID(gameID))
	q.Set("StartPeriod", "0")
	q.Set("EndPeriod", "14")

	resp, err := s.get(ctx, "playbyplayv2", q)
	if err != nil {
		return nil, fmt.Errorf("fetch play-by-play %s: %w", gameID, err)
	}

	t, err := newTable(resp.first(), "GAME_ID", "EVENTNUM", "PERIOD", "WCTIMESTRING", "PCTIMESTRING")
	if err != nil {
		return nil, err
	}

	rows := make([]domain.RawEventRow, 0, len(t.rows))
	for _, row := range t.rows {
		rows = append(rows, domain.RawEventRow{
			GameID:             domain.NormalizeGameID(t.str(row, "GAME_ID")),
			EventNum:           int(t.int(row, "EVENTNUM")),
			EventType:          int(t.int(row, "EVENTMSGTYPE")),
			Period:             int(t.int(row, "PERIOD")),
			WallClockTime:      t.str(row, "WCTIMESTRING"),
			GameClockTime:      t.str(row, "PCTIMESTRING"),
			HomeDescription:    t.str(row, "HOMEDESCRIPTION"),
			NeutralDescription: t.str(row, "NEUTRALDESCRIPTION"),
			VisitorDescription: t.str(row, "VISITORDESCRIPTION"),
			Score:              t.str(row, "SCORE"),
			TeamID:             feedTeamID,
		})
	}

	return rows, nil
}

func (s *Source) get(ctx context.Context, endpoint string, q url.Values) (*APIResponse, error) {
	u := fmt.Sprintf("%s/%s?%s", s.baseURL, endpoint, q.Encode())

	var resp *APIResponse
	var err error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if err := s.pace(ctx); err != nil {
			return nil, err
		}

		resp, err = s.doRequest(ctx, endpoint, u)
		if err == nil {
			return resp, nil
		}
		if !IsTransient(err) || attempt == s.maxAttempts {
			break
		}

		backoff := s.calculateBackoff(attempt)
		s.logger.Warn("request failed, retrying",
			"endpoint", endpoint,
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	if IsTransient(err) {
		return nil, fmt.Errorf("after %d attempts: %w", s.maxAttempts, err)
	}
	return nil, err
}

func (s *Source) doRequest(ctx context.Context, endpoint, u string) (*APIResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", "https://www.nba.com/")
	req.Header.Set("Origin", "https://www.nba.com")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("x-nba-stats-origin", "stats")
	req.Header.Set("x-nba-stats-token", "true")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, classify(endpoint, fmt.Errorf("execute request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if transientStatus(resp.StatusCode) {
			return nil, &TransientError{Op: endpoint, StatusCode: resp.StatusCode, Err: &StatusError{StatusCode: resp.StatusCode}}
		}
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var apiResp APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &TransientError{Op: endpoint, Err: fmt.Errorf("decode response: %w", err)}
	}

	return &apiResp, nil
}

func (s *Source) calculateBackoff(attempt int) time.Duration {
	backoff := s.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > s.maxBackoff {
		backoff = s.maxBackoff
	}
	return backoff
}

// pace sleeps a random duration in [minPacing, maxPacing] before a request.
func (s *Source) pace(ctx context.Context) error {
	d := s.minPacing
	if spread := s.maxPacing - s.minPacing; spread > 0 {
		d += time.Duration(rand.Int63n(int64(spread)))
	}
	if d <= 0 {
		return ctx.Err()
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
