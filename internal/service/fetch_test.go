package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"game_duration/internal/checkpoint"
	"game_duration/internal/config"
	"game_duration/internal/domain"
	"game_duration/internal/service/mocks"
	"game_duration/internal/source/nbastats"
	"game_duration/internal/storage/csvfile"
)

var (
	teamBOS = domain.Team{ID: 1610612738, Abbreviation: "BOS", Nickname: "Celtics", City: "Boston"}
	teamNYK = domain.Team{ID: 1610612752, Abbreviation: "NYK", Nickname: "Knicks", City: "New York"}

	season2023 = domain.Season{StartYear: 2023}
	keyBOS     = domain.CheckpointKey{League: domain.LeagueNBA, Season: "2023-24", Team: "BOS"}
)

func pbpRows(gameID string, team int64, start, end string) []domain.RawEventRow {
	return []domain.RawEventRow{
		{GameID: gameID, EventNum: 0, Period: 1, WallClockTime: start, GameClockTime: "12:00", TeamID: team},
		{GameID: gameID, EventNum: 1, Period: 1, WallClockTime: start, GameClockTime: "12:00", TeamID: team},
		{GameID: gameID, EventNum: 300, Period: 4, WallClockTime: end, GameClockTime: "0:00", TeamID: team},
	}
}

type FetchServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	source      *mocks.MockSource
	checkpoints *checkpoint.FileStore
	raw         *csvfile.RawStore

	service *FetchService
	cfg     config.FetchConfig
	logger  *slog.Logger
}

func (s *FetchServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.source = mocks.NewMockSource(s.ctrl)
	s.checkpoints = checkpoint.NewFileStore(s.T().TempDir())
	s.raw = csvfile.NewRawStore(s.T().TempDir())

	s.cfg = config.FetchConfig{Granularity: config.GranularityGame}
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	s.source.EXPECT().ID().Return("test-source").AnyTimes()
	s.source.EXPECT().Name().Return("Test Source").AnyTimes()
	s.source.EXPECT().FindTeam(domain.LeagueNBA, "BOS").Return(teamBOS, nil).AnyTimes()

	s.service = s.newService()
}

func (s *FetchServiceTestSuite) newService() *FetchService {
	return NewFetchService(s.source, s.checkpoints, s.raw, s.logger, s.cfg)
}

func (s *FetchServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestFetchServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FetchServiceTestSuite))
}

func (s *FetchServiceTestSuite) request() domain.FetchRequest {
	return domain.FetchRequest{League: domain.LeagueNBA, Season: season2023, Team: "BOS"}
}

func (s *FetchServiceTestSuite) expectSchedule(games ...string) {
	refs := make([]domain.GameRef, 0, len(games))
	for _, g := range games {
		refs = append(refs, domain.GameRef{GameID: g, TeamID: teamBOS.ID})
	}
	s.source.EXPECT().ListGames(gomock.Any(), domain.LeagueNBA, "2023-24", teamBOS.ID).Return(refs, nil)
}

func (s *FetchServiceTestSuite) loadCheckpoint() *domain.Checkpoint {
	cp, err := s.checkpoints.Load(context.Background(), keyBOS)
	s.Require().NoError(err)
	s.Require().NotNil(cp)
	return cp
}

func (s *FetchServiceTestSuite) TestFetch_FreshRunCompletesAllUnits() {
	ctx := context.Background()

	s.expectSchedule("0022300001", "0022300061")
	s.source.EXPECT().FetchPlayByPlay(gomock.Any(), "0022300001", teamBOS.ID).
		Return(pbpRows("0022300001", teamBOS.ID, "7:40 PM", "9:50 PM"), nil)
	s.source.EXPECT().FetchPlayByPlay(gomock.Any(), "0022300061", teamBOS.ID).
		Return(pbpRows("0022300061", teamBOS.ID, "7:10 PM", "9:20 PM"), nil)

	stats, err := s.service.Fetch(ctx, s.request())

	s.NoError(err)
	s.Equal(keyBOS, stats.Key)
	s.False(stats.Resumed)
	s.Equal(2, stats.Total)
	s.Equal(2, stats.Fetched)
	s.Equal(6, stats.Rows)
	s.Equal(0, stats.Remaining)
	s.True(stats.Done)

	cp := s.loadCheckpoint()
	s.True(cp.Done)
	s.Equal("1610612738:0022300061", cp.LastCompletedUnit)
	s.True(s.raw.HasUnit(keyBOS, "1610612738:0022300001"))
	s.True(s.raw.HasUnit(keyBOS, "1610612738:0022300061"))
}

func (s *FetchServiceTestSuite) TestFetch_TransientFailureStopsAndResumes() {
	ctx := context.Background()

	s.expectSchedule("0022300001", "0022300061", "0022300075")
	s.source.EXPECT().FetchPlayByPlay(gomock.Any(), "0022300001", teamBOS.ID).
		Return(pbpRows("0022300001", teamBOS.ID, "7:40 PM", "9:50 PM"), nil)
	s.source.EXPECT().FetchPlayByPlay(gomock.Any(), "0022300061", teamBOS.ID).
		Return(nil, &nbastats.TransientError{Op: "playbyplayv2", StatusCode: 429})

	stats, err := s.service.Fetch(ctx, s.request())

	s.NoError(err)
	s.True(stats.TransientFailure)
	s.False(stats.Done)
	s.Equal(1, stats.Fetched)
	s.Equal(2, stats.Remaining)

	cp := s.loadCheckpoint()
	s.Equal([]string{"1610612738:0022300061", "1610612738:0022300075"}, cp.PendingUnits)
	s.Equal([]string{"1610612738:0022300001"}, cp.CompletedUnits)

	// Second run: no schedule lookup, no request for the completed unit.
	s.source.EXPECT().FetchPlayByPlay(gomock.Any(), "0022300061", teamBOS.ID).
		Return(pbpRows("0022300061", teamBOS.ID, "7:10 PM", "9:20 PM"), nil)
	s.source.EXPECT().FetchPlayByPlay(gomock.Any(), "0022300075", teamBOS.ID).
		Return(pbpRows("0022300075", teamBOS.ID, "8:10 PM", "10:20 PM"), nil)

	stats, err = s.newService().Fetch(ctx, s.request())

	s.NoError(err)
	s.True(stats.Resumed)
	s.Equal(2, stats.Fetched)
	s.True(stats.Done)
	s.True(s.loadCheckpoint().Done)
}

func (s *FetchServiceTestSuite) TestFetch_InterruptMidRequestLeavesUnitPending() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.expectSchedule("0022300001", "0022300061")
	s.source.EXPECT().FetchPlayByPlay(gomock.Any(), "0022300001", teamBOS.ID).DoAndReturn(
		func(ctx context.Context, _ string, _ int64) ([]domain.RawEventRow, error) {
			cancel()
			return nil, ctx.Err()
		},
	)

	stats, err := s.service.Fetch(ctx, s.request())

	s.NoError(err)
	s.True(stats.Interrupted)
	s.Equal(0, stats.Fetched)
	s.Equal(2, stats.Remaining)
	s.False(s.raw.HasUnit(keyBOS, "1610612738:0022300001"))
	s.Equal([]string{"1610612738:0022300001", "1610612738:0022300061"}, s.loadCheckpoint().PendingUnits)
}

func (s *FetchServiceTestSuite) TestFetch_ReceivedResponseIsPersistedOnInterrupt() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.expectSchedule("0022300001", "0022300061")
	s.source.EXPECT().FetchPlayByPlay(gomock.Any(), "0022300001", teamBOS.ID).DoAndReturn(
		func(context.Context, string, int64) ([]domain.RawEventRow, error) {
			cancel()
			return pbpRows("0022300001", teamBOS.ID, "7:40 PM", "9:50 PM"), nil
		},
	)

	stats, err := s.service.Fetch(ctx, s.request())

	s.NoError(err)
	s.True(stats.Interrupted)
	s.Equal(1, stats.Fetched)
	s.True(s.raw.HasUnit(keyBOS, "1610612738:0022300001"))

	cp := s.loadCheckpoint()
	s.Equal([]string{"1610612738:0022300001"}, cp.CompletedUnits)
	s.Equal([]string{"1610612738:0022300061"}, cp.PendingUnits)
}

func (s *FetchServiceTestSuite) TestFetch_EmptyUnitIsSkipped() {
	ctx := context.Background()

	s.expectSchedule("0012300010", "0022300001")
	s.source.EXPECT().FetchPlayByPlay(gomock.Any(), "0012300010", teamBOS.ID).Return(nil, nil)
	s.source.EXPECT().FetchPlayByPlay(gomock.Any(), "0022300001", teamBOS.ID).
		Return(pbpRows("0022300001", teamBOS.ID, "7:40 PM", "9:50 PM"), nil)

	stats, err := s.service.Fetch(ctx, s.request())

	s.NoError(err)
	s.Equal(1, stats.Skipped)
	s.Equal(1, stats.Fetched)
	s.True(stats.Done)
	s.False(s.raw.HasUnit(keyBOS, "1610612738:0012300010"))

	cp := s.loadCheckpoint()
	s.Equal([]string{"1610612738:0012300010"}, cp.SkippedUnits)
}

func (s *FetchServiceTestSuite) TestFetch_PermanentErrorIsReturned() {
	ctx := context.Background()

	s.expectSchedule("0022300001")
	s.source.EXPECT().FetchPlayByPlay(gomock.Any(), "0022300001", teamBOS.ID).
		Return(nil, &nbastats.StatusError{StatusCode: 400})

	stats, err := s.service.Fetch(ctx, s.request())

	s.Error(err)
	s.NotNil(stats)
	s.False(stats.TransientFailure)
	s.Equal([]string{"1610612738:0022300001"}, s.loadCheckpoint().PendingUnits)
}

func (s *FetchServiceTestSuite) TestFetch_RequeuesUnitsWithMissingData() {
	ctx := context.Background()

	s.expectSchedule("0022300001")
	s.source.EXPECT().FetchPlayByPlay(gomock.Any(), "0022300001", teamBOS.ID).
		Return(pbpRows("0022300001", teamBOS.ID, "7:40 PM", "9:50 PM"), nil).Times(2)

	_, err := s.service.Fetch(ctx, s.request())
	s.Require().NoError(err)

	s.Require().NoError(os.Remove(s.raw.Path(keyBOS, "1610612738:0022300001")))

	stats, err := s.service.Fetch(ctx, s.request())

	s.NoError(err)
	s.Equal(1, stats.Requeued)
	s.Equal(1, stats.Fetched)
	s.True(stats.Done)
	s.True(s.raw.HasUnit(keyBOS, "1610612738:0022300001"))
}

func (s *FetchServiceTestSuite) TestFetch_DoneCheckpointFetchesNothing() {
	ctx := context.Background()

	s.expectSchedule("0022300001")
	s.source.EXPECT().FetchPlayByPlay(gomock.Any(), "0022300001", teamBOS.ID).
		Return(pbpRows("0022300001", teamBOS.ID, "7:40 PM", "9:50 PM"), nil)

	_, err := s.service.Fetch(ctx, s.request())
	s.Require().NoError(err)

	stats, err := s.service.Fetch(ctx, s.request())

	s.NoError(err)
	s.True(stats.Resumed)
	s.True(stats.Done)
	s.Equal(0, stats.Fetched)
}

func (s *FetchServiceTestSuite) TestFetch_TeamGranularity() {
	ctx := context.Background()
	s.cfg.Granularity = config.GranularityTeam
	s.service = s.newService()

	s.expectSchedule("0022300001", "0022300061")
	s.expectSchedule("0022300001", "0022300061")
	s.source.EXPECT().FetchPlayByPlay(gomock.Any(), "0022300001", teamBOS.ID).
		Return(pbpRows("0022300001", teamBOS.ID, "7:40 PM", "9:50 PM"), nil)
	s.source.EXPECT().FetchPlayByPlay(gomock.Any(), "0022300061", teamBOS.ID).Return(nil, nil)

	stats, err := s.service.Fetch(ctx, s.request())

	s.NoError(err)
	s.Equal(1, stats.Total)
	s.Equal(1, stats.Fetched)
	s.Equal(3, stats.Rows)
	s.True(s.raw.HasUnit(keyBOS, "1610612738"))
}

func (s *FetchServiceTestSuite) TestFetch_RegularSeasonOnly() {
	ctx := context.Background()
	s.cfg.RegularSeasonOnly = true
	s.service = s.newService()

	s.expectSchedule("0012300010", "0022300001", "0042300101")
	s.source.EXPECT().FetchPlayByPlay(gomock.Any(), "0022300001", teamBOS.ID).
		Return(pbpRows("0022300001", teamBOS.ID, "7:40 PM", "9:50 PM"), nil)

	stats, err := s.service.Fetch(ctx, s.request())

	s.NoError(err)
	s.Equal(1, stats.Total)
	s.True(stats.Done)
}

func (s *FetchServiceTestSuite) TestFetch_AllTeams() {
	ctx := context.Background()
	key := domain.CheckpointKey{League: domain.LeagueNBA, Season: "2023-24", Team: domain.AllTeams}

	s.source.EXPECT().Teams(domain.LeagueNBA).Return([]domain.Team{teamBOS, teamNYK})
	s.source.EXPECT().ListGames(gomock.Any(), domain.LeagueNBA, "2023-24", teamBOS.ID).
		Return([]domain.GameRef{{GameID: "0022300001", TeamID: teamBOS.ID}}, nil)
	s.source.EXPECT().ListGames(gomock.Any(), domain.LeagueNBA, "2023-24", teamNYK.ID).
		Return([]domain.GameRef{{GameID: "0022300001", TeamID: teamNYK.ID}}, nil)
	s.source.EXPECT().FetchPlayByPlay(gomock.Any(), "0022300001", teamBOS.ID).
		Return(pbpRows("0022300001", teamBOS.ID, "7:40 PM", "9:50 PM"), nil)
	s.source.EXPECT().FetchPlayByPlay(gomock.Any(), "0022300001", teamNYK.ID).
		Return(pbpRows("0022300001", teamNYK.ID, "7:40 PM", "9:50 PM"), nil)

	stats, err := s.service.Fetch(ctx, domain.FetchRequest{League: domain.LeagueNBA, Season: season2023, Team: "all"})

	s.NoError(err)
	s.Equal(key, stats.Key)
	s.Equal(2, stats.Fetched)
	s.True(s.raw.HasUnit(key, "1610612752:0022300001"))
}

func (s *FetchServiceTestSuite) TestFetch_UnknownTeam() {
	s.source.EXPECT().FindTeam(domain.LeagueNBA, "Sonics").Return(domain.Team{}, errors.New("team not found"))

	_, err := s.service.Fetch(context.Background(), domain.FetchRequest{League: domain.LeagueNBA, Season: season2023, Team: "Sonics"})
	s.Error(err)
}

// Ordering is checked against strict mocks: the checkpoint may only advance
// after the unit's data write has returned successfully.
func TestFetch_WritesDataBeforeAdvancingCheckpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	source := mocks.NewMockSource(ctrl)
	checkpoints := mocks.NewMockCheckpointStore(ctrl)
	raw := mocks.NewMockRawStore(ctrl)

	source.EXPECT().ID().Return("test-source").AnyTimes()
	source.EXPECT().Name().Return("Test Source").AnyTimes()
	source.EXPECT().FindTeam(domain.LeagueNBA, "BOS").Return(teamBOS, nil)
	source.EXPECT().ListGames(gomock.Any(), domain.LeagueNBA, "2023-24", teamBOS.ID).
		Return([]domain.GameRef{{GameID: "0022300001"}, {GameID: "0022300061"}}, nil)

	rows := pbpRows("0022300001", teamBOS.ID, "7:40 PM", "9:50 PM")
	unit1 := "1610612738:0022300001"
	unit2 := "1610612738:0022300061"

	gomock.InOrder(
		checkpoints.EXPECT().Load(gomock.Any(), keyBOS).Return(nil, nil),
		checkpoints.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil),
		source.EXPECT().FetchPlayByPlay(gomock.Any(), "0022300001", teamBOS.ID).Return(rows, nil),
		raw.EXPECT().WriteUnit(gomock.Any(), keyBOS, unit1, rows).Return(nil),
		checkpoints.EXPECT().MarkUnitComplete(gomock.Any(), keyBOS, unit1).Return(nil),
		source.EXPECT().FetchPlayByPlay(gomock.Any(), "0022300061", teamBOS.ID).Return(rows, nil),
		raw.EXPECT().WriteUnit(gomock.Any(), keyBOS, unit2, rows).Return(errors.New("disk full")),
		checkpoints.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, cp *domain.Checkpoint) error {
				if cp.LastCompletedUnit != unit1 || len(cp.PendingUnits) != 1 || cp.PendingUnits[0] != unit2 {
					t.Errorf("flushed checkpoint advanced past failed write: %+v", cp)
				}
				return nil
			},
		),
	)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	svc := NewFetchService(source, checkpoints, raw, logger, config.FetchConfig{Granularity: config.GranularityGame})

	stats, err := svc.Fetch(ctx, domain.FetchRequest{League: domain.LeagueNBA, Season: season2023, Team: "BOS"})
	if err == nil {
		t.Fatal("expected write failure to be returned")
	}
	if stats.Fetched != 1 {
		t.Fatalf("fetched = %d, want 1", stats.Fetched)
	}
}
