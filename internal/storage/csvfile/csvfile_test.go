package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"game_duration/internal/domain"
	"game_duration/testdata/utils"
)

var key = domain.CheckpointKey{League: domain.LeagueNBA, Season: "2023-24", Team: "BOS"}

func sampleRows() []domain.RawEventRow {
	return []domain.RawEventRow{
		{GameID: "0022300001", EventNum: 1, EventType: 12, Period: 1, WallClockTime: "7:42 PM", GameClockTime: "12:00", NeutralDescription: "Start of 1st Period", TeamID: 1610612738},
		{GameID: "0022300001", EventNum: 2, EventType: 1, Period: 1, WallClockTime: "7:43 PM", GameClockTime: "11:41", HomeDescription: "Tatum 3PT, \"Jump Shot\"", Score: "0 - 3", TeamID: 1610612738},
	}
}

func TestRawStore_WriteAndRead(t *testing.T) {
	ctx := context.Background()
	store := NewRawStore(t.TempDir())

	unit := "1610612738:0022300001"
	require.NoError(t, store.WriteUnit(ctx, key, unit, sampleRows()))
	assert.True(t, store.HasUnit(key, unit))
	assert.False(t, store.HasUnit(key, "1610612738:0022300002"))
	assert.Equal(t, "1610612738_0022300001.csv", filepath.Base(store.Path(key, unit)))

	rows, err := store.ReadUnit(key, unit)
	require.NoError(t, err)
	assert.Equal(t, sampleRows(), rows)
}

func TestRawStore_RejectsEmptyUnit(t *testing.T) {
	store := NewRawStore(t.TempDir())

	err := store.WriteUnit(context.Background(), key, "1610612738:0012300010", nil)
	assert.ErrorIs(t, err, ErrEmptyUnit)
	assert.False(t, store.HasUnit(key, "1610612738:0012300010"))
}

func TestRawStore_ListUnitsIgnoresTempFiles(t *testing.T) {
	ctx := context.Background()
	store := NewRawStore(t.TempDir())

	units, err := store.ListUnits(key)
	require.NoError(t, err)
	assert.Empty(t, units)

	require.NoError(t, store.WriteUnit(ctx, key, "1610612752:0022300001", sampleRows()))
	require.NoError(t, store.WriteUnit(ctx, key, "1610612738:0022300001", sampleRows()))

	final := store.Path(key, "1610612738:0022300061")
	stray := filepath.Join(filepath.Dir(final), "."+filepath.Base(final)+"42")
	require.NoError(t, os.WriteFile(stray, []byte("GAME_ID,EVE"), 0o644))

	units, err = store.ListUnits(key)
	require.NoError(t, err)
	assert.Equal(t, []string{"1610612738:0022300001", "1610612752:0022300001"}, units)

	all, err := store.ReadAll(key)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestDecodeRows_SpreadsheetExport(t *testing.T) {
	data := "GAME_ID,EVENTNUM,PERIOD,WCTIMESTRING,PCTIMESTRING\n22300001,4.0,1,7:42 PM,12:00\n"

	rows, err := decodeRows(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "0022300001", rows[0].GameID)
	assert.Equal(t, 4, rows[0].EventNum)
}

func TestDecodeRows_MissingColumn(t *testing.T) {
	_, err := decodeRows(strings.NewReader("GAME_ID,EVENTNUM\n1,2\n"))
	assert.Error(t, err)
}

func TestTableWriter_Records(t *testing.T) {
	dir := t.TempDir()
	w := NewTableWriter(dir)

	records := []domain.GameRecord{
		{GameID: "0022300001", Season: 2023, StartTime: utils.Ptr("19:42:00"), EndTime: utils.Ptr("21:58:00"), DurationMinutes: utils.Ptr(136.0)},
		{GameID: "0022300002", Season: 2023, RejectReason: "no_tipoff"},
	}
	require.NoError(t, w.WriteRecords(context.Background(), key, records))

	data, err := os.ReadFile(w.RecordsPath(key))
	require.NoError(t, err)
	assert.Equal(t,
		"game_id,season,start_time,end_time,duration_minutes\n"+
			"0022300001,2023,19:42:00,21:58:00,136\n"+
			"0022300002,2023,,,\n",
		string(data))
}

func TestTableWriter_Summaries(t *testing.T) {
	w := NewTableWriter(t.TempDir())

	summaries := []domain.SeasonSummary{{Season: 2023, Games: 3, Valid: 2, Rejected: 1, Mean: 135.5, Median: 135.5, Min: 131, Max: 140}}
	require.NoError(t, w.WriteSummaries(context.Background(), key, summaries))

	data, err := os.ReadFile(w.SummaryPath(key))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(SummaryHeader, ","), lines[0])
	assert.Equal(t, "2023,3,2,1,135.50,135.50,0.00,0.00,131.00,140.00,0.00,0.00", lines[1])
}

func TestTableWriter_Metrics(t *testing.T) {
	w := NewTableWriter(t.TempDir())

	records := []domain.GameRecord{
		{
			GameID: "0022300001", Season: 2023, DurationMinutes: utils.Ptr(300.0),
			GameMetrics: domain.GameMetrics{
				Timeouts: 9, Fouls: 41, FreeThrows: 44,
				TimeoutSeconds:  utils.Ptr(95.5),
				HalftimeMinutes: utils.Ptr(15.25),
				ScoreDrops:      1,
				DurationOutlier: domain.OutlierHigh,
			},
		},
		{GameID: "0022300002", Season: 2023, RejectReason: "no_tipoff"},
	}
	seasons := []domain.SeasonMetrics{{Season: 2023, Games: 1, Flagged: 1, Timeouts: utils.Ptr(9.0), HalftimeMinutes: utils.Ptr(15.25)}}
	require.NoError(t, w.WriteMetrics(context.Background(), key, records, seasons))

	data, err := os.ReadFile(w.GameMetricsPath(key))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(GameMetricsHeader, ","), lines[0])
	assert.Equal(t, "0022300001,2023,9,0,0,41,44,95.50,,15.25,,0,1,high,duration_high;score_drop;timeouts_high", lines[1])
	assert.Equal(t, "0022300002,2023,0,0,0,0,0,,,,,0,0,,", lines[2])

	data, err = os.ReadFile(w.SeasonMetricsPath(key))
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(SeasonMetricsHeader, ","), lines[0])
	assert.Equal(t, "2023,1,1,9.00,,,,,,,15.25,", lines[1])
}
