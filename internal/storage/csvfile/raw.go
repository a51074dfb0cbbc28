// Package csvfile stores raw play-by-play units and derived tables as CSV.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"game_duration/internal/domain"
	"game_duration/internal/storage/atomicfile"
)

// RawHeader is the column layout of a raw unit file.
var RawHeader = []string{
	"GAME_ID", "EVENTNUM", "EVENTMSGTYPE", "PERIOD", "WCTIMESTRING", "PCTIMESTRING",
	"HOMEDESCRIPTION", "NEUTRALDESCRIPTION", "VISITORDESCRIPTION", "SCORE", "TEAM_ID",
}

var ErrEmptyUnit = errors.New("refusing to write empty unit")

// RawStore keeps one CSV file per fetch unit under
// <dir>/<league>/<season>/<team>/.
type RawStore struct {
	dir string
}

func NewRawStore(dir string) *RawStore {
	return &RawStore{dir: dir}
}

func (s *RawStore) keyDir(key domain.CheckpointKey) string {
	return filepath.Join(s.dir, string(key.League), key.Season, key.Team)
}

// Path returns the file holding unit's rows.
func (s *RawStore) Path(key domain.CheckpointKey, unit string) string {
	return filepath.Join(s.keyDir(key), strings.ReplaceAll(unit, ":", "_")+".csv")
}

// WriteUnit durably replaces the unit's file. The context is not consulted:
// once rows are in hand the write runs to completion.
func (s *RawStore) WriteUnit(_ context.Context, key domain.CheckpointKey, unit string, rows []domain.RawEventRow) error {
	if len(rows) == 0 {
		return fmt.Errorf("%w %s", ErrEmptyUnit, unit)
	}

	err := atomicfile.Write(s.Path(key, unit), func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(RawHeader); err != nil {
			return err
		}
		for _, r := range rows {
			if err := cw.Write(encodeRow(r)); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
	if err != nil {
		return fmt.Errorf("write unit %s: %w", unit, err)
	}
	return nil
}

func (s *RawStore) HasUnit(key domain.CheckpointKey, unit string) bool {
	info, err := os.Stat(s.Path(key, unit))
	return err == nil && info.Mode().IsRegular()
}

// ListUnits returns the units with a data file for key, sorted. Temp files
// left by an interrupted write are ignored.
func (s *RawStore) ListUnits(key domain.CheckpointKey) ([]string, error) {
	entries, err := os.ReadDir(s.keyDir(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}

	var units []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".csv") {
			continue
		}
		units = append(units, strings.ReplaceAll(strings.TrimSuffix(name, ".csv"), "_", ":"))
	}
	sort.Strings(units)
	return units, nil
}

func (s *RawStore) ReadUnit(key domain.CheckpointKey, unit string) ([]domain.RawEventRow, error) {
	f, err := os.Open(s.Path(key, unit))
	if err != nil {
		return nil, fmt.Errorf("open unit %s: %w", unit, err)
	}
	defer f.Close()

	rows, err := decodeRows(f)
	if err != nil {
		return nil, fmt.Errorf("read unit %s: %w", unit, err)
	}
	return rows, nil
}

// ReadAll concatenates every unit of key in unit order.
func (s *RawStore) ReadAll(key domain.CheckpointKey) ([]domain.RawEventRow, error) {
	units, err := s.ListUnits(key)
	if err != nil {
		return nil, err
	}

	var all []domain.RawEventRow
	for _, u := range units {
		rows, err := s.ReadUnit(key, u)
		if err != nil {
			return nil, err
		}
		all = append(all, rows...)
	}
	return all, nil
}

func encodeRow(r domain.RawEventRow) []string {
	return []string{
		r.GameID,
		strconv.Itoa(r.EventNum),
		strconv.Itoa(r.EventType),
		strconv.Itoa(r.Period),
		r.WallClockTime,
		r.GameClockTime,
		r.HomeDescription,
		r.NeutralDescription,
		r.VisitorDescription,
		r.Score,
		strconv.FormatInt(r.TeamID, 10),
	}
}

func decodeRows(r io.Reader) ([]domain.RawEventRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToUpper(strings.TrimSpace(h))] = i
	}
	for _, c := range []string{"GAME_ID", "EVENTNUM", "PERIOD", "WCTIMESTRING", "PCTIMESTRING"} {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("missing column %s", c)
		}
	}

	get := func(rec []string, col string) string {
		i, ok := cols[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}
	atoi := func(rec []string, col string) (int, error) {
		v := strings.TrimSpace(get(rec, col))
		if v == "" {
			return 0, nil
		}
		// Spreadsheet round trips turn integers into "12.0".
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return int(f), nil
		}
		return 0, fmt.Errorf("column %s: invalid integer %q", col, v)
	}

	var rows []domain.RawEventRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		eventNum, err := atoi(rec, "EVENTNUM")
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		period, err := atoi(rec, "PERIOD")
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		eventType, _ := atoi(rec, "EVENTMSGTYPE")
		teamID, _ := strconv.ParseInt(strings.TrimSpace(get(rec, "TEAM_ID")), 10, 64)

		rows = append(rows, domain.RawEventRow{
			GameID:             domain.NormalizeGameID(get(rec, "GAME_ID")),
			EventNum:           eventNum,
			EventType:          eventType,
			Period:             period,
			WallClockTime:      get(rec, "WCTIMESTRING"),
			GameClockTime:      get(rec, "PCTIMESTRING"),
			HomeDescription:    get(rec, "HOMEDESCRIPTION"),
			NeutralDescription: get(rec, "NEUTRALDESCRIPTION"),
			VisitorDescription: get(rec, "VISITORDESCRIPTION"),
			Score:              get(rec, "SCORE"),
			TeamID:             teamID,
		})
	}
	return rows, nil
}
