package nbastats

import (
	"fmt"
	"strconv"
)

// APIResponse is the envelope every stats.nba.com endpoint returns.
type APIResponse struct {
	Resource   string      `json:"resource"`
	ResultSets []ResultSet `json:"resultSets"`
}

// ResultSet is a column-oriented table: one header list, rows as positional values.
type ResultSet struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	RowSet  [][]any  `json:"rowSet"`
}

// first returns the first result set, or an empty one when the response has none.
func (r *APIResponse) first() ResultSet {
	if len(r.ResultSets) == 0 {
		return ResultSet{}
	}
	return r.ResultSets[0]
}

type table struct {
	cols map[string]int
	rows [][]any
}

func newTable(rs ResultSet, required ...string) (*table, error) {
	t := &table{cols: make(map[string]int, len(rs.Headers)), rows: rs.RowSet}
	for i, h := range rs.Headers {
		t.cols[h] = i
	}
	if len(t.rows) == 0 {
		return t, nil
	}
	for _, c := range required {
		if _, ok := t.cols[c]; !ok {
			return nil, fmt.Errorf("result set %q missing column %s", rs.Name, c)
		}
	}
	return t, nil
}

func (t *table) value(row []any, col string) any {
	i, ok := t.cols[col]
	if !ok || i >= len(row) {
		return nil
	}
	return row[i]
}

func (t *table) str(row []any, col string) string {
	switch v := t.value(row, col).(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func (t *table) int(row []any, col string) int64 {
	switch v := t.value(row, col).(type) {
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	default:
		return 0
	}
}
