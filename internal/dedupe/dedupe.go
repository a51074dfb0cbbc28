// Package dedupe collapses the per-team copies of play-by-play events.
package dedupe

import "game_duration/internal/domain"

// DuplicateAnomaly reports an event seen more than twice. Two copies are
// expected, one per team feed; anything beyond that is upstream noise.
type DuplicateAnomaly struct {
	GameID   string
	EventNum int
	Count    int
}

type eventKey struct {
	gameID   string
	eventNum int
}

// Deduplicate keeps the first occurrence of every (game id, event number)
// pair in input order. Game ids compare zero-padded. The input is not modified.
func Deduplicate(rows []domain.RawEventRow) ([]domain.RawEventRow, []DuplicateAnomaly) {
	counts := make(map[eventKey]int, len(rows)/2+1)
	out := make([]domain.RawEventRow, 0, len(rows)/2+1)
	var order []eventKey

	for _, r := range rows {
		k := eventKey{gameID: domain.NormalizeGameID(r.GameID), eventNum: r.EventNum}
		counts[k]++
		switch counts[k] {
		case 1:
			out = append(out, r)
		case 3:
			order = append(order, k)
		}
	}

	var anomalies []DuplicateAnomaly
	for _, k := range order {
		anomalies = append(anomalies, DuplicateAnomaly{GameID: k.gameID, EventNum: k.eventNum, Count: counts[k]})
	}
	return out, anomalies
}

// GroupByGame splits rows by zero-padded game id, preserving row order within
// each game and first-seen order of games.
func GroupByGame(rows []domain.RawEventRow) (ids []string, games map[string][]domain.RawEventRow) {
	games = make(map[string][]domain.RawEventRow)
	for _, r := range rows {
		id := domain.NormalizeGameID(r.GameID)
		if _, ok := games[id]; !ok {
			ids = append(ids, id)
		}
		games[id] = append(games[id], r)
	}
	return ids, games
}
