package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// GameType is the season-type digit encoded in a game id.
type GameType byte

const (
	GameTypePreseason     GameType = '1'
	GameTypeRegularSeason GameType = '2'
	GameTypeAllStar       GameType = '3'
	GameTypePlayoffs      GameType = '4'
	GameTypePlayIn        GameType = '5'
	GameTypeCup           GameType = '6'
)

const gameIDLength = 10

// NormalizeGameID restores leading zeros dropped by spreadsheet tools,
// so "22300001" becomes "0022300001".
func NormalizeGameID(id string) string {
	id = strings.TrimSpace(id)
	if n := len(id); n > 0 && n < gameIDLength {
		id = strings.Repeat("0", gameIDLength-n) + id
	}
	return id
}

func parseGameID(id string) (string, error) {
	id = NormalizeGameID(id)
	if len(id) != gameIDLength {
		return "", fmt.Errorf("invalid game id %q", id)
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("invalid game id %q", id)
		}
	}
	return id, nil
}

// GameTypeOf returns the season type of a game id.
func GameTypeOf(id string) (GameType, error) {
	norm, err := parseGameID(id)
	if err != nil {
		return 0, err
	}
	return GameType(norm[2]), nil
}

// SeasonOf derives the season start year from a game id: digits 3-4 hold the
// two-digit year, league play began in 1946 so anything >= 46 is 19xx.
func SeasonOf(id string) (int, error) {
	norm, err := parseGameID(id)
	if err != nil {
		return 0, err
	}
	yy, _ := strconv.Atoi(norm[3:5])
	if yy >= 46 {
		return 1900 + yy, nil
	}
	return 2000 + yy, nil
}

// GameRef is one entry of a team's season schedule.
type GameRef struct {
	GameID   string
	TeamID   int64
	GameDate string
	Matchup  string
}
