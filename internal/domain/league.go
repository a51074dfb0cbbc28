package domain

import (
	"fmt"
	"strconv"
	"strings"
)

type League string

const (
	LeagueNBA  League = "nba"
	LeagueWNBA League = "wnba"
)

// ParseLeague accepts "nba" or "wnba" in any case.
func ParseLeague(s string) (League, error) {
	switch League(strings.ToLower(strings.TrimSpace(s))) {
	case LeagueNBA:
		return LeagueNBA, nil
	case LeagueWNBA:
		return LeagueWNBA, nil
	default:
		return "", fmt.Errorf("unknown league %q (must be nba or wnba)", s)
	}
}

// ID returns the league id used by the stats API and encoded in game ids.
func (l League) ID() string {
	if l == LeagueWNBA {
		return "10"
	}
	return "00"
}

// RegulationPeriods returns how many periods a complete regulation game has.
// The WNBA played two 20-minute halves before the 2006 season.
func (l League) RegulationPeriods(season int) int {
	if l == LeagueWNBA && season > 0 && season < 2006 {
		return 2
	}
	return 4
}

// Season identifies a season by the calendar year it starts in.
type Season struct {
	StartYear int
}

// ParseSeason accepts "2023-24" (NBA style) or "2023" (WNBA style).
func ParseSeason(s string) (Season, error) {
	s = strings.TrimSpace(s)
	head, tail, hasTail := strings.Cut(s, "-")

	year, err := strconv.Atoi(head)
	if err != nil || len(head) != 4 {
		return Season{}, fmt.Errorf("invalid season %q", s)
	}

	if hasTail {
		next, err := strconv.Atoi(tail)
		if err != nil || len(tail) != 2 || next != (year+1)%100 {
			return Season{}, fmt.Errorf("invalid season %q", s)
		}
	}

	return Season{StartYear: year}, nil
}

// SeasonRange returns every season from..to inclusive.
func SeasonRange(from, to Season) ([]Season, error) {
	if to.StartYear < from.StartYear {
		return nil, fmt.Errorf("season range is reversed: %d > %d", from.StartYear, to.StartYear)
	}
	seasons := make([]Season, 0, to.StartYear-from.StartYear+1)
	for y := from.StartYear; y <= to.StartYear; y++ {
		seasons = append(seasons, Season{StartYear: y})
	}
	return seasons, nil
}

// Format renders the season the way the given league's API expects it.
func (s Season) Format(l League) string {
	if l == LeagueWNBA {
		return strconv.Itoa(s.StartYear)
	}
	return fmt.Sprintf("%d-%02d", s.StartYear, (s.StartYear+1)%100)
}

type Team struct {
	ID           int64
	Abbreviation string
	Nickname     string
	City         string
}
