package nbastats

import (
	"fmt"
	"strconv"
	"strings"

	"game_duration/internal/domain"
)

var nbaTeams = []domain.Team{
	{ID: 1610612737, Abbreviation: "ATL", Nickname: "Hawks", City: "Atlanta"},
	{ID: 1610612738, Abbreviation: "BOS", Nickname: "Celtics", City: "Boston"},
	{ID: 1610612739, Abbreviation: "CLE", Nickname: "Cavaliers", City: "Cleveland"},
	{ID: 1610612740, Abbreviation: "NOP", Nickname: "Pelicans", City: "New Orleans"},
	{ID: 1610612741, Abbreviation: "CHI", Nickname: "Bulls", City: "Chicago"},
	{ID: 1610612742, Abbreviation: "DAL", Nickname: "Mavericks", City: "Dallas"},
	{ID: 1610612743, Abbreviation: "DEN", Nickname: "Nuggets", City: "Denver"},
	{ID: 1610612744, Abbreviation: "GSW", Nickname: "Warriors", City: "Golden State"},
	{ID: 1610612745, Abbreviation: "HOU", Nickname: "Rockets", City: "Houston"},
	{ID: 1610612746, Abbreviation: "LAC", Nickname: "Clippers", City: "Los Angeles"},
	{ID: 1610612747, Abbreviation: "LAL", Nickname: "Lakers", City: "Los Angeles"},
	{ID: 1610612748, Abbreviation: "MIA", Nickname: "Heat", City: "Miami"},
	{ID: 1610612749, Abbreviation: "MIL", Nickname: "Bucks", City: "Milwaukee"},
	{ID: 1610612750, Abbreviation: "MIN", Nickname: "Timberwolves", City: "Minnesota"},
	{ID: 1610612751, Abbreviation: "BKN", Nickname: "Nets", City: "Brooklyn"},
	{ID: 1610612752, Abbreviation: "NYK", Nickname: "Knicks", City: "New York"},
	{ID: 1610612753, Abbreviation: "ORL", Nickname: "Magic", City: "Orlando"},
	{ID: 1610612754, Abbreviation: "IND", Nickname: "Pacers", City: "Indiana"},
	{ID: 1610612755, Abbreviation: "PHI", Nickname: "76ers", City: "Philadelphia"},
	{ID: 1610612756, Abbreviation: "PHX", Nickname: "Suns", City: "Phoenix"},
	{ID: 1610612757, Abbreviation: "POR", Nickname: "Trail Blazers", City: "Portland"},
	{ID: 1610612758, Abbreviation: "SAC", Nickname: "Kings", City: "Sacramento"},
	{ID: 1610612759, Abbreviation: "SAS", Nickname: "Spurs", City: "San Antonio"},
	{ID: 1610612760, Abbreviation: "OKC", Nickname: "Thunder", City: "Oklahoma City"},
	{ID: 1610612761, Abbreviation: "TOR", Nickname: "Raptors", City: "Toronto"},
	{ID: 1610612762, Abbreviation: "UTA", Nickname: "Jazz", City: "Utah"},
	{ID: 1610612763, Abbreviation: "MEM", Nickname: "Grizzlies", City: "Memphis"},
	{ID: 1610612764, Abbreviation: "WAS", Nickname: "Wizards", City: "Washington"},
	{ID: 1610612765, Abbreviation: "DET", Nickname: "Pistons", City: "Detroit"},
	{ID: 1610612766, Abbreviation: "CHA", Nickname: "Hornets", City: "Charlotte"},
}

var wnbaTeams = []domain.Team{
	{ID: 1611661313, Abbreviation: "NYL", Nickname: "Liberty", City: "New York"},
	{ID: 1611661317, Abbreviation: "PHO", Nickname: "Mercury", City: "Phoenix"},
	{ID: 1611661319, Abbreviation: "LVA", Nickname: "Aces", City: "Las Vegas"},
	{ID: 1611661320, Abbreviation: "LAS", Nickname: "Sparks", City: "Los Angeles"},
	{ID: 1611661321, Abbreviation: "DAL", Nickname: "Wings", City: "Dallas"},
	{ID: 1611661322, Abbreviation: "WAS", Nickname: "Mystics", City: "Washington"},
	{ID: 1611661323, Abbreviation: "CON", Nickname: "Sun", City: "Connecticut"},
	{ID: 1611661324, Abbreviation: "MIN", Nickname: "Lynx", City: "Minnesota"},
	{ID: 1611661325, Abbreviation: "IND", Nickname: "Fever", City: "Indiana"},
	{ID: 1611661328, Abbreviation: "SEA", Nickname: "Storm", City: "Seattle"},
	{ID: 1611661329, Abbreviation: "CHI", Nickname: "Sky", City: "Chicago"},
	{ID: 1611661330, Abbreviation: "ATL", Nickname: "Dream", City: "Atlanta"},
	{ID: 1611661331, Abbreviation: "GSV", Nickname: "Valkyries", City: "Golden State"},
}

// Teams returns the static team table of a league.
func (s *Source) Teams(league domain.League) []domain.Team {
	if league == domain.LeagueWNBA {
		return append([]domain.Team(nil), wnbaTeams...)
	}
	return append([]domain.Team(nil), nbaTeams...)
}

// FindTeam matches a team by id, abbreviation or nickname, case-insensitively.
func (s *Source) FindTeam(league domain.League, query string) (domain.Team, error) {
	q := strings.TrimSpace(query)
	id, _ := strconv.ParseInt(q, 10, 64)

	for _, t := range s.Teams(league) {
		if t.ID == id ||
			strings.EqualFold(t.Abbreviation, q) ||
			strings.EqualFold(t.Nickname, q) {
			return t, nil
		}
	}
	return domain.Team{}, fmt.Errorf("team %q not found in %s", query, league)
}
