package domain

import "strings"

// RawEventRow is one play-by-play event as delivered by one team's feed.
type RawEventRow struct {
	GameID             string
	EventNum           int
	EventType          int
	Period             int
	WallClockTime      string // e.g. "7:42 PM", "19:42" or "19:42:10"
	GameClockTime      string // time remaining in the period, "mm:ss"
	HomeDescription    string
	NeutralDescription string
	VisitorDescription string
	Score              string
	TeamID             int64 // feed that produced this copy
}

// Event types used by the stats feed (EVENTMSGTYPE).
const (
	EventFreeThrow     = 3
	EventFoul          = 6
	EventTimeout       = 9
	EventPeriodStart   = 12
	EventPeriodEnd     = 13
	EventInstantReplay = 18
)

// Description joins the three description columns, lower-cased, for keyword
// matching.
func (r RawEventRow) Description() string {
	return strings.ToLower(r.HomeDescription + " | " + r.NeutralDescription + " | " + r.VisitorDescription)
}
