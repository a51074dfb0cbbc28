package domain

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// AllTeams is the team sentinel for a checkpoint covering every team of a league.
const AllTeams = "all"

const CheckpointVersion = 1

var ErrUnitNotPending = errors.New("unit is not pending")

type CheckpointKey struct {
	League League
	Season string
	Team   string
}

func (k CheckpointKey) String() string {
	return fmt.Sprintf("%s_%s_%s", k.League, k.Season, k.Team)
}

// UnitState is the in-process lifecycle of a fetch unit. Only PENDING and
// COMPLETE are ever persisted; IN_PROGRESS falls back to PENDING on restart.
type UnitState string

const (
	UnitPending    UnitState = "PENDING"
	UnitInProgress UnitState = "IN_PROGRESS"
	UnitComplete   UnitState = "COMPLETE"
	UnitSkipped    UnitState = "SKIPPED"
)

// FetchUnit is the smallest resumable granule of work: one team's feed of one
// game, or one team's whole season when GameID is empty.
type FetchUnit struct {
	TeamID int64
	GameID string
}

func (u FetchUnit) String() string {
	if u.GameID == "" {
		return strconv.FormatInt(u.TeamID, 10)
	}
	return strconv.FormatInt(u.TeamID, 10) + ":" + u.GameID
}

func ParseFetchUnit(s string) (FetchUnit, error) {
	team, game, _ := strings.Cut(s, ":")
	id, err := strconv.ParseInt(team, 10, 64)
	if err != nil || id <= 0 {
		return FetchUnit{}, fmt.Errorf("invalid fetch unit %q", s)
	}
	return FetchUnit{TeamID: id, GameID: game}, nil
}

// Checkpoint is the durable progress marker of one (league, season, team) key.
type Checkpoint struct {
	Version           int       `json:"version"`
	League            League    `json:"league"`
	Season            string    `json:"season"`
	Team              string    `json:"team"`
	LastCompletedUnit string    `json:"last_completed_unit,omitempty"`
	PendingUnits      []string  `json:"pending_units"`
	CompletedUnits    []string  `json:"completed_units"`
	SkippedUnits      []string  `json:"skipped_units,omitempty"`
	Done              bool      `json:"done"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func NewCheckpoint(key CheckpointKey, units []string, now time.Time) *Checkpoint {
	return &Checkpoint{
		Version:        CheckpointVersion,
		League:         key.League,
		Season:         key.Season,
		Team:           key.Team,
		PendingUnits:   slices.Clone(units),
		CompletedUnits: []string{},
		Done:           len(units) == 0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (c *Checkpoint) Key() CheckpointKey {
	return CheckpointKey{League: c.League, Season: c.Season, Team: c.Team}
}

// MarkComplete moves unit from pending to completed.
func (c *Checkpoint) MarkComplete(unit string, now time.Time) error {
	if err := c.removePending(unit); err != nil {
		return err
	}
	c.CompletedUnits = append(c.CompletedUnits, unit)
	c.LastCompletedUnit = unit
	c.touch(now)
	return nil
}

// MarkSkipped moves unit from pending to skipped (the upstream table was empty).
func (c *Checkpoint) MarkSkipped(unit string, now time.Time) error {
	if err := c.removePending(unit); err != nil {
		return err
	}
	c.SkippedUnits = append(c.SkippedUnits, unit)
	c.touch(now)
	return nil
}

// Requeue puts a completed unit back at the front of the pending queue.
func (c *Checkpoint) Requeue(unit string, now time.Time) bool {
	i := slices.Index(c.CompletedUnits, unit)
	if i < 0 {
		return false
	}
	c.CompletedUnits = slices.Delete(c.CompletedUnits, i, i+1)
	c.PendingUnits = slices.Insert(c.PendingUnits, 0, unit)
	if c.LastCompletedUnit == unit {
		c.LastCompletedUnit = ""
		if n := len(c.CompletedUnits); n > 0 {
			c.LastCompletedUnit = c.CompletedUnits[n-1]
		}
	}
	c.touch(now)
	return true
}

func (c *Checkpoint) removePending(unit string) error {
	i := slices.Index(c.PendingUnits, unit)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnitNotPending, unit)
	}
	c.PendingUnits = slices.Delete(c.PendingUnits, i, i+1)
	return nil
}

func (c *Checkpoint) touch(now time.Time) {
	c.UpdatedAt = now
	c.Done = len(c.PendingUnits) == 0
}

// Validate reports whether a decoded checkpoint is internally consistent.
func (c *Checkpoint) Validate() error {
	if c.Version != CheckpointVersion {
		return fmt.Errorf("unsupported checkpoint version %d", c.Version)
	}
	if c.League == "" || c.Season == "" || c.Team == "" {
		return errors.New("checkpoint key is incomplete")
	}
	if c.Done != (len(c.PendingUnits) == 0) {
		return errors.New("done flag disagrees with pending units")
	}

	seen := make(map[string]struct{}, len(c.PendingUnits)+len(c.CompletedUnits)+len(c.SkippedUnits))
	for _, list := range [][]string{c.PendingUnits, c.CompletedUnits, c.SkippedUnits} {
		for _, u := range list {
			if _, dup := seen[u]; dup {
				return fmt.Errorf("unit %s recorded twice", u)
			}
			seen[u] = struct{}{}
		}
	}
	if c.LastCompletedUnit != "" && !slices.Contains(c.CompletedUnits, c.LastCompletedUnit) {
		return fmt.Errorf("last completed unit %s is not in completed units", c.LastCompletedUnit)
	}
	return nil
}

func (c *Checkpoint) Clone() *Checkpoint {
	cp := *c
	cp.PendingUnits = slices.Clone(c.PendingUnits)
	cp.CompletedUnits = slices.Clone(c.CompletedUnits)
	cp.SkippedUnits = slices.Clone(c.SkippedUnits)
	return &cp
}
