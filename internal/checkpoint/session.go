package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"game_duration/internal/domain"
)

// Store persists checkpoints. Load returns nil, nil when the key has no
// checkpoint and an error wrapping ErrCorruptCheckpoint when it cannot be read.
type Store interface {
	Load(ctx context.Context, key domain.CheckpointKey) (*domain.Checkpoint, error)
	Save(ctx context.Context, cp *domain.Checkpoint) error
	MarkUnitComplete(ctx context.Context, key domain.CheckpointKey, unit string) error
}

// ResolveFunc lists the units of a key on its first run.
type ResolveFunc func(ctx context.Context) ([]string, error)

var ErrSessionClosed = errors.New("checkpoint session closed")

// Session holds one key's checkpoint for the duration of a run. It must be
// closed on every exit path; Close flushes the checkpoint.
type Session struct {
	store   Store
	key     domain.CheckpointKey
	cp      *domain.Checkpoint
	states  map[string]domain.UnitState
	resumed bool
	closed  bool
	now     func() time.Time
	logger  *slog.Logger
}

// Open loads the checkpoint for key, or resolves the key's units and persists a
// fresh checkpoint when none exists. A corrupt checkpoint is logged and
// replaced; other keys are never touched.
func Open(ctx context.Context, store Store, key domain.CheckpointKey, resolve ResolveFunc, logger *slog.Logger) (*Session, error) {
	logger = logger.With("checkpoint", key.String())

	cp, err := store.Load(ctx, key)
	if errors.Is(err, ErrCorruptCheckpoint) {
		logger.Warn("discarding corrupt checkpoint, starting fresh", "error", err)
		cp, err = nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load checkpoint: %w", err)
	}

	s := &Session{
		store:  store,
		key:    key,
		states: make(map[string]domain.UnitState),
		now:    time.Now,
		logger: logger,
	}

	if cp != nil {
		s.cp = cp
		s.resumed = true
		logger.Info("resuming from checkpoint",
			"pending", len(cp.PendingUnits),
			"completed", len(cp.CompletedUnits),
			"last_completed_unit", cp.LastCompletedUnit,
			"done", cp.Done,
		)
	} else {
		units, err := resolve(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolve units: %w", err)
		}
		s.cp = domain.NewCheckpoint(key, units, s.now())
		if err := store.Save(ctx, s.cp); err != nil {
			return nil, fmt.Errorf("create checkpoint: %w", err)
		}
		logger.Info("created checkpoint", "units", len(units))
	}

	for _, u := range s.cp.PendingUnits {
		s.states[u] = domain.UnitPending
	}
	for _, u := range s.cp.CompletedUnits {
		s.states[u] = domain.UnitComplete
	}
	for _, u := range s.cp.SkippedUnits {
		s.states[u] = domain.UnitSkipped
	}

	return s, nil
}

func (s *Session) Key() domain.CheckpointKey { return s.key }

func (s *Session) Resumed() bool { return s.resumed }

func (s *Session) Done() bool { return s.cp.Done }

// Pending returns the units still to fetch, in order.
func (s *Session) Pending() []string { return slices.Clone(s.cp.PendingUnits) }

// Completed returns the units already fetched, in completion order.
func (s *Session) Completed() []string { return slices.Clone(s.cp.CompletedUnits) }

func (s *Session) Total() int {
	return len(s.cp.PendingUnits) + len(s.cp.CompletedUnits) + len(s.cp.SkippedUnits)
}

func (s *Session) State(unit string) domain.UnitState { return s.states[unit] }

// Checkpoint returns a copy of the current checkpoint.
func (s *Session) Checkpoint() *domain.Checkpoint { return s.cp.Clone() }

// Begin moves a unit from PENDING to IN_PROGRESS.
func (s *Session) Begin(unit string) error {
	return s.transition(unit, domain.UnitPending, domain.UnitInProgress)
}

// Release returns an IN_PROGRESS unit to PENDING so the next run retries it.
func (s *Session) Release(unit string) error {
	return s.transition(unit, domain.UnitInProgress, domain.UnitPending)
}

// Complete records an IN_PROGRESS unit as done. Callers must have durably
// written the unit's data before calling it.
func (s *Session) Complete(ctx context.Context, unit string) error {
	if s.closed {
		return ErrSessionClosed
	}
	if got := s.states[unit]; got != domain.UnitInProgress {
		return fmt.Errorf("complete %s: unit is %s, want %s", unit, got, domain.UnitInProgress)
	}

	if err := s.store.MarkUnitComplete(ctx, s.key, unit); err != nil {
		return fmt.Errorf("mark unit complete: %w", err)
	}
	if err := s.cp.MarkComplete(unit, s.now()); err != nil {
		return err
	}
	s.states[unit] = domain.UnitComplete
	return nil
}

// Skip records an IN_PROGRESS unit whose upstream table was empty.
func (s *Session) Skip(ctx context.Context, unit string) error {
	if err := s.transition(unit, domain.UnitInProgress, domain.UnitSkipped); err != nil {
		return err
	}

	next := s.cp.Clone()
	if err := next.MarkSkipped(unit, s.now()); err != nil {
		return err
	}
	if err := s.store.Save(ctx, next); err != nil {
		s.states[unit] = domain.UnitInProgress
		return fmt.Errorf("save checkpoint: %w", err)
	}
	s.cp = next
	return nil
}

// Requeue moves a COMPLETE unit back to the front of the pending queue, for
// units whose data went missing after they were recorded.
func (s *Session) Requeue(ctx context.Context, unit string) error {
	if err := s.transition(unit, domain.UnitComplete, domain.UnitPending); err != nil {
		return err
	}

	next := s.cp.Clone()
	next.Requeue(unit, s.now())
	if err := s.store.Save(ctx, next); err != nil {
		s.states[unit] = domain.UnitComplete
		return fmt.Errorf("save checkpoint: %w", err)
	}
	s.cp = next
	return nil
}

// Close releases any IN_PROGRESS unit and flushes the checkpoint. It runs
// detached from ctx cancellation so an interrupted run still persists its
// progress. Calling Close more than once is a no-op.
func (s *Session) Close(ctx context.Context) error {
	if s.closed {
		return nil
	}
	s.closed = true

	for u, st := range s.states {
		if st == domain.UnitInProgress {
			s.states[u] = domain.UnitPending
		}
	}

	if err := s.store.Save(context.WithoutCancel(ctx), s.cp); err != nil {
		return fmt.Errorf("flush checkpoint: %w", err)
	}
	return nil
}

func (s *Session) transition(unit string, from, to domain.UnitState) error {
	if s.closed {
		return ErrSessionClosed
	}
	if got := s.states[unit]; got != from {
		return fmt.Errorf("unit %s is %q, want %q", unit, got, from)
	}
	s.states[unit] = to
	return nil
}
