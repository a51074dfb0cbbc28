package checkpoint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"game_duration/internal/domain"
	"game_duration/internal/storage/atomicfile"
)

// ErrCorruptCheckpoint marks stored progress that cannot be trusted.
var ErrCorruptCheckpoint = errors.New("corrupt checkpoint")

var ErrNoCheckpoint = errors.New("checkpoint not found")

// FileStore keeps one JSON file per checkpoint key in a directory.
type FileStore struct {
	dir string
	now func() time.Time
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir, now: time.Now}
}

func (s *FileStore) Path(key domain.CheckpointKey) string {
	return filepath.Join(s.dir, key.String()+".json")
}

// Load returns nil, nil when no checkpoint exists for key.
func (s *FileStore) Load(_ context.Context, key domain.CheckpointKey) (*domain.Checkpoint, error) {
	path := s.Path(key)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrCorruptCheckpoint, path, err)
	}

	var cp domain.Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrCorruptCheckpoint, path, err)
	}
	if err := cp.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptCheckpoint, path, err)
	}
	if cp.Key() != key {
		return nil, fmt.Errorf("%w: %s holds key %s", ErrCorruptCheckpoint, path, cp.Key())
	}

	return &cp, nil
}

// Save replaces the checkpoint file atomically, so a crash mid-save leaves the
// previous checkpoint readable.
func (s *FileStore) Save(_ context.Context, cp *domain.Checkpoint) error {
	if err := cp.Validate(); err != nil {
		return fmt.Errorf("validate checkpoint: %w", err)
	}

	data, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		return fmt.Errorf("encode checkpoint: %w", err)
	}

	if err := atomicfile.WriteBytes(s.Path(cp.Key()), data); err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}
	return nil
}

func (s *FileStore) MarkUnitComplete(ctx context.Context, key domain.CheckpointKey, unit string) error {
	cp, err := s.Load(ctx, key)
	if err != nil {
		return err
	}
	if cp == nil {
		return fmt.Errorf("%w: %s", ErrNoCheckpoint, key)
	}

	if err := cp.MarkComplete(unit, s.now()); err != nil {
		return err
	}
	return s.Save(ctx, cp)
}
