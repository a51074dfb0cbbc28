package atomicfile

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nba", "2023-24", "BOS", "unit.csv")

	err := Write(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "GAME_ID\n0022300001\n")
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "GAME_ID\n0022300001\n", string(data))
}

func TestWrite_FailureKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nba_2023-24_BOS.json")
	require.NoError(t, WriteBytes(path, []byte(`{"version":1}`)))

	err := Write(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, `{"vers`)
		return errors.New("encoder failed")
	})
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"version":1}`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "pending file must be cleaned up")
}

func TestWriteBytes_Replaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cp.json")

	require.NoError(t, WriteBytes(path, []byte("old")))
	require.NoError(t, WriteBytes(path, []byte("new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
}
