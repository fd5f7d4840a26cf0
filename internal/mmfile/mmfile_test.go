package mmfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMap_ReadOnly(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping mmap test in short mode")
	}
	path := filepath.Join(t.TempDir(), "test.bin")
	want := []byte{0xde, 0xad, 0xbe, 0xef, 0x42}
	require.NoError(t, os.WriteFile(path, want, 0o644))

	m, err := Map(path)
	require.NoError(t, err)
	require.Equal(t, want, m.Data)
	require.Equal(t, len(want), m.Len())

	require.NoError(t, m.Close())
	require.NoError(t, m.Close(), "second close is a no-op")
	require.Nil(t, m.Data)
}

func TestMap_ZeroLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	m, err := Map(path)
	require.NoError(t, err)
	require.Zero(t, m.Len())
	require.NoError(t, m.Close())
}

func TestMap_Missing(t *testing.T) {
	_, err := Map(filepath.Join(t.TempDir(), "missing.bin"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestErrTooLarge(t *testing.T) {
	err := &ErrTooLarge{Path: "big.bin", Size: 1 << 62}
	require.Contains(t, err.Error(), "big.bin")
}
