package disasm

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRows_TotalMatchesFullStream(t *testing.T) {
	tree := nestedTree(t)
	require.Equal(t, int64(len(nestedStream)), tree.TotalRows())
	require.Equal(t, int64(6), scenarioTree(t).TotalRows())
}

func TestRows_RowPosition(t *testing.T) {
	tree := nestedTree(t)
	for i, want := range nestedStream {
		got, ok := tree.RowPosition(int64(i))
		require.True(t, ok, "row %d", i)
		require.Equal(t, want.Pos, got.Raw(), "row %d", i)
	}
	_, ok := tree.RowPosition(-1)
	require.False(t, ok)
	_, ok = tree.RowPosition(int64(len(nestedStream)))
	require.False(t, ok)
}

func TestRows_RowOfFirstEntryAtPosition(t *testing.T) {
	tree := nestedTree(t)
	full := Generate(tree, nil, Unbounded(bm(0)))
	for i, e := range full {
		if e.Kind == EntryChunkEnd {
			continue
		}
		if i > 0 && full[i-1].Kind != EntryChunkEnd && full[i-1].Pos.Equal(e.Pos) {
			continue
		}
		require.Equal(t, int64(i), tree.RowOf(e.Pos), "entry %d %v", i, e)
	}
	require.Equal(t, tree.TotalRows(), tree.RowOf(bm(0x200)))
	require.Equal(t, int64(4), tree.RowOf(bm(0x18)))
}

func TestRows_ConcurrentFirstUse(t *testing.T) {
	tree := nestedTree(t)
	var wg sync.WaitGroup
	totals := make([]int64, 8)
	for i := range totals {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			totals[i] = tree.TotalRows()
		}(i)
	}
	wg.Wait()
	for _, got := range totals {
		require.Equal(t, int64(len(nestedStream)), got)
	}
}
