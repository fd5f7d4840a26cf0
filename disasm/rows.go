package disasm

import (
	"sort"
	"sync"

	"github.com/joshuapare/disasmkit/pkg/types"
)

// rowInfo caches the size of a chunk's fully expanded entry stream. It is
// filled on first use.
type rowInfo struct {
	once   sync.Once
	prefix []int64 // prefix[i] = rows before item i, counting the begin row
	total  int64
}

func (n *node) rowIndex() *rowInfo {
	n.rows.once.Do(func() {
		prefix := make([]int64, len(n.items)+1)
		prefix[0] = 1
		for i, it := range n.items {
			size := int64(1)
			if it.child != nil {
				size = it.child.rowIndex().total
				if it.overlap {
					size++
				}
			}
			prefix[i+1] = prefix[i] + size
		}
		n.rows.prefix = prefix
		n.rows.total = prefix[len(n.items)] + 1
	})
	return &n.rows
}

// TotalRows returns the number of entries in the fully expanded stream of
// the whole tree.
func (t *ChunkTree) TotalRows() int64 {
	if t == nil || t.root == nil {
		return 0
	}
	return t.root.rowIndex().total
}

// RowOf returns the row, in the fully expanded stream, of the first entry
// that does not precede b.
func (t *ChunkTree) RowOf(b types.Bookmark) int64 {
	if t == nil || t.root == nil {
		return 0
	}
	return rowsBefore(t.root, b)
}

func rowsBefore(n *node, b types.Bookmark) int64 {
	for acc := int64(0); ; {
		c := n.chunk
		if !c.Pos.Begin.Less(b) {
			return acc
		}
		idx := n.rowIndex()
		if !b.Less(c.Pos.End) {
			return acc + idx.total
		}
		items := n.items
		j := sort.Search(len(items), func(i int) bool { return !items[i].pos.Less(b) })
		if j == 0 {
			return acc + 1
		}
		last := items[j-1]
		if last.child == nil || !b.Less(last.end) {
			return acc + idx.prefix[j]
		}
		acc += idx.prefix[j-1]
		if last.overlap {
			acc++
		}
		n = last.child
	}
}

// RowPosition returns the bookmark of the entry at row r of the fully
// expanded stream.
func (t *ChunkTree) RowPosition(r int64) (types.Bookmark, bool) {
	if t == nil || t.root == nil || r < 0 || r >= t.TotalRows() {
		return types.Bookmark{}, false
	}
	n := t.root
	for {
		idx := n.rowIndex()
		c := n.chunk
		switch {
		case r == 0:
			return c.Pos.Begin, true
		case r == idx.total-1:
			return c.Pos.End, true
		}
		prefix := idx.prefix
		// Largest i with prefix[i] <= r.
		i := sort.Search(len(n.items), func(i int) bool { return prefix[i+1] > r })
		it := n.items[i]
		r -= prefix[i]
		if it.child == nil {
			return it.pos, true
		}
		if it.overlap {
			if r == 0 {
				return it.pos, true
			}
			r--
		}
		n = it.child
	}
}
