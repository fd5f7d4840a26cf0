package disasm

import (
	"sort"

	"github.com/joshuapare/disasmkit/pkg/types"
)

// ChunkTree is a validated, immutable hierarchy of chunks. Chunks are stored
// in an arena keyed by id; parents are resolved through it.
type ChunkTree struct {
	root  *node
	nodes map[types.ChunkID]*node
}

// node is the arena slot for one chunk.
type node struct {
	chunk    *Chunk
	depth    int
	children []*node // bookmark order
	items    []item  // fields and children merged in bookmark order

	rows rowInfo
}

// item is one element of a chunk's body: a field (child == nil) or a child
// chunk, optionally preceded by an overlap marker.
type item struct {
	pos     types.Bookmark // field position or child begin
	end     types.Bookmark // field position or child end
	field   *Field
	child   *node
	overlap bool
}

// reaches reports whether the item produces any entry at or after lo.
func (it item) reaches(lo types.Bookmark) bool {
	if it.child == nil {
		return !it.pos.Less(lo)
	}
	return lo.Less(it.end)
}

// Root returns the root chunk.
func (t *ChunkTree) Root() *Chunk {
	if t == nil || t.root == nil {
		return nil
	}
	return t.root.chunk
}

// Len returns the number of chunks in the tree.
func (t *ChunkTree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// Find looks up a chunk by id. Stale or unknown ids report false.
func (t *ChunkTree) Find(id types.ChunkID) (*Chunk, bool) {
	n, ok := t.lookup(id)
	if !ok {
		return nil, false
	}
	return n.chunk, true
}

func (t *ChunkTree) lookup(id types.ChunkID) (*node, bool) {
	if t == nil {
		return nil, false
	}
	n, ok := t.nodes[id]
	return n, ok
}

// Parent returns the parent of id. The root has none.
func (t *ChunkTree) Parent(id types.ChunkID) (*Chunk, bool) {
	n, ok := t.lookup(id)
	if !ok || n.chunk.IsRoot() {
		return nil, false
	}
	return t.Find(n.chunk.Parent)
}

// Children returns the children of id in bookmark order.
func (t *ChunkTree) Children(id types.ChunkID) []*Chunk {
	n, ok := t.lookup(id)
	if !ok {
		return nil
	}
	out := make([]*Chunk, len(n.children))
	for i, c := range n.children {
		out[i] = c.chunk
	}
	return out
}

// Depth returns the nesting depth of id; the root is at depth 0.
func (t *ChunkTree) Depth(id types.ChunkID) (int, bool) {
	n, ok := t.lookup(id)
	if !ok {
		return 0, false
	}
	return n.depth, true
}

// Path returns the chunks from the root down to id, inclusive.
func (t *ChunkTree) Path(id types.ChunkID) []*Chunk {
	n, ok := t.lookup(id)
	if !ok {
		return nil
	}
	path := make([]*Chunk, n.depth+1)
	for i := n.depth; i >= 0; i-- {
		path[i] = n.chunk
		if i > 0 {
			n = t.nodes[n.chunk.Parent]
		}
	}
	return path
}

// Walk visits every chunk in pre-order. Returning false from fn skips the
// chunk's descendants.
func (t *ChunkTree) Walk(fn func(c *Chunk, depth int) bool) {
	if t == nil || t.root == nil {
		return
	}
	stack := []*node{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n.chunk, n.depth) {
			continue
		}
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, n.children[i])
		}
	}
}

// ChunkCovering returns the deepest chunk whose bookmark range contains b. A
// bookmark equal to a chunk's end belongs to whatever starts there. Bookmarks
// before the root resolve to the root; bookmarks at or past its end resolve
// to nil.
func (t *ChunkTree) ChunkCovering(b types.Bookmark) *Chunk {
	if t == nil || t.root == nil {
		return nil
	}
	n := t.root
	if b.Less(n.chunk.Pos.Begin) {
		return n.chunk
	}
	if !b.Less(n.chunk.Pos.End) {
		return nil
	}
	for {
		kids := n.children
		i := sort.Search(len(kids), func(i int) bool {
			return b.Less(kids[i].chunk.Pos.End)
		})
		if i == len(kids) || b.Less(kids[i].chunk.Pos.Begin) {
			return n.chunk
		}
		n = kids[i]
	}
}

// ChunkAt returns the deepest chunk whose address range contains addr.
// Siblings may overlap in address space; the first in bookmark order wins.
func (t *ChunkTree) ChunkAt(addr types.Address) *Chunk {
	if t == nil || t.root == nil || !t.root.chunk.Addr.Contains(addr) {
		return nil
	}
	n := t.root
descend:
	for {
		for _, k := range n.children {
			if k.chunk.Addr.Contains(addr) {
				n = k
				continue descend
			}
		}
		return n.chunk
	}
}
