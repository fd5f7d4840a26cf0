package disasm

import (
	"errors"
	"sort"

	"github.com/joshuapare/disasmkit/pkg/types"
)

// Span is a raw half-open [Begin, End) interval used when describing chunks
// to a Builder.
type Span struct {
	Begin uint64
	End   uint64
}

// ChunkSpec describes one chunk to a Builder.
type ChunkSpec struct {
	ID     types.ChunkID
	Parent types.ChunkID // types.NoChunk for the root
	Addr   Span
	// Pos is the bookmark range. When nil the bookmarks mirror Addr.
	Pos         *Span
	Type        string
	DisplayName string
	Text        TextRepr
	Comment     string
}

// FieldSpec describes a field of a chunk. When Pos is nil the field's
// bookmark mirrors Addr.
type FieldSpec struct {
	Name  string
	Addr  uint64
	Pos   *uint64
	Value FieldValue
}

// BuilderOptions controls tree construction.
type BuilderOptions struct {
	// FitAddresses widens every chunk whose address range is empty and that
	// has children to the smallest range holding all of them. Mirrored
	// bookmark ranges are widened the same way.
	FitAddresses bool
}

// DefaultBuilderOptions returns the default construction options.
func DefaultBuilderOptions() BuilderOptions {
	return BuilderOptions{}
}

// Builder assembles a ChunkTree. Chunks must be added parent first; the first
// chunk added is the root. Build validates the whole tree and either returns
// it or reports every violation found.
type Builder struct {
	opts   BuilderOptions
	specs  []ChunkSpec
	index  map[types.ChunkID]int
	fields map[types.ChunkID][]FieldSpec
}

// NewBuilder returns an empty builder.
func NewBuilder(opts BuilderOptions) *Builder {
	return &Builder{
		opts:   opts,
		index:  make(map[types.ChunkID]int),
		fields: make(map[types.ChunkID][]FieldSpec),
	}
}

// Len returns the number of chunks added so far.
func (b *Builder) Len() int { return len(b.specs) }

// AddChunk records a chunk. The parent must already have been added.
func (b *Builder) AddChunk(spec ChunkSpec) error {
	if spec.ID == types.NoChunk {
		return types.Errorf(types.ErrKindInvariant, "chunk id must not be empty")
	}
	if _, dup := b.index[spec.ID]; dup {
		return types.Errorf(types.ErrKindInvariant, "duplicate chunk id %q", spec.ID)
	}
	if len(b.specs) == 0 {
		if spec.Parent != types.NoChunk {
			return types.Errorf(types.ErrKindInvariant, "root chunk %q must not have a parent", spec.ID)
		}
	} else {
		if spec.Parent == types.NoChunk {
			return types.Errorf(types.ErrKindInvariant, "chunk %q: tree already has root %q", spec.ID, b.specs[0].ID)
		}
		if _, ok := b.index[spec.Parent]; !ok {
			return types.Errorf(types.ErrKindInvariant, "chunk %q: unknown parent %q", spec.ID, spec.Parent)
		}
	}
	b.index[spec.ID] = len(b.specs)
	b.specs = append(b.specs, spec)
	return nil
}

// AddField appends a field to an already added chunk.
func (b *Builder) AddField(id types.ChunkID, spec FieldSpec) error {
	if _, ok := b.index[id]; !ok {
		return types.Errorf(types.ErrKindInvariant, "field %q: unknown chunk %q", spec.Name, id)
	}
	b.fields[id] = append(b.fields[id], spec)
	return nil
}

// Build validates the recorded chunks and returns the tree. Every violation
// is reported; errors.Is(err, types.ErrInvariant) holds for all of them.
func (b *Builder) Build() (*ChunkTree, error) {
	if len(b.specs) == 0 {
		return nil, types.Errorf(types.ErrKindInvariant, "tree has no root chunk")
	}

	t := &ChunkTree{nodes: make(map[types.ChunkID]*node, len(b.specs))}
	mirrored := make(map[*node]bool)
	for _, s := range b.specs {
		c := &Chunk{
			ID:          s.ID,
			Parent:      s.Parent,
			Addr:        AddrRange{Begin: types.Address(s.Addr.Begin), End: types.Address(s.Addr.End)},
			Type:        s.Type,
			DisplayName: s.DisplayName,
			Text:        s.Text,
			Comment:     s.Comment,
		}
		if s.Pos != nil {
			c.Pos = BookmarkRange{Begin: types.NewBookmark(s.Pos.Begin), End: types.NewBookmark(s.Pos.End)}
		} else {
			c.Pos = BookmarkRange{Begin: types.NewBookmark(s.Addr.Begin), End: types.NewBookmark(s.Addr.End)}
		}
		n := &node{chunk: c}
		if s.Pos == nil {
			mirrored[n] = true
		}
		t.nodes[s.ID] = n
		if s.Parent == types.NoChunk {
			t.root = n
		} else {
			p := t.nodes[s.Parent]
			p.children = append(p.children, n)
			n.depth = p.depth + 1
		}
	}

	for id, specs := range b.fields {
		c := t.nodes[id].chunk
		c.Fields = make([]Field, len(specs))
		for i, fs := range specs {
			pos := fs.Addr
			if fs.Pos != nil {
				pos = *fs.Pos
			}
			c.Fields[i] = Field{Name: fs.Name, Pos: types.NewBookmark(pos), Addr: types.Address(fs.Addr), Value: fs.Value}
		}
		sort.SliceStable(c.Fields, func(i, j int) bool {
			return c.Fields[i].Pos.Less(c.Fields[j].Pos)
		})
	}

	if b.opts.FitAddresses {
		fitAddresses(t.root, mirrored)
	}

	var errs []error
	t.Walk(func(c *Chunk, _ int) bool {
		errs = append(errs, t.nodes[c.ID].link()...)
		return true
	})
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return t, nil
}

// fitAddresses widens empty ranges to cover their children, bottom up.
func fitAddresses(n *node, mirrored map[*node]bool) {
	for _, k := range n.children {
		fitAddresses(k, mirrored)
	}
	c := n.chunk
	if len(n.children) == 0 || c.Addr.End > c.Addr.Begin {
		return
	}
	first := n.children[0].chunk
	addr := first.Addr
	pos := first.Pos
	for _, k := range n.children[1:] {
		kc := k.chunk
		addr.Begin = min(addr.Begin, kc.Addr.Begin)
		addr.End = max(addr.End, kc.Addr.End)
		if kc.Pos.Begin.Less(pos.Begin) {
			pos.Begin = kc.Pos.Begin
		}
		if pos.End.Less(kc.Pos.End) {
			pos.End = kc.Pos.End
		}
	}
	c.Addr = addr
	if mirrored[n] {
		c.Pos = pos
	}
}

// link orders the node's children, validates it against them and builds the
// merged item list. It returns every violation found.
func (n *node) link() []error {
	c := n.chunk
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, types.Errorf(types.ErrKindInvariant, format, args...))
	}

	if !c.IsRoot() && c.Pos.Empty() {
		fail("chunk %q: empty bookmark range [%v, %v)", c.ID, c.Pos.Begin, c.Pos.End)
	}
	if c.IsRoot() && c.Pos.End.Less(c.Pos.Begin) {
		fail("chunk %q: inverted bookmark range [%v, %v)", c.ID, c.Pos.Begin, c.Pos.End)
	}
	if c.Addr.End < c.Addr.Begin {
		fail("chunk %q: inverted address range [%v, %v)", c.ID, c.Addr.Begin, c.Addr.End)
	}

	sort.SliceStable(n.children, func(i, j int) bool {
		return n.children[i].chunk.Pos.Begin.Less(n.children[j].chunk.Pos.Begin)
	})

	var addrEnd types.Address
	overlaps := make([]bool, len(n.children))
	for i, k := range n.children {
		kc := k.chunk
		if !c.Pos.Covers(kc.Pos) {
			fail("chunk %q: bookmark range [%v, %v) outside parent %q [%v, %v)",
				kc.ID, kc.Pos.Begin, kc.Pos.End, c.ID, c.Pos.Begin, c.Pos.End)
		}
		if !c.Addr.Covers(kc.Addr) {
			fail("chunk %q: address range [%v, %v) outside parent %q [%v, %v)",
				kc.ID, kc.Addr.Begin, kc.Addr.End, c.ID, c.Addr.Begin, c.Addr.End)
		}
		if i > 0 {
			prev := n.children[i-1].chunk
			if kc.Pos.Begin.Less(prev.Pos.End) {
				fail("chunks %q and %q overlap in bookmark space", prev.ID, kc.ID)
			}
			overlaps[i] = kc.Addr.Len() > 0 && kc.Addr.Begin < addrEnd
		}
		addrEnd = max(addrEnd, kc.Addr.End)
	}

	for i := range c.Fields {
		f := &c.Fields[i]
		if !c.Pos.Contains(f.Pos) {
			fail("chunk %q: field %q at %v outside [%v, %v)", c.ID, f.Name, f.Pos, c.Pos.Begin, c.Pos.End)
			continue
		}
		if k := n.childCovering(f.Pos); k != nil {
			fail("chunk %q: field %q at %v inside child %q", c.ID, f.Name, f.Pos, k.chunk.ID)
		}
	}
	if len(errs) > 0 {
		return errs
	}

	n.items = make([]item, 0, len(c.Fields)+len(n.children))
	fi, ki := 0, 0
	for fi < len(c.Fields) || ki < len(n.children) {
		takeField := ki == len(n.children) ||
			(fi < len(c.Fields) && !n.children[ki].chunk.Pos.Begin.Less(c.Fields[fi].Pos))
		if takeField {
			f := &c.Fields[fi]
			n.items = append(n.items, item{pos: f.Pos, end: f.Pos, field: f})
			fi++
			continue
		}
		k := n.children[ki]
		n.items = append(n.items, item{pos: k.chunk.Pos.Begin, end: k.chunk.Pos.End, child: k, overlap: overlaps[ki]})
		ki++
	}
	return nil
}

func (n *node) childCovering(b types.Bookmark) *node {
	kids := n.children
	i := sort.Search(len(kids), func(i int) bool {
		return b.Less(kids[i].chunk.Pos.End)
	})
	if i < len(kids) && kids[i].chunk.Pos.Contains(b) {
		return kids[i]
	}
	return nil
}
