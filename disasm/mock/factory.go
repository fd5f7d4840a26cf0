// Package mock builds synthetic chunk trees for tests, demos and the
// commands' --mock mode.
//
// Trees follow the usual listing shape:
//
//	FILE
//	└── FUNCTION (field: name)
//	    └── BLOCK
//	        └── INSTRUCTION (field: bytes)
//
// Generation is deterministic for a given seed.
package mock

import (
	"fmt"
	"math/rand"

	"github.com/joshuapare/disasmkit/disasm"
	"github.com/joshuapare/disasmkit/pkg/types"
)

// ChunkType names a level of the synthetic hierarchy.
type ChunkType string

const (
	File        ChunkType = "FILE"
	Function    ChunkType = "FUNCTION"
	Block       ChunkType = "BLOCK"
	Instruction ChunkType = "INSTRUCTION"
)

// child returns the type nested directly below t, or "" for leaves.
func (t ChunkType) child() ChunkType {
	switch t {
	case File:
		return Function
	case Function:
		return Block
	case Block:
		return Instruction
	default:
		return ""
	}
}

// Node is a chunk of a synthetic tree before it is built. Addresses are
// assigned by SetAddresses.
type Node struct {
	ID       types.ChunkID
	Type     ChunkType
	Name     string
	Text     disasm.TextRepr
	Comment  string
	Addr     disasm.Span
	Fields   []Field
	Children []*Node
}

// Field is a field of a Node. SetAddresses places it at the node's start.
type Field struct {
	Name  string
	Value disasm.FieldValue
	Addr  uint64
}

// FactoryOptions sizes generated trees.
type FactoryOptions struct {
	Seed         int64
	Functions    int // per file
	Blocks       int // per function
	Instructions int // per block
	Begin        uint64
	End          uint64
}

// DefaultFactoryOptions returns the shape used by the interactive demo:
// 16 functions of 4 blocks of 8 instructions over [0, 0x1000).
func DefaultFactoryOptions() FactoryOptions {
	return FactoryOptions{
		Seed:         1,
		Functions:    16,
		Blocks:       4,
		Instructions: 8,
		Begin:        0,
		End:          0x1000,
	}
}

// ChunkTreeFactory generates synthetic trees.
type ChunkTreeFactory struct {
	opts FactoryOptions
	rng  *rand.Rand
	next map[ChunkType]int
}

// NewChunkTreeFactory returns a factory seeded from opts.
func NewChunkTreeFactory(opts FactoryOptions) *ChunkTreeFactory {
	return &ChunkTreeFactory{
		opts: opts,
		rng:  rand.New(rand.NewSource(opts.Seed)),
		next: make(map[ChunkType]int),
	}
}

var (
	opcodes   = []string{"mov", "add", "sub", "xor", "cmp", "jmp", "call", "push", "pop", "lea"}
	registers = []string{"r0", "r1", "r2", "r3", "sp", "fp", "lr"}
)

// GenerateTree returns a subtree rooted at a chunk of type t.
func (f *ChunkTreeFactory) GenerateTree(t ChunkType) *Node {
	n := f.newNode(t)
	kind := t.child()
	if kind == "" {
		return n
	}
	for range f.fanout(t) {
		n.Children = append(n.Children, f.GenerateTree(kind))
	}
	return n
}

func (f *ChunkTreeFactory) fanout(t ChunkType) int {
	switch t {
	case File:
		return f.opts.Functions
	case Function:
		return f.opts.Blocks
	case Block:
		return f.opts.Instructions
	default:
		return 0
	}
}

func (f *ChunkTreeFactory) newNode(t ChunkType) *Node {
	seq := f.next[t]
	f.next[t]++
	n := &Node{Type: t}
	switch t {
	case File:
		n.ID = "file"
		n.Name = "file"
		n.Text = disasm.Text{Text: "synthetic image"}
	case Function:
		n.ID = types.ChunkID(fmt.Sprintf("fn_%d", seq))
		n.Name = fmt.Sprintf("sub_%d", seq)
		n.Text = disasm.Keyword{Text: n.Name, Kind: disasm.KeywordLabel}
		n.Fields = []Field{{Name: "name", Value: disasm.FieldString(n.Name)}}
	case Block:
		n.ID = types.ChunkID(fmt.Sprintf("blk_%d", seq))
		n.Name = fmt.Sprintf("loc_%d", seq)
		n.Text = disasm.Text{Text: n.Name + ":", Highlight: true}
		if seq%3 == 0 {
			n.Comment = "loop header"
		}
	case Instruction:
		n.ID = types.ChunkID(fmt.Sprintf("insn_%d", seq))
		n.Text = disasm.Sublist{Items: []disasm.TextRepr{
			disasm.Keyword{Text: opcodes[f.rng.Intn(len(opcodes))], Kind: disasm.KeywordOpcode},
			disasm.Blank{},
			disasm.Keyword{Text: registers[f.rng.Intn(len(registers))], Kind: disasm.KeywordRegister},
			disasm.Text{Text: ","},
			disasm.Blank{},
			disasm.Number{Value: uint64(f.rng.Intn(0x10000)), Width: 16, Base: 16},
		}}
		raw := make([]byte, 4)
		f.rng.Read(raw)
		n.Fields = []Field{{Name: "bytes", Value: disasm.FieldBytes(raw)}}
	default:
		n.ID = types.ChunkID(fmt.Sprintf("%s_%d", t, seq))
		n.Name = string(n.ID)
	}
	return n
}

// SetAddresses lays n out over [begin, end), splitting the span evenly
// between children. A node with both fields and children keeps its first
// address for the fields. It fails when the span is too small to give every
// chunk at least one address.
func (f *ChunkTreeFactory) SetAddresses(n *Node, begin, end uint64) error {
	if end <= begin {
		return fmt.Errorf("chunk %q: empty span [%#x, %#x)", n.ID, begin, end)
	}
	n.Addr = disasm.Span{Begin: begin, End: end}
	for i := range n.Fields {
		n.Fields[i].Addr = begin
	}
	if len(n.Children) == 0 {
		return nil
	}
	if len(n.Fields) > 0 {
		begin++
	}
	span := end - begin
	count := uint64(len(n.Children))
	if span < count {
		return fmt.Errorf("chunk %q: %d addresses for %d children", n.ID, span, count)
	}
	size := span / count
	for i, c := range n.Children {
		cb := begin + uint64(i)*size
		ce := cb + size
		if i == len(n.Children)-1 {
			ce = end
		}
		if err := f.SetAddresses(c, cb, ce); err != nil {
			return err
		}
	}
	return nil
}

// Build turns a laid-out node tree into a ChunkTree.
func (f *ChunkTreeFactory) Build(root *Node) (*disasm.ChunkTree, error) {
	b := disasm.NewBuilder(disasm.DefaultBuilderOptions())
	if err := add(b, root, types.NoChunk); err != nil {
		return nil, err
	}
	return b.Build()
}

func add(b *disasm.Builder, n *Node, parent types.ChunkID) error {
	err := b.AddChunk(disasm.ChunkSpec{
		ID:          n.ID,
		Parent:      parent,
		Addr:        n.Addr,
		Type:        string(n.Type),
		DisplayName: n.Name,
		Text:        n.Text,
		Comment:     n.Comment,
	})
	if err != nil {
		return err
	}
	for _, fl := range n.Fields {
		if err := b.AddField(n.ID, disasm.FieldSpec{Name: fl.Name, Addr: fl.Addr, Value: fl.Value}); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := add(b, c, n.ID); err != nil {
			return err
		}
	}
	return nil
}

// Tree generates, lays out and builds a FILE tree over the configured span.
func (f *ChunkTreeFactory) Tree() (*disasm.ChunkTree, error) {
	root := f.GenerateTree(File)
	if err := f.SetAddresses(root, f.opts.Begin, f.opts.End); err != nil {
		return nil, err
	}
	return f.Build(root)
}

// ScenarioTree returns root [0,0x1000) holding funcA [0,0x800) and funcB
// [0x800,0x1000).
func ScenarioTree() (*disasm.ChunkTree, error) {
	b := disasm.NewBuilder(disasm.DefaultBuilderOptions())
	specs := []disasm.ChunkSpec{
		{ID: "root", Addr: disasm.Span{Begin: 0, End: 0x1000}, Type: string(File), DisplayName: "root"},
		{ID: "funcA", Parent: "root", Addr: disasm.Span{Begin: 0, End: 0x800}, Type: string(Function), DisplayName: "funcA",
			Text: disasm.Keyword{Text: "funcA", Kind: disasm.KeywordLabel}},
		{ID: "funcB", Parent: "root", Addr: disasm.Span{Begin: 0x800, End: 0x1000}, Type: string(Function), DisplayName: "funcB",
			Text: disasm.Keyword{Text: "funcB", Kind: disasm.KeywordLabel}},
	}
	for _, s := range specs {
		if err := b.AddChunk(s); err != nil {
			return nil, err
		}
	}
	return b.Build()
}
