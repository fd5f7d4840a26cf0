package types

import (
	"fmt"
	"strconv"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindResolution     ErrKind = iota // entrypoint or scroll index cannot be mapped to a bookmark
	ErrKindUnknownChunk                  // chunk id absent from the current tree (recoverable no-op)
	ErrKindMalformedField                // field value the renderer cannot represent
	ErrKindInvariant                     // chunk tree fails construction invariants
	ErrKindState                         // invalid operation for current state (e.g., nil tree)
)

// String implements the Stringer interface for ErrKind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindResolution:
		return "resolution"
	case ErrKindUnknownChunk:
		return "unknown chunk"
	case ErrKindMalformedField:
		return "malformed field"
	case ErrKindInvariant:
		return "invariant"
	case ErrKindState:
		return "state"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind. This lets callers
// match any resolution failure with errors.Is(err, types.ErrResolution)
// regardless of the message attached to it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Errorf builds a typed error of the given kind with a formatted message.
func Errorf(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds a typed error of the given kind around an underlying cause.
func Wrap(kind ErrKind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Sentinels commonly returned by implementations.
var (
	// ErrResolution indicates a position could not be resolved to a bookmark.
	ErrResolution = &Error{Kind: ErrKindResolution, Msg: "position cannot be resolved"}
	// ErrUnknownChunk indicates a chunk id absent from the current tree.
	ErrUnknownChunk = &Error{Kind: ErrKindUnknownChunk, Msg: "unknown chunk"}
	// ErrMalformedField indicates a field value that cannot be displayed.
	ErrMalformedField = &Error{Kind: ErrKindMalformedField, Msg: "field value cannot be displayed"}
	// ErrInvariant indicates a chunk tree that violates construction invariants.
	ErrInvariant = &Error{Kind: ErrKindInvariant, Msg: "chunk tree invariant violated"}
	// ErrEmptyTree indicates a tree whose root spans no positions.
	ErrEmptyTree = &Error{Kind: ErrKindResolution, Msg: "chunk tree is empty"}
	// ErrNilTree indicates an operation on a missing tree.
	ErrNilTree = &Error{Kind: ErrKindState, Msg: "chunk tree is nil"}
)

// -----------------------------------------------------------------------------
// Core Identifiers
// -----------------------------------------------------------------------------

// Address is an offset into the binary's logical address space.
type Address uint64

// String formats the address the way listings print it.
func (a Address) String() string {
	return fmt.Sprintf("0x%04x", uint64(a))
}

// ParseAddress accepts decimal or 0x-prefixed hexadecimal input.
func ParseAddress(s string) (Address, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("parse address %q: %w", s, err)
	}
	return Address(v), nil
}

// ChunkID identifies a chunk for the lifetime of its tree. The root's parent
// is the empty id.
type ChunkID string

// NoChunk is the parent id of the root chunk.
const NoChunk ChunkID = ""

// ScrollbarIndex is a row-granularity position used to map a scrollbar value
// back to a Bookmark.
type ScrollbarIndex int64

// Bookmark is an opaque, totally ordered position inside a Blob. Bookmarks
// from one Blob order consistently with chunk containment. Only the tree
// builder, the Blob and its Windows mint them.
type Bookmark struct {
	pos uint64
}

// NewBookmark mints a bookmark at a raw backend position. Decoders call this
// when populating a tree; presentation code should never need it.
func NewBookmark(pos uint64) Bookmark { return Bookmark{pos: pos} }

// MaxBookmark orders after every other bookmark.
var MaxBookmark = Bookmark{pos: ^uint64(0)}

// Compare returns -1, 0 or +1.
func (b Bookmark) Compare(o Bookmark) int {
	switch {
	case b.pos < o.pos:
		return -1
	case b.pos > o.pos:
		return 1
	default:
		return 0
	}
}

// Less reports whether b orders before o.
func (b Bookmark) Less(o Bookmark) bool { return b.pos < o.pos }

// Equal reports whether b and o name the same position.
func (b Bookmark) Equal(o Bookmark) bool { return b.pos == o.pos }

// Raw exposes the backend position for serialization only.
func (b Bookmark) Raw() uint64 { return b.pos }

func (b Bookmark) String() string {
	return fmt.Sprintf("@%x", b.pos)
}
