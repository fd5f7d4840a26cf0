// Package types defines the identifiers and typed errors shared by the
// disasmkit packages.
//
// Design goals:
//   - Small, copyable handles (ChunkID, Bookmark, Address) instead of
//     pointer graphs between chunks.
//   - Bookmarks are opaque and ordered; callers compare them but never do
//     arithmetic on them.
//   - Typed errors with stable categories (resolution/unknown chunk/malformed
//     field/invariant/state).
//
// This package has no dependencies beyond the standard library.
package types
