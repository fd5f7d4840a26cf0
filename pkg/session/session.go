// Package session opens binaries as scrollable listings.
//
// A Session bundles the decoded chunk tree, the Blob serving it and the file
// mapping behind it:
//
//	s, err := session.Open("firmware.bin", session.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	anchor, err := s.Blob.GetEntrypoint(ctx).Wait(ctx)
//	win := s.Blob.CreateWindow(anchor, 500, 500)
package session

import (
	"fmt"
	"path/filepath"

	"github.com/joshuapare/disasmkit/disasm"
	"github.com/joshuapare/disasmkit/disasm/mock"
	"github.com/joshuapare/disasmkit/disasm/rawdec"
	"github.com/joshuapare/disasmkit/internal/mmfile"
)

// Options controls how a session decodes its input.
type Options struct {
	Decoder rawdec.Options
	Blob    disasm.BlobOptions
}

// DefaultOptions returns the default decoder and blob options.
func DefaultOptions() Options {
	return Options{
		Decoder: rawdec.DefaultOptions(),
		Blob:    disasm.DefaultBlobOptions(),
	}
}

// Session is an opened listing.
type Session struct {
	// Blob serves the decoded tree.
	Blob *disasm.Blob
	// Source names the input: a path, "<bytes>" or "<mock>".
	Source string
	// Size is the input size in bytes, 0 for mock sessions.
	Size int

	mapping *mmfile.Mapping
}

// Open maps and decodes the file at path.
func Open(path string, opts Options) (*Session, error) {
	m, err := mmfile.Map(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if opts.Decoder.Name == "" || opts.Decoder.Name == rawdec.DefaultOptions().Name {
		opts.Decoder.Name = filepath.Base(path)
	}
	s, err := fromBytes(m.Data, path, opts)
	if err != nil {
		_ = m.Close()
		return nil, err
	}
	s.mapping = m
	return s, nil
}

// OpenBytes decodes data held in memory.
func OpenBytes(data []byte, opts Options) (*Session, error) {
	return fromBytes(data, "<bytes>", opts)
}

func fromBytes(data []byte, source string, opts Options) (*Session, error) {
	tree, err := rawdec.Decode(data, opts.Decoder)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}
	blob, err := disasm.NewBlob(tree, opts.Blob)
	if err != nil {
		return nil, err
	}
	return &Session{Blob: blob, Source: source, Size: len(data)}, nil
}

// OpenMock builds a session over a synthetic tree.
func OpenMock(factory mock.FactoryOptions, blob disasm.BlobOptions) (*Session, error) {
	tree, err := mock.NewChunkTreeFactory(factory).Tree()
	if err != nil {
		return nil, fmt.Errorf("mock tree: %w", err)
	}
	b, err := disasm.NewBlob(tree, blob)
	if err != nil {
		return nil, err
	}
	return &Session{Blob: b, Source: "<mock>"}, nil
}

// Tree returns the decoded chunk tree.
func (s *Session) Tree() *disasm.ChunkTree { return s.Blob.Tree() }

// Close releases the file mapping. Entries already produced stay valid; the
// decoder copies everything it keeps.
func (s *Session) Close() error {
	if s == nil || s.mapping == nil {
		return nil
	}
	return s.mapping.Close()
}
