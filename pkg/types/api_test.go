package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError_IsMatchesByKind(t *testing.T) {
	err := Errorf(ErrKindResolution, "scroll index %d out of range", 42)
	require.ErrorIs(t, err, ErrResolution)
	require.NotErrorIs(t, err, ErrUnknownChunk)

	wrapped := fmt.Errorf("seek: %w", err)
	require.ErrorIs(t, wrapped, ErrResolution)

	var typed *Error
	require.ErrorAs(t, wrapped, &typed)
	require.Equal(t, ErrKindResolution, typed.Kind)
}

func TestError_WrapKeepsCause(t *testing.T) {
	cause := errors.New("context canceled")
	err := Wrap(ErrKindResolution, "resolve entrypoint", cause)
	require.ErrorIs(t, err, cause)
	require.Equal(t, "resolve entrypoint: context canceled", err.Error())
}

func TestError_NilReceiver(t *testing.T) {
	var e *Error
	require.Equal(t, "<nil>", e.Error())
}

func TestErrKind_String(t *testing.T) {
	tests := []struct {
		kind ErrKind
		want string
	}{
		{ErrKindResolution, "resolution"},
		{ErrKindUnknownChunk, "unknown chunk"},
		{ErrKindMalformedField, "malformed field"},
		{ErrKindInvariant, "invariant"},
		{ErrKindState, "state"},
		{ErrKind(99), "kind(99)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestBookmark_Ordering(t *testing.T) {
	a := NewBookmark(0x10)
	b := NewBookmark(0x20)

	require.True(t, a.Less(b))
	require.False(t, b.Less(a))
	require.Equal(t, -1, a.Compare(b))
	require.Equal(t, 1, b.Compare(a))
	require.Equal(t, 0, a.Compare(NewBookmark(0x10)))
	require.True(t, a.Equal(NewBookmark(0x10)))
	require.True(t, b.Less(MaxBookmark))
	require.Equal(t, "@10", a.String())
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		in      string
		want    Address
		wantErr bool
	}{
		{"0x800", 0x800, false},
		{"2048", 2048, false},
		{"0", 0, false},
		{"zz", 0, true},
		{"-1", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAddress(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
	require.Equal(t, "0x0800", Address(0x800).String())
}
