package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshuapare/disasmkit/disasm"
	"github.com/joshuapare/disasmkit/disasm/scroll"
	"github.com/joshuapare/disasmkit/pkg/session"
	"github.com/stretchr/testify/require"
)

// TestHelper drives a Model the way the bubbletea runtime would, without a
// terminal.
type TestHelper struct {
	t     *testing.T
	model Model
}

// sampleBytes returns n bytes counting up from zero. With the default
// decoder 256 bytes give one section of 16 rows, 84 entries in total.
func sampleBytes(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}

// smallWindow keeps windows much shorter than the listing so that cursor
// movement has to re-anchor.
func smallWindow() scroll.Options {
	return scroll.Options{Threshold: 2, Before: 10, After: 10}
}

// NewTestHelper opens data, sizes the terminal and resolves the entrypoint.
func NewTestHelper(t *testing.T, data []byte, opts scroll.Options) *TestHelper {
	t.Helper()
	sess, err := session.OpenBytes(data, session.DefaultOptions())
	require.NoError(t, err)

	h := &TestHelper{t: t, model: NewModel(sess, opts)}
	t.Cleanup(func() { _ = h.model.Close() })
	h.SendWindowSize(80, 20)
	h.Run(h.model.Init())
	require.NotNil(t, h.model.win)
	return h
}

// Send delivers msg and returns the command Update produced.
func (h *TestHelper) Send(msg tea.Msg) tea.Cmd {
	updated, cmd := h.model.Update(msg)
	h.model = updated.(Model)
	return cmd
}

// SendKey simulates a special key press
func (h *TestHelper) SendKey(keyType tea.KeyType) *TestHelper {
	h.Send(tea.KeyMsg{Type: keyType})
	return h
}

// SendKeyRune simulates a character key press
func (h *TestHelper) SendKeyRune(r rune) tea.Cmd {
	return h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Type sends every rune of s.
func (h *TestHelper) Type(s string) *TestHelper {
	for _, r := range s {
		h.SendKeyRune(r)
	}
	return h
}

// SendWindowSize simulates a window resize
func (h *TestHelper) SendWindowSize(width, height int) *TestHelper {
	h.Send(tea.WindowSizeMsg{Width: width, Height: height})
	return h
}

// Run executes cmd and feeds its message back, following the chain of
// resolutions until no command is left. Only commands known to finish
// immediately may be passed.
func (h *TestHelper) Run(cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		cmd = h.Send(msg)
	}
}

// Current returns the entry under the cursor.
func (h *TestHelper) Current() disasm.Entry {
	h.t.Helper()
	e, ok := h.model.current()
	require.True(h.t, ok, "no entry under the cursor")
	return e
}

// stream returns the fully expanded entry stream of the model's tree.
func (h *TestHelper) stream() []disasm.Entry {
	tree := h.model.sess.Tree()
	return disasm.Generate(tree, nil, disasm.Unbounded(tree.Root().Pos.Begin))
}

func sameEntry(a, b disasm.Entry) bool {
	return a.Kind == b.Kind && a.Chunk == b.Chunk && a.Field == b.Field && a.Pos == b.Pos
}
