package disasm

import (
	"fmt"
	"strconv"
	"strings"
)

// TextRepr is the textual representation attached to a chunk, e.g. the
// mnemonic and operands of an instruction.
type TextRepr interface {
	String() string
	isTextRepr()
}

// KeywordKind classifies a Keyword for highlighting.
type KeywordKind int

const (
	KeywordOpcode KeywordKind = iota
	KeywordModifier
	KeywordLabel
	KeywordRegister
)

func (k KeywordKind) String() string {
	switch k {
	case KeywordOpcode:
		return "opcode"
	case KeywordModifier:
		return "modifier"
	case KeywordLabel:
		return "label"
	case KeywordRegister:
		return "register"
	default:
		return fmt.Sprintf("keyword(%d)", int(k))
	}
}

// Text is literal text, optionally highlighted.
type Text struct {
	Text      string
	Highlight bool
}

func (t Text) String() string { return t.Text }
func (Text) isTextRepr()      {}

// Keyword is an opcode, modifier, label or register name. Link optionally
// names the chunk the keyword refers to.
type Keyword struct {
	Text string
	Kind KeywordKind
	Link string
}

func (k Keyword) String() string { return k.Text }
func (Keyword) isTextRepr()      {}

// Blank is a single separating space.
type Blank struct{}

func (Blank) String() string { return " " }
func (Blank) isTextRepr()    {}

// Number is an integer rendered in Base, zero-padded to fit Width bits.
type Number struct {
	Value uint64
	Width int
	Base  int
}

func (n Number) String() string { return formatNumber(n.Value, n.Width, n.Base) }
func (Number) isTextRepr()      {}

// Sublist concatenates its items.
type Sublist struct {
	Items []TextRepr
}

func (s Sublist) String() string {
	var b strings.Builder
	for _, it := range s.Items {
		if it == nil {
			continue
		}
		b.WriteString(it.String())
	}
	return b.String()
}
func (Sublist) isTextRepr() {}

// formatNumber renders v in base (2, 8, 10 or 16; anything else is treated
// as 16) padded to the digit count a width-bit value needs.
func formatNumber(v uint64, width, base int) string {
	var prefix string
	var bitsPerDigit int
	switch base {
	case 2:
		prefix, bitsPerDigit = "0b", 1
	case 8:
		prefix, bitsPerDigit = "0o", 3
	case 10:
		return strconv.FormatUint(v, 10)
	default:
		base = 16
		prefix, bitsPerDigit = "0x", 4
	}
	digits := strconv.FormatUint(v, base)
	if width > 0 {
		want := (width + bitsPerDigit - 1) / bitsPerDigit
		if pad := want - len(digits); pad > 0 {
			digits = strings.Repeat("0", pad) + digits
		}
	}
	return prefix + digits
}
