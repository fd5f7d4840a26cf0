package disasm

import (
	"encoding/hex"
	"fmt"

	"github.com/joshuapare/disasmkit/pkg/types"
)

// FieldPlaceholder is rendered in place of a field value that has no textual
// form.
const FieldPlaceholder = "[CANNOT DISPLAY AS STRING]"

// FieldKind tags a FieldValue variant.
type FieldKind int

const (
	FieldKindString FieldKind = iota
	FieldKindNumber
	FieldKindBytes
	FieldKindOpaque
)

func (k FieldKind) String() string {
	switch k {
	case FieldKindString:
		return "string"
	case FieldKindNumber:
		return "number"
	case FieldKindBytes:
		return "bytes"
	case FieldKindOpaque:
		return "opaque"
	default:
		return fmt.Sprintf("field(%d)", int(k))
	}
}

// FieldValue is the value of a Field.
type FieldValue interface {
	Kind() FieldKind
}

// FieldString is a textual value.
type FieldString string

// Kind implements FieldValue.
func (FieldString) Kind() FieldKind { return FieldKindString }

// FieldNumber is an integer value rendered like a Number text repr.
type FieldNumber struct {
	Value uint64
	Width int
	Base  int
}

// Kind implements FieldValue.
func (FieldNumber) Kind() FieldKind { return FieldKindNumber }

// FieldBytes is raw data rendered as space separated hex pairs.
type FieldBytes []byte

// Kind implements FieldValue.
func (FieldBytes) Kind() FieldKind { return FieldKindBytes }

// FieldOpaque carries a value the listing cannot render.
type FieldOpaque struct {
	TypeName string
	Data     []byte
}

// Kind implements FieldValue.
func (FieldOpaque) Kind() FieldKind { return FieldKindOpaque }

// FieldText renders v. Values without a textual form yield the placeholder
// together with an ErrKindMalformedField error.
func FieldText(v FieldValue) (string, error) {
	switch val := v.(type) {
	case FieldString:
		return string(val), nil
	case FieldNumber:
		return formatNumber(val.Value, val.Width, val.Base), nil
	case FieldBytes:
		return hexPairs(val), nil
	case FieldOpaque:
		return FieldPlaceholder, types.Errorf(types.ErrKindMalformedField, "field of type %q", val.TypeName)
	case nil:
		return FieldPlaceholder, types.Errorf(types.ErrKindMalformedField, "field has no value")
	default:
		return FieldPlaceholder, types.Errorf(types.ErrKindMalformedField, "field of type %T", v)
	}
}

// RenderField is FieldText with the error dropped.
func RenderField(v FieldValue) string {
	s, _ := FieldText(v)
	return s
}

func hexPairs(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	out := make([]byte, 0, len(b)*3-1)
	enc := make([]byte, 2)
	for i, c := range b {
		if i > 0 {
			out = append(out, ' ')
		}
		hex.Encode(enc, []byte{c})
		out = append(out, enc...)
	}
	return string(out)
}
