// Package buf contains bounds-checked word readers used by the data decoder.
package buf

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Order selects the byte order of multi-byte words.
type Order int

const (
	LittleEndian Order = iota
	BigEndian
)

func (o Order) String() string {
	if o == BigEndian {
		return "be"
	}
	return "le"
}

// ParseOrder accepts "le"/"little" and "be"/"big".
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(s) {
	case "", "le", "little":
		return LittleEndian, nil
	case "be", "big":
		return BigEndian, nil
	default:
		return LittleEndian, fmt.Errorf("unknown byte order %q", s)
	}
}

func (o Order) binary() binary.ByteOrder {
	if o == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Word reads a size-byte unsigned word at off. Size must be 1, 2, 4 or 8;
// ok is false for any other size or when the word does not fit in b.
func Word(b []byte, off, size int, order Order) (uint64, bool) {
	w, ok := Slice(b, off, size)
	if !ok {
		return 0, false
	}
	bo := order.binary()
	switch size {
	case 1:
		return uint64(w[0]), true
	case 2:
		return uint64(bo.Uint16(w)), true
	case 4:
		return uint64(bo.Uint32(w)), true
	case 8:
		return bo.Uint64(w), true
	default:
		return 0, false
	}
}
