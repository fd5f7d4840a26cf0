package buf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWord(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	tests := []struct {
		name  string
		off   int
		size  int
		order Order
		want  uint64
		ok    bool
	}{
		{"byte", 3, 1, LittleEndian, 0x04, true},
		{"u16 le", 0, 2, LittleEndian, 0x0201, true},
		{"u16 be", 0, 2, BigEndian, 0x0102, true},
		{"u32 le", 4, 4, LittleEndian, 0x08070605, true},
		{"u64 be", 0, 8, BigEndian, 0x0102030405060708, true},
		{"past end", 6, 4, LittleEndian, 0, false},
		{"negative", -1, 2, LittleEndian, 0, false},
		{"odd size", 0, 3, LittleEndian, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Word(data, tt.off, tt.size, tt.order)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseOrder(t *testing.T) {
	o, err := ParseOrder("BE")
	require.NoError(t, err)
	require.Equal(t, BigEndian, o)
	require.Equal(t, "be", o.String())

	o, err = ParseOrder("")
	require.NoError(t, err)
	require.Equal(t, LittleEndian, o)

	_, err = ParseOrder("middle")
	require.Error(t, err)
}
