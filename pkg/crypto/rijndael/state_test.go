package rijndael

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateLayoutIsColumnMajor(t *testing.T) {
	var s State
	for i := range s {
		s[i] = byte(i)
	}

	assert.Equal(t, byte(0x01), s.At(1, 0))
	assert.Equal(t, byte(0x04), s.At(0, 1))
	assert.Equal(t, byte(0x0e), s.At(2, 3))
	assert.Equal(t, [4]byte{4, 5, 6, 7}, s.Column(1))
	assert.Equal(t, [4]byte{2, 6, 10, 14}, s.Row(2))

	s.Set(3, 2, 0xaa)
	assert.Equal(t, byte(0xaa), s[11])
}

func TestShiftRowsKnownAnswer(t *testing.T) {
	var s State
	for i := range s {
		s[i] = byte(i)
	}
	ShiftRows(&s)

	assert.Equal(t, [4]byte{0, 4, 8, 12}, s.Row(0))
	assert.Equal(t, [4]byte{5, 9, 13, 1}, s.Row(1))
	assert.Equal(t, [4]byte{10, 14, 2, 6}, s.Row(2))
	assert.Equal(t, [4]byte{15, 3, 7, 11}, s.Row(3))
}

func TestMixColumnKnownAnswers(t *testing.T) {
	tests := []struct {
		in, out [4]byte
	}{
		{[4]byte{0xdb, 0x13, 0x53, 0x45}, [4]byte{0x8e, 0x4d, 0xa1, 0xbc}},
		{[4]byte{0xf2, 0x0a, 0x22, 0x5c}, [4]byte{0x9f, 0xdc, 0x58, 0x9d}},
		{[4]byte{0x01, 0x01, 0x01, 0x01}, [4]byte{0x01, 0x01, 0x01, 0x01}},
		{[4]byte{0xc6, 0xc6, 0xc6, 0xc6}, [4]byte{0xc6, 0xc6, 0xc6, 0xc6}},
		{[4]byte{0xd4, 0xd4, 0xd4, 0xd5}, [4]byte{0xd5, 0xd5, 0xd7, 0xd6}},
		{[4]byte{0x2d, 0x26, 0x31, 0x4c}, [4]byte{0x4d, 0x7e, 0xbd, 0xf8}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, MixColumn(tt.in))
		assert.Equal(t, tt.in, InvMixColumn(tt.out))
	}
}

func TestMixColumnsFIPSRoundOne(t *testing.T) {
	// FIPS-197 Appendix B, round 1: s_row -> m_col
	s := State(mustHex16(t, "d4bf5d30e0b452aeb84111f11e2798e5"))
	MixColumns(&s)
	assert.Equal(t, mustHex16(t, "046681e5e0cb199a48f8d37a2806264c"), [16]byte(s))
}

func TestTransformInverses(t *testing.T) {
	tests := []struct {
		name     string
		fwd, inv func(*State)
	}{
		{"SubBytes", SubBytes, InvSubBytes},
		{"ShiftRows", ShiftRows, InvShiftRows},
		{"MixColumns", MixColumns, InvMixColumns},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 1000; i++ {
				orig := randomState(t)

				s := orig
				tt.fwd(&s)
				tt.inv(&s)
				require.Equal(t, orig, s)

				s = orig
				tt.inv(&s)
				tt.fwd(&s)
				require.Equal(t, orig, s)
			}
		})
	}
}

func TestAddRoundKeyIsSelfInverse(t *testing.T) {
	for i := 0; i < 1000; i++ {
		orig := randomState(t)
		k := [16]byte(randomState(t))

		s := orig
		AddRoundKey(&s, &k)
		AddRoundKey(&s, &k)
		require.Equal(t, orig, s)
	}
}

func TestMixColumnInverseStructured(t *testing.T) {
	// every column with a single non-zero byte, and every column with the
	// same byte repeated
	for pos := 0; pos < 4; pos++ {
		for v := 0; v < 256; v++ {
			var col [4]byte
			col[pos] = byte(v)
			require.Equal(t, col, InvMixColumn(MixColumn(col)))
		}
	}
	for v := 0; v < 256; v++ {
		b := byte(v)
		col := [4]byte{b, b, b, b}
		require.Equal(t, col, MixColumn(col))
	}
}

func TestMixColumnInverseRandomized(t *testing.T) {
	n := 1 << 16
	if testing.Short() {
		n = 1 << 10
	}
	for i := 0; i < n; i++ {
		s := randomState(t)
		for c := 0; c < 4; c++ {
			col := s.Column(c)
			require.Equal(t, col, InvMixColumn(MixColumn(col)))
		}
	}
}

// TestMixColumnInverseExhaustive checks all 2^32 columns. It takes minutes,
// so it only runs when RIJNDAEL_EXHAUSTIVE is set.
func TestMixColumnInverseExhaustive(t *testing.T) {
	if os.Getenv("RIJNDAEL_EXHAUSTIVE") == "" {
		t.Skip("set RIJNDAEL_EXHAUSTIVE=1 to check every column")
	}
	for x := uint64(0); x < 1<<32; x++ {
		col := [4]byte{byte(x), byte(x >> 8), byte(x >> 16), byte(x >> 24)}
		if InvMixColumn(MixColumn(col)) != col {
			t.Fatalf("InvMixColumn(MixColumn(%x)) != %x", col, col)
		}
	}
}

func BenchmarkMixColumns(b *testing.B) {
	s := randomState(b)
	for i := 0; i < b.N; i++ {
		MixColumns(&s)
	}
}
