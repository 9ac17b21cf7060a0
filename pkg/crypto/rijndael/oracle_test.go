package rijndael

import (
	"testing"

	"github.com/Davincible/rijndael/pkg/crypto/gf"
	"github.com/Davincible/rijndael/pkg/secure"
	"github.com/stretchr/testify/require"
)

// The reference implementation below keeps the state as a list of four
// columns, m[c][r], and works with matrix arithmetic and the published
// FIPS-197 table. It is intentionally written differently from the package
// code so the two can be compared transform by transform.

var fipsSBox = [256]byte{
	0x63, 0x7c, 0x77, 0x7b, 0xf2, 0x6b, 0x6f, 0xc5, 0x30, 0x01, 0x67, 0x2b, 0xfe, 0xd7, 0xab, 0x76,
	0xca, 0x82, 0xc9, 0x7d, 0xfa, 0x59, 0x47, 0xf0, 0xad, 0xd4, 0xa2, 0xaf, 0x9c, 0xa4, 0x72, 0xc0,
	0xb7, 0xfd, 0x93, 0x26, 0x36, 0x3f, 0xf7, 0xcc, 0x34, 0xa5, 0xe5, 0xf1, 0x71, 0xd8, 0x31, 0x15,
	0x04, 0xc7, 0x23, 0xc3, 0x18, 0x96, 0x05, 0x9a, 0x07, 0x12, 0x80, 0xe2, 0xeb, 0x27, 0xb2, 0x75,
	0x09, 0x83, 0x2c, 0x1a, 0x1b, 0x6e, 0x5a, 0xa0, 0x52, 0x3b, 0xd6, 0xb3, 0x29, 0xe3, 0x2f, 0x84,
	0x53, 0xd1, 0x00, 0xed, 0x20, 0xfc, 0xb1, 0x5b, 0x6a, 0xcb, 0xbe, 0x39, 0x4a, 0x4c, 0x58, 0xcf,
	0xd0, 0xef, 0xaa, 0xfb, 0x43, 0x4d, 0x33, 0x85, 0x45, 0xf9, 0x02, 0x7f, 0x50, 0x3c, 0x9f, 0xa8,
	0x51, 0xa3, 0x40, 0x8f, 0x92, 0x9d, 0x38, 0xf5, 0xbc, 0xb6, 0xda, 0x21, 0x10, 0xff, 0xf3, 0xd2,
	0xcd, 0x0c, 0x13, 0xec, 0x5f, 0x97, 0x44, 0x17, 0xc4, 0xa7, 0x7e, 0x3d, 0x64, 0x5d, 0x19, 0x73,
	0x60, 0x81, 0x4f, 0xdc, 0x22, 0x2a, 0x90, 0x88, 0x46, 0xee, 0xb8, 0x14, 0xde, 0x5e, 0x0b, 0xdb,
	0xe0, 0x32, 0x3a, 0x0a, 0x49, 0x06, 0x24, 0x5c, 0xc2, 0xd3, 0xac, 0x62, 0x91, 0x95, 0xe4, 0x79,
	0xe7, 0xc8, 0x37, 0x6d, 0x8d, 0xd5, 0x4e, 0xa9, 0x6c, 0x56, 0xf4, 0xea, 0x65, 0x7a, 0xae, 0x08,
	0xba, 0x78, 0x25, 0x2e, 0x1c, 0xa6, 0xb4, 0xc6, 0xe8, 0xdd, 0x74, 0x1f, 0x4b, 0xbd, 0x8b, 0x8a,
	0x70, 0x3e, 0xb5, 0x66, 0x48, 0x03, 0xf6, 0x0e, 0x61, 0x35, 0x57, 0xb9, 0x86, 0xc1, 0x1d, 0x9e,
	0xe1, 0xf8, 0x98, 0x11, 0x69, 0xd9, 0x8e, 0x94, 0x9b, 0x1e, 0x87, 0xe9, 0xce, 0x55, 0x28, 0xdf,
	0x8c, 0xa1, 0x89, 0x0d, 0xbf, 0xe6, 0x42, 0x68, 0x41, 0x99, 0x2d, 0x0f, 0xb0, 0x54, 0xbb, 0x16,
}

var fipsInvSBox = func() [256]byte {
	var inv [256]byte
	for i, v := range fipsSBox {
		inv[v] = byte(i)
	}
	return inv
}()

var (
	mixMatrix = [4][4]byte{
		{2, 3, 1, 1},
		{1, 2, 3, 1},
		{1, 1, 2, 3},
		{3, 1, 1, 2},
	}
	invMixMatrix = [4][4]byte{
		{14, 11, 13, 9},
		{9, 14, 11, 13},
		{13, 9, 14, 11},
		{11, 13, 9, 14},
	}
)

type refMatrix [4][4]byte

func toMatrix(b [16]byte) refMatrix {
	var m refMatrix
	for c := 0; c < 4; c++ {
		copy(m[c][:], b[4*c:4*c+4])
	}
	return m
}

func (m refMatrix) flatten() [16]byte {
	var b [16]byte
	for c := 0; c < 4; c++ {
		copy(b[4*c:], m[c][:])
	}
	return b
}

func refSubBytes(m *refMatrix, box *[256]byte) {
	for c := range m {
		for r := range m[c] {
			m[c][r] = box[m[c][r]]
		}
	}
}

// refShiftRows moves row r by shift*r columns; shift is +1 for ShiftRows
// and -1 for InvShiftRows.
func refShiftRows(m *refMatrix, shift int) {
	var out refMatrix
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			src := ((c+shift*r)%4 + 4) % 4
			out[c][r] = m[src][r]
		}
	}
	*m = out
}

func refMulColumn(mat *[4][4]byte, col [4]byte) [4]byte {
	var out [4]byte
	for i := 0; i < 4; i++ {
		var acc byte
		for j := 0; j < 4; j++ {
			acc = gf.Add(acc, gf.MulSlow(mat[i][j], col[j]))
		}
		out[i] = acc
	}
	return out
}

func refMixColumns(m *refMatrix, mat *[4][4]byte) {
	for c := range m {
		m[c] = refMulColumn(mat, m[c])
	}
}

func refAddRoundKey(m *refMatrix, rk [16]byte) {
	k := toMatrix(rk)
	for c := range m {
		for r := range m[c] {
			m[c][r] ^= k[c][r]
		}
	}
}

// refExpandKey is the word-oriented key expansion of FIPS-197 Figure 11.
func refExpandKey(key [16]byte) [11][16]byte {
	var w [44][4]byte
	for i := 0; i < 4; i++ {
		copy(w[i][:], key[4*i:4*i+4])
	}
	rc := byte(1)
	for i := 4; i < 44; i++ {
		t := w[i-1]
		if i%4 == 0 {
			t = [4]byte{fipsSBox[t[1]], fipsSBox[t[2]], fipsSBox[t[3]], fipsSBox[t[0]]}
			t[0] ^= rc
			rc = gf.MulSlow(rc, 2)
		}
		for j := 0; j < 4; j++ {
			w[i][j] = w[i-4][j] ^ t[j]
		}
	}
	var ks [11][16]byte
	for i := 0; i < 44; i++ {
		copy(ks[i/4][4*(i%4):], w[i][:])
	}
	return ks
}

func refEncrypt(in, key [16]byte) [16]byte {
	ks := refExpandKey(key)
	m := toMatrix(in)
	refAddRoundKey(&m, ks[0])
	for r := 1; r <= 10; r++ {
		refSubBytes(&m, &fipsSBox)
		refShiftRows(&m, 1)
		if r < 10 {
			refMixColumns(&m, &mixMatrix)
		}
		refAddRoundKey(&m, ks[r])
	}
	return m.flatten()
}

func randomState(t testing.TB) State {
	t.Helper()
	b, err := secure.RandomBytes(BlockSize)
	require.NoError(t, err)
	return State(b)
}

const oracleTrials = 500

func TestSubBytesAgainstReference(t *testing.T) {
	for i := 0; i < oracleTrials; i++ {
		s := randomState(t)
		m := toMatrix(s)

		SubBytes(&s)
		refSubBytes(&m, &fipsSBox)
		require.Equal(t, m.flatten(), [16]byte(s))

		InvSubBytes(&s)
		refSubBytes(&m, &fipsInvSBox)
		require.Equal(t, m.flatten(), [16]byte(s))
	}
}

func TestShiftRowsAgainstReference(t *testing.T) {
	for i := 0; i < oracleTrials; i++ {
		s := randomState(t)
		m := toMatrix(s)

		ShiftRows(&s)
		refShiftRows(&m, 1)
		require.Equal(t, m.flatten(), [16]byte(s))

		s2 := randomState(t)
		m2 := toMatrix(s2)
		InvShiftRows(&s2)
		refShiftRows(&m2, -1)
		require.Equal(t, m2.flatten(), [16]byte(s2))
	}
}

func TestMixColumnsAgainstReference(t *testing.T) {
	for i := 0; i < oracleTrials; i++ {
		s := randomState(t)
		m := toMatrix(s)

		MixColumns(&s)
		refMixColumns(&m, &mixMatrix)
		require.Equal(t, m.flatten(), [16]byte(s))

		s2 := randomState(t)
		m2 := toMatrix(s2)
		InvMixColumns(&s2)
		refMixColumns(&m2, &invMixMatrix)
		require.Equal(t, m2.flatten(), [16]byte(s2))
	}
}

func TestAddRoundKeyAgainstReference(t *testing.T) {
	for i := 0; i < oracleTrials; i++ {
		s := randomState(t)
		k := [16]byte(randomState(t))
		m := toMatrix(s)

		AddRoundKey(&s, &k)
		refAddRoundKey(&m, k)
		require.Equal(t, m.flatten(), [16]byte(s))
	}
}

func TestExpandKeyAgainstReference(t *testing.T) {
	for i := 0; i < 100; i++ {
		k := Key(randomState(t))
		require.Equal(t, refExpandKey(k), [11][16]byte(ExpandKey(k)))
	}
}

func TestEncryptAgainstReference(t *testing.T) {
	for i := 0; i < 100; i++ {
		k := Key(randomState(t))
		p := Block(randomState(t))
		require.Equal(t, refEncrypt(p, k), [16]byte(Encrypt(p, k)))
	}
}

func TestReferenceSBoxMatchesBuilt(t *testing.T) {
	require.Equal(t, fipsSBox, SBox)
	require.Equal(t, fipsInvSBox, InvSBox)
}
