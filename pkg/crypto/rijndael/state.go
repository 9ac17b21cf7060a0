package rijndael

import "github.com/Davincible/rijndael/pkg/crypto/gf"

// State is the 4x4 byte matrix a block is processed in. It is stored
// column-major exactly like the input block: byte i of the block is row
// i%4, column i/4, so s[r+4*c] addresses row r of column c.
type State [16]byte

// At returns the byte at row r, column c.
func (s *State) At(r, c int) byte {
	return s[r+4*c]
}

// Set stores v at row r, column c.
func (s *State) Set(r, c int, v byte) {
	s[r+4*c] = v
}

// Column returns column c as a 4-byte vector, top row first.
func (s *State) Column(c int) [4]byte {
	return [4]byte{s[4*c], s[4*c+1], s[4*c+2], s[4*c+3]}
}

// SetColumn overwrites column c.
func (s *State) SetColumn(c int, col [4]byte) {
	copy(s[4*c:4*c+4], col[:])
}

// Row returns row r, leftmost column first.
func (s *State) Row(r int) [4]byte {
	return [4]byte{s[r], s[r+4], s[r+8], s[r+12]}
}

// SubBytes replaces every byte with its S-box value.
func SubBytes(s *State) {
	for i, b := range s {
		s[i] = SBox[b]
	}
}

// InvSubBytes replaces every byte with its inverse S-box value.
func InvSubBytes(s *State) {
	for i, b := range s {
		s[i] = InvSBox[b]
	}
}

// ShiftRows rotates row r left by r positions.
func ShiftRows(s *State) {
	s[1], s[5], s[9], s[13] = s[5], s[9], s[13], s[1]
	s[2], s[6], s[10], s[14] = s[10], s[14], s[2], s[6]
	s[3], s[7], s[11], s[15] = s[15], s[3], s[7], s[11]
}

// InvShiftRows rotates row r right by r positions.
func InvShiftRows(s *State) {
	s[1], s[5], s[9], s[13] = s[13], s[1], s[5], s[9]
	s[2], s[6], s[10], s[14] = s[10], s[14], s[2], s[6]
	s[3], s[7], s[11], s[15] = s[7], s[11], s[15], s[3]
}

// MixColumn multiplies one column by the circulant matrix
//
//	[2 3 1 1]
//	[1 2 3 1]
//	[1 1 2 3]
//	[3 1 1 2]
//
// over GF(2^8).
func MixColumn(a [4]byte) [4]byte {
	return [4]byte{
		gf.Mul(2, a[0]) ^ gf.Mul(3, a[1]) ^ a[2] ^ a[3],
		a[0] ^ gf.Mul(2, a[1]) ^ gf.Mul(3, a[2]) ^ a[3],
		a[0] ^ a[1] ^ gf.Mul(2, a[2]) ^ gf.Mul(3, a[3]),
		gf.Mul(3, a[0]) ^ a[1] ^ a[2] ^ gf.Mul(2, a[3]),
	}
}

// InvMixColumn multiplies one column by the inverse matrix
//
//	[14 11 13  9]
//	[ 9 14 11 13]
//	[13  9 14 11]
//	[11 13  9 14]
func InvMixColumn(a [4]byte) [4]byte {
	return [4]byte{
		gf.Mul(14, a[0]) ^ gf.Mul(11, a[1]) ^ gf.Mul(13, a[2]) ^ gf.Mul(9, a[3]),
		gf.Mul(9, a[0]) ^ gf.Mul(14, a[1]) ^ gf.Mul(11, a[2]) ^ gf.Mul(13, a[3]),
		gf.Mul(13, a[0]) ^ gf.Mul(9, a[1]) ^ gf.Mul(14, a[2]) ^ gf.Mul(11, a[3]),
		gf.Mul(11, a[0]) ^ gf.Mul(13, a[1]) ^ gf.Mul(9, a[2]) ^ gf.Mul(14, a[3]),
	}
}

// MixColumns applies MixColumn to each of the four columns.
func MixColumns(s *State) {
	for c := 0; c < 4; c++ {
		s.SetColumn(c, MixColumn(s.Column(c)))
	}
}

// InvMixColumns applies InvMixColumn to each of the four columns.
func InvMixColumns(s *State) {
	for c := 0; c < 4; c++ {
		s.SetColumn(c, InvMixColumn(s.Column(c)))
	}
}

// AddRoundKey XORs the round key into the state. Applying it twice with the
// same key restores the state.
func AddRoundKey(s *State, rk *[BlockSize]byte) {
	for i := range s {
		s[i] ^= rk[i]
	}
}
