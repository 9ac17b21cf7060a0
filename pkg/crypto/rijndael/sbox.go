package rijndael

import (
	"math/bits"

	"github.com/Davincible/rijndael/pkg/crypto/gf"
)

// affineConst is the constant added by the forward affine transform (FIPS-197 5.1.1).
const affineConst = 0x63

// invAffineConst is the constant added by the inverse affine transform.
const invAffineConst = 0x05

// SBox and InvSBox are built once at package initialisation and are never
// written afterwards, so they are safe to share between goroutines.
var (
	SBox    [256]byte
	InvSBox [256]byte
)

func init() {
	SBox = BuildSBox()
	InvSBox = BuildInverseSBox()
}

// BuildSBox computes the forward substitution table: the multiplicative
// inverse in GF(2^8) (0 maps to 0) followed by the affine transform.
func BuildSBox() [256]byte {
	var box [256]byte
	for i := 0; i < 256; i++ {
		box[i] = affine(gf.Inverse(byte(i)))
	}
	return box
}

// BuildInverseSBox computes the inverse table by undoing the affine step
// first and then taking the multiplicative inverse.
func BuildInverseSBox() [256]byte {
	var box [256]byte
	for i := 0; i < 256; i++ {
		box[i] = gf.Inverse(invAffine(byte(i)))
	}
	return box
}

// affine returns b ^ rotl(b,1) ^ rotl(b,2) ^ rotl(b,3) ^ rotl(b,4) ^ 0x63.
func affine(b byte) byte {
	return b ^
		bits.RotateLeft8(b, 1) ^
		bits.RotateLeft8(b, 2) ^
		bits.RotateLeft8(b, 3) ^
		bits.RotateLeft8(b, 4) ^
		affineConst
}

// invAffine returns rotl(b,1) ^ rotl(b,3) ^ rotl(b,6) ^ 0x05.
func invAffine(b byte) byte {
	return bits.RotateLeft8(b, 1) ^
		bits.RotateLeft8(b, 3) ^
		bits.RotateLeft8(b, 6) ^
		invAffineConst
}

// subWord applies the S-box to each byte of a key schedule word.
func subWord(w [4]byte) [4]byte {
	return [4]byte{SBox[w[0]], SBox[w[1]], SBox[w[2]], SBox[w[3]]}
}
