package rijndael

import (
	"encoding/binary"

	"github.com/Davincible/rijndael/pkg/crypto/gf"
	"github.com/Davincible/rijndael/pkg/secure"
)

const (
	// BlockSize is the AES block size in bytes.
	BlockSize = 16

	// KeySize is the AES-128 key size in bytes.
	KeySize = 16

	// Rounds is the number of rounds for a 128-bit key.
	Rounds = 10

	// ScheduleSize is the length of the expanded key in bytes.
	ScheduleSize = (Rounds + 1) * BlockSize

	// nk is the key length in 32-bit words.
	nk = KeySize / 4
)

// Key is an AES-128 key.
type Key [KeySize]byte

// Block is a single 16-byte plaintext or ciphertext block.
type Block [BlockSize]byte

// Schedule holds the Rounds+1 round keys derived from a Key. Round key r
// is applied by AddRoundKey in round r.
type Schedule [Rounds + 1][BlockSize]byte

// Rcon holds the round constants: Rcon[i] = x^(i-1) in GF(2^8). Index 0
// is unused.
var Rcon [Rounds + 1]byte

func init() {
	for i := 1; i <= Rounds; i++ {
		Rcon[i] = gf.Pow(2, i-1)
	}
}

// ExpandKey derives the round keys from key (FIPS-197 5.2). Round key 0 is
// the key itself; the first word of each following round key is
// SubWord(RotWord(last word)) ^ Rcon, XORed with the first word of the
// previous round key, and every other word is the previous word XORed with
// the word in the same position of the previous round key.
func ExpandKey(key Key) Schedule {
	var ks Schedule
	ks[0] = key

	for r := 1; r <= Rounds; r++ {
		prev := &ks[r-1]
		cur := &ks[r]

		var t [4]byte
		copy(t[:], prev[BlockSize-4:])
		t = subWord(rotWord(t))
		t[0] ^= Rcon[r]

		for i := 0; i < 4; i++ {
			cur[i] = prev[i] ^ t[i]
		}
		for w := 1; w < nk; w++ {
			for i := 0; i < 4; i++ {
				cur[4*w+i] = cur[4*(w-1)+i] ^ prev[4*w+i]
			}
		}
	}

	return ks
}

// rotWord rotates a word left by one byte.
func rotWord(w [4]byte) [4]byte {
	return [4]byte{w[1], w[2], w[3], w[0]}
}

// Bytes returns the schedule as one flat 176-byte array.
func (ks *Schedule) Bytes() [ScheduleSize]byte {
	var out [ScheduleSize]byte
	for r := range ks {
		copy(out[r*BlockSize:], ks[r][:])
	}
	return out
}

// Words returns the schedule as the 44 big-endian words w[0..43] used in
// FIPS-197 Appendix A.
func (ks *Schedule) Words() [(Rounds + 1) * 4]uint32 {
	var out [(Rounds + 1) * 4]uint32
	for r := range ks {
		for w := 0; w < 4; w++ {
			out[4*r+w] = binary.BigEndian.Uint32(ks[r][4*w:])
		}
	}
	return out
}

// Wipe zeroes every round key.
func (ks *Schedule) Wipe() {
	for r := range ks {
		secure.Zero(ks[r][:])
	}
}
