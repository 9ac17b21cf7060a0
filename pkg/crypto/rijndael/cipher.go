// Package rijndael implements the AES-128 block cipher (FIPS-197) from its
// byte-level building blocks: the S-boxes, the four round transforms and the
// key schedule. Every transform is exported so it can be checked on its own.
//
// Only single-block encryption and decryption are provided. Modes of
// operation and padding belong to the caller.
package rijndael

// EncryptBlock encrypts one block with an expanded key.
//
// The last round has no MixColumns step. Dropping that asymmetry yields a
// cipher that is invertible but not AES.
func EncryptBlock(in Block, ks *Schedule) Block {
	s := State(in)

	AddRoundKey(&s, &ks[0])
	for r := 1; r < Rounds; r++ {
		SubBytes(&s)
		ShiftRows(&s)
		MixColumns(&s)
		AddRoundKey(&s, &ks[r])
	}
	SubBytes(&s)
	ShiftRows(&s)
	AddRoundKey(&s, &ks[Rounds])

	return Block(s)
}

// DecryptBlock decrypts one block with an expanded key. It runs the
// inverse transforms in the reverse order of EncryptBlock, so InvMixColumns
// follows AddRoundKey in each middle round and is skipped in the last.
func DecryptBlock(in Block, ks *Schedule) Block {
	s := State(in)

	AddRoundKey(&s, &ks[Rounds])
	for r := Rounds - 1; r > 0; r-- {
		InvShiftRows(&s)
		InvSubBytes(&s)
		AddRoundKey(&s, &ks[r])
		InvMixColumns(&s)
	}
	InvShiftRows(&s)
	InvSubBytes(&s)
	AddRoundKey(&s, &ks[0])

	return Block(s)
}

// Encrypt expands key and encrypts a single block. Callers encrypting more
// than one block should expand the key once with ExpandKey or NewCipher.
func Encrypt(plaintext Block, key Key) Block {
	ks := ExpandKey(key)
	return EncryptBlock(plaintext, &ks)
}

// Decrypt expands key and decrypts a single block.
func Decrypt(ciphertext Block, key Key) Block {
	ks := ExpandKey(key)
	return DecryptBlock(ciphertext, &ks)
}
