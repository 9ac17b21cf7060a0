package rijndael

import (
	"crypto/cipher"
	"strconv"
)

// KeySizeError is returned by NewCipher for keys that are not KeySize bytes.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "rijndael: invalid key size " + strconv.Itoa(int(k)) + ", want " + strconv.Itoa(KeySize)
}

// Cipher is an AES-128 instance with its key already expanded. It is
// immutable after NewCipher and may be used from several goroutines.
type Cipher struct {
	ks Schedule
}

var _ cipher.Block = (*Cipher)(nil)

// NewCipher validates the key length and expands it.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, KeySizeError(len(key))
	}
	c := &Cipher{}
	c.ks = ExpandKey(Key(key))
	return c, nil
}

// NewCipherFromKey expands a key that is already known to be the right size.
func NewCipherFromKey(key Key) *Cipher {
	return &Cipher{ks: ExpandKey(key)}
}

// BlockSize returns the cipher block size in bytes.
func (c *Cipher) BlockSize() int { return BlockSize }

// Schedule returns a copy of the expanded key.
func (c *Cipher) Schedule() Schedule { return c.ks }

// EncryptBlock encrypts a single block.
func (c *Cipher) EncryptBlock(b Block) Block {
	return EncryptBlock(b, &c.ks)
}

// DecryptBlock decrypts a single block.
func (c *Cipher) DecryptBlock(b Block) Block {
	return DecryptBlock(b, &c.ks)
}

// Encrypt encrypts the first block of src into dst. dst and src may overlap
// entirely.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("rijndael: input not full block")
	}
	if len(dst) < BlockSize {
		panic("rijndael: output not full block")
	}
	out := EncryptBlock(Block(src[:BlockSize]), &c.ks)
	copy(dst, out[:])
}

// Decrypt decrypts the first block of src into dst. dst and src may overlap
// entirely.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("rijndael: input not full block")
	}
	if len(dst) < BlockSize {
		panic("rijndael: output not full block")
	}
	out := DecryptBlock(Block(src[:BlockSize]), &c.ks)
	copy(dst, out[:])
}

// Wipe zeroes the round keys. The Cipher must not be used afterwards.
func (c *Cipher) Wipe() {
	c.ks.Wipe()
}
