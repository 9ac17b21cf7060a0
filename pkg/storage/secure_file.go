// Package storage persists AES-128 keys in password-protected key files.
//
// A key file is a JSON document. The password is stretched with
// PBKDF2-SHA256 into a key-encryption key and a MAC key; the stored key is
// exactly one block, so it is wrapped with a single AES block encryption and
// authenticated with HMAC-SHA256 over the file parameters.
package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
	"github.com/Davincible/rijndael/pkg/secure"
	json "github.com/goccy/go-json"
	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltSize          = 32
	DefaultIterations = 100000
	MinIterations     = 1000

	// MaxIterations bounds the work Open does before the MAC is checked,
	// since the count is read from the unauthenticated file.
	MaxIterations = 10_000_000

	formatVersion = 1
	derivedSize   = 2 * rijndael.KeySize
)

var (
	// ErrWrongPassword is returned when the MAC does not verify, which
	// happens for a wrong password or a modified file.
	ErrWrongPassword = errors.New("wrong password or corrupted key file")

	ErrEmptyPassword = errors.New("password cannot be empty")
)

// EncryptedKey is the on-disk representation of a wrapped key.
type EncryptedKey struct {
	Version    int       `json:"version"`
	Iterations int       `json:"iterations"`
	Salt       []byte    `json:"salt"`
	Wrapped    []byte    `json:"wrapped"`
	MAC        []byte    `json:"mac"`
	Created    time.Time `json:"created"`
}

// KeyFile reads and writes one key file.
type KeyFile struct {
	filepath   string
	iterations int
}

func NewKeyFile(filepath string) *KeyFile {
	return &KeyFile{
		filepath:   filepath,
		iterations: DefaultIterations,
	}
}

// WithIterations sets the PBKDF2 iteration count used by Save.
func (f *KeyFile) WithIterations(n int) *KeyFile {
	f.iterations = n
	return f
}

func (f *KeyFile) Path() string {
	return f.filepath
}

// Seal wraps key under password.
func Seal(key rijndael.Key, password []byte, iterations int) (*EncryptedKey, error) {
	if len(password) == 0 {
		return nil, ErrEmptyPassword
	}
	if err := checkIterations(iterations); err != nil {
		return nil, err
	}

	salt, err := secure.RandomBytes(SaltSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	kek, macKey := deriveKeys(password, salt, iterations)
	defer secure.Zero(kek[:])
	defer secure.Zero(macKey)

	ks := rijndael.ExpandKey(kek)
	defer ks.Wipe()
	wrapped := rijndael.EncryptBlock(rijndael.Block(key), &ks)

	ek := &EncryptedKey{
		Version:    formatVersion,
		Iterations: iterations,
		Salt:       salt,
		Wrapped:    wrapped[:],
		Created:    time.Now().UTC().Truncate(time.Second),
	}
	ek.MAC = ek.mac(macKey)

	return ek, nil
}

// Open verifies the MAC and unwraps the key.
func Open(ek *EncryptedKey, password []byte) (rijndael.Key, error) {
	var key rijndael.Key

	if len(password) == 0 {
		return key, ErrEmptyPassword
	}
	if ek.Version != formatVersion {
		return key, fmt.Errorf("unsupported key file version %d", ek.Version)
	}
	if len(ek.Salt) != SaltSize {
		return key, fmt.Errorf("invalid salt length: expected %d, got %d", SaltSize, len(ek.Salt))
	}
	if len(ek.Wrapped) != rijndael.BlockSize {
		return key, fmt.Errorf("invalid wrapped key length: expected %d, got %d", rijndael.BlockSize, len(ek.Wrapped))
	}
	if err := checkIterations(ek.Iterations); err != nil {
		return key, err
	}

	kek, macKey := deriveKeys(password, ek.Salt, ek.Iterations)
	defer secure.Zero(kek[:])
	defer secure.Zero(macKey)

	if !secure.ConstantTimeCompare(ek.mac(macKey), ek.MAC) {
		return key, ErrWrongPassword
	}

	ks := rijndael.ExpandKey(kek)
	defer ks.Wipe()
	key = rijndael.Key(rijndael.DecryptBlock(rijndael.Block(ek.Wrapped), &ks))
	return key, nil
}

func checkIterations(n int) error {
	if n < MinIterations || n > MaxIterations {
		return fmt.Errorf("invalid iteration count %d: must be between %d and %d", n, MinIterations, MaxIterations)
	}
	return nil
}

// Save wraps key and writes it to the key file with 0600 permissions.
func (f *KeyFile) Save(key rijndael.Key, password []byte) error {
	ek, err := Seal(key, password, f.iterations)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(ek, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal key file: %w", err)
	}

	dir := filepath.Dir(f.filepath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(f.filepath, data, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Read parses the key file without decrypting it.
func (f *KeyFile) Read() (*EncryptedKey, error) {
	data, err := os.ReadFile(f.filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var ek EncryptedKey
	if err := json.Unmarshal(data, &ek); err != nil {
		return nil, fmt.Errorf("failed to parse key file: %w", err)
	}

	return &ek, nil
}

// Load reads the key file and unwraps the key.
func (f *KeyFile) Load(password []byte) (rijndael.Key, error) {
	ek, err := f.Read()
	if err != nil {
		return rijndael.Key{}, err
	}
	return Open(ek, password)
}

func (f *KeyFile) Exists() bool {
	_, err := os.Stat(f.filepath)
	return err == nil
}

// Delete overwrites the file with random bytes before removing it.
func (f *KeyFile) Delete() error {
	if !f.Exists() {
		return nil
	}

	info, err := os.Stat(f.filepath)
	if err != nil {
		return fmt.Errorf("failed to stat file for secure deletion: %w", err)
	}

	if info.Size() > 0 {
		noise, err := secure.RandomBytes(int(info.Size()))
		if err != nil {
			return fmt.Errorf("failed to overwrite file: %w", err)
		}
		if err := os.WriteFile(f.filepath, noise, 0600); err != nil {
			return fmt.Errorf("failed to overwrite file: %w", err)
		}
	}

	return os.Remove(f.filepath)
}

func deriveKeys(password, salt []byte, iterations int) (rijndael.Key, []byte) {
	dk := pbkdf2.Key(password, salt, iterations, derivedSize, sha256.New)
	defer secure.Zero(dk)

	kek := rijndael.Key(dk[:rijndael.KeySize])
	macKey := make([]byte, rijndael.KeySize)
	copy(macKey, dk[rijndael.KeySize:])
	return kek, macKey
}

// mac authenticates every field that influences decryption.
func (ek *EncryptedKey) mac(macKey []byte) []byte {
	h := hmac.New(sha256.New, macKey)

	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[:4], uint32(ek.Version))
	// Seal and Open bound Iterations by MaxIterations, which fits in 32 bits.
	binary.BigEndian.PutUint32(hdr[4:], uint32(ek.Iterations))
	h.Write(hdr[:])
	h.Write(ek.Salt)
	h.Write(ek.Wrapped)

	return h.Sum(nil)
}
