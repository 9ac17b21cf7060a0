package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
	hex "github.com/tmthrgd/go-hex"
)

var hexPattern = regexp.MustCompile(`^[0-9a-fA-F]+$`)

func ValidateHex(input string) error {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return fmt.Errorf("hex string cannot be empty")
	}

	if len(input)%2 != 0 {
		return fmt.Errorf("hex string must have even length")
	}

	if !hexPattern.MatchString(input) {
		return fmt.Errorf("invalid hex characters")
	}

	return nil
}

// NormalizeHex strips whitespace, an optional 0x prefix and the separators
// commonly found in copied test vectors.
func NormalizeHex(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(strings.TrimPrefix(input, "0x"), "0X")
	return strings.NewReplacer(" ", "", ":", "", "-", "", "\t", "", "\n", "").Replace(input)
}

// DecodeFixed decodes a hex string that must be exactly size bytes.
func DecodeFixed(input string, size int) ([]byte, error) {
	input = NormalizeHex(input)
	if err := ValidateHex(input); err != nil {
		return nil, err
	}

	data, err := hex.DecodeString(input)
	if err != nil {
		return nil, fmt.Errorf("failed to decode hex: %w", err)
	}

	if len(data) != size {
		return nil, fmt.Errorf("expected %d bytes, got %d", size, len(data))
	}

	return data, nil
}

func ParseKey(input string) (rijndael.Key, error) {
	data, err := DecodeFixed(input, rijndael.KeySize)
	if err != nil {
		return rijndael.Key{}, fmt.Errorf("invalid key: %w", err)
	}
	return rijndael.Key(data), nil
}

func ParseBlock(input string) (rijndael.Block, error) {
	data, err := DecodeFixed(input, rijndael.BlockSize)
	if err != nil {
		return rijndael.Block{}, fmt.Errorf("invalid block: %w", err)
	}
	return rijndael.Block(data), nil
}

// ParseByte accepts a field element as two hex digits (with or without 0x)
// or as a decimal number prefixed with '#', e.g. "#14".
func ParseByte(input string) (byte, error) {
	input = strings.TrimSpace(input)
	if strings.HasPrefix(input, "#") {
		v, err := strconv.ParseUint(input[1:], 10, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid decimal byte %q: %w", input, err)
		}
		return byte(v), nil
	}

	input = NormalizeHex(input)
	if len(input) == 1 {
		input = "0" + input
	}
	data, err := DecodeFixed(input, 1)
	if err != nil {
		return 0, fmt.Errorf("invalid byte %q: %w", input, err)
	}
	return data[0], nil
}

func ValidatePassword(password []byte, minLength int) error {
	if len(password) == 0 {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < minLength {
		return fmt.Errorf("password must be at least %d characters", minLength)
	}

	if len(password) > 1024 {
		return fmt.Errorf("password too long (max 1024 bytes)")
	}

	for i, ch := range password {
		if ch == 0 {
			return fmt.Errorf("password contains null character at position %d", i)
		}
	}

	return nil
}
