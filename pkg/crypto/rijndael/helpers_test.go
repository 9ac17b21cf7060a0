package rijndael

import (
	"testing"

	"github.com/stretchr/testify/require"
	hex "github.com/tmthrgd/go-hex"
)

func mustHex16(t testing.TB, s string) [16]byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	require.Len(t, b, 16)
	return [16]byte(b)
}
