package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testConfig(t *testing.T) {
	t.Helper()
	t.Setenv("RIJNDAEL_CONFIG", filepath.Join(t.TempDir(), "config.json"))
}

func TestRunSuccess(t *testing.T) {
	testConfig(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"encrypt", "--no-color", "--key", "000102030405060708090a0b0c0d0e0f",
		"00112233445566778899aabbccddeeff"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "69c4e0d86a7b0430d8cdb78070b4c55a")
	assert.Empty(t, stderr.String())
}

func TestRunReportsErrorOnce(t *testing.T) {
	testConfig(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"encrypt", "--key", "0011", "00112233445566778899aabbccddeeff"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	lines := strings.Split(strings.TrimSpace(stderr.String()), "\n")
	assert.Len(t, lines, 1, stderr.String())
	assert.True(t, strings.HasPrefix(lines[0], "Error: invalid key"), lines[0])
	assert.NotContains(t, stderr.String(), `"level"`)
}

func TestRunVerboseAddsStructuredRecord(t *testing.T) {
	testConfig(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"encrypt", "--verbose", "--key", "0011", "00112233445566778899aabbccddeeff"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), `"msg":"Command execution failed"`)
	assert.Equal(t, 1, strings.Count(stderr.String(), "Error: invalid key"))
}
