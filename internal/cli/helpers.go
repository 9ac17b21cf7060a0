package cli

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"syscall"

	"github.com/Davincible/rijndael/internal/validation"
	"github.com/Davincible/rijndael/pkg/config"
	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
	"github.com/Davincible/rijndael/pkg/secure"
	"github.com/Davincible/rijndael/pkg/storage"
	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	hex "github.com/tmthrgd/go-hex"
	"golang.org/x/term"
)

// passwordReader is swapped out in tests.
var passwordReader = readPassword

// readPassword reads a password from the terminal without echo, falling
// back to a plain line read when stdin is not a terminal.
func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)

	if term.IsTerminal(int(syscall.Stdin)) {
		pass, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, err
		}
		return pass, nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

// loadConfig reads the config file named by --config, or the default one.
func loadConfig(cmd *cobra.Command) (*config.ConfigManager, error) {
	path, _ := cmd.Flags().GetString("config")

	var (
		cm  *config.ConfigManager
		err error
	)
	if path != "" {
		cm, err = config.NewConfigManagerAt(path)
	} else {
		cm, err = config.NewConfigManager()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if !cm.GetConfig().UI.UseColor {
		color.NoColor = true
	}
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		color.NoColor = true
	}

	slog.Debug("loaded config", "path", cm.Path())
	return cm, nil
}

// keySource holds the two mutually exclusive ways of passing a key.
type keySource struct {
	keyHex  string
	keyFile string
}

func (ks *keySource) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&ks.keyHex, "key", "k", "", "128-bit key as 32 hex digits")
	cmd.Flags().StringVar(&ks.keyFile, "keyfile", "", "Password-protected key file (see 'keygen')")
	cmd.MarkFlagsMutuallyExclusive("key", "keyfile")
}

// resolve returns the key from --key or --keyfile, prompting for the key
// file password when needed.
func (ks *keySource) resolve(cm *config.ConfigManager) (rijndael.Key, error) {
	if ks.keyHex != "" {
		return validation.ParseKey(ks.keyHex)
	}

	path := ks.keyFile
	if path == "" {
		def, err := cm.KeyFilePath()
		if err != nil {
			return rijndael.Key{}, err
		}
		path = def
	}

	kf := storage.NewKeyFile(path)
	if !kf.Exists() {
		return rijndael.Key{}, fmt.Errorf("no key given: use --key or --keyfile (%s does not exist)", path)
	}

	pass, err := passwordReader("Key file password: ")
	if err != nil {
		return rijndael.Key{}, fmt.Errorf("failed to read password: %w", err)
	}
	defer secure.Zero(pass)

	key, err := kf.Load(pass)
	if err != nil {
		return rijndael.Key{}, fmt.Errorf("failed to load key file: %w", err)
	}
	slog.Debug("loaded key file", "path", path)
	return key, nil
}

func encodeBytes(b []byte, encoding string) string {
	if encoding == config.EncodingBase64 {
		return base64.StdEncoding.EncodeToString(b)
	}
	return hex.EncodeToString(b)
}

// decodeBlockInput accepts a block in hex, or in base64 when encoding says so.
func decodeBlockInput(input, encoding string) (rijndael.Block, error) {
	if encoding == config.EncodingBase64 {
		data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(input))
		if err != nil {
			return rijndael.Block{}, fmt.Errorf("invalid block: failed to decode base64: %w", err)
		}
		if len(data) != rijndael.BlockSize {
			return rijndael.Block{}, fmt.Errorf("invalid block: expected %d bytes, got %d", rijndael.BlockSize, len(data))
		}
		return rijndael.Block(data), nil
	}
	return validation.ParseBlock(input)
}

func outputEncoding(cmd *cobra.Command, cm *config.ConfigManager) string {
	if cmd.Flags().Changed("base64") {
		if b, _ := cmd.Flags().GetBool("base64"); b {
			return config.EncodingBase64
		}
		return config.EncodingHex
	}
	return cm.GetConfig().Defaults.Encoding
}

func wantJSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// writeState prints a state as a 4x4 matrix, one row per line.
func writeState(w io.Writer, indent string, s *rijndael.State) {
	for r := 0; r < 4; r++ {
		row := s.Row(r)
		fmt.Fprintf(w, "%s%02x %02x %02x %02x\n", indent, row[0], row[1], row[2], row[3])
	}
}
