package cli

import (
	"fmt"
	"log/slog"

	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// BlockResult is the JSON output of encrypt and decrypt.
type BlockResult struct {
	Operation string               `json:"operation"`
	Input     string               `json:"input"`
	Output    string               `json:"output"`
	Encoding  string               `json:"encoding"`
	Trace     []rijndael.TraceStep `json:"trace,omitempty"`
}

func NewEncryptCommand() *cobra.Command {
	return newBlockCommand("encrypt", rijndael.EncryptBlockTrace)
}

func NewDecryptCommand() *cobra.Command {
	return newBlockCommand("decrypt", rijndael.DecryptBlockTrace)
}

type blockFunc func(rijndael.Block, *rijndael.Schedule) (rijndael.Block, rijndael.Trace)

func newBlockCommand(op string, fn blockFunc) *cobra.Command {
	var (
		keys      keySource
		blockIn   string
		showTrace bool
	)

	noun := "plaintext"
	if op == "decrypt" {
		noun = "ciphertext"
	}

	cmd := &cobra.Command{
		Use:   op + " [block]",
		Short: fmt.Sprintf("%s a single 16-byte block with AES-128", capitalize(op)),
		Long: fmt.Sprintf(`%s exactly one 16-byte %s block with AES-128.

The block is given as 32 hex digits (or base64 with --base64). The key comes
from --key or from a password-protected key file. No mode of operation or
padding is applied: this is the raw block cipher.`, capitalize(op), noun),
		Example: fmt.Sprintf(`  # FIPS-197 Appendix C.1
  rijndael %[1]s --key 000102030405060708090a0b0c0d0e0f 00112233445566778899aabbccddeeff

  # Show every intermediate state
  rijndael %[1]s --key 2b7e151628aed2a6abf7158809cf4f3c 3243f6a8885a308d313198a2e0370734 --trace

  # Use a key file created with 'rijndael keygen'
  rijndael %[1]s --keyfile ~/.rijndael/key.json --block 00112233445566778899aabbccddeeff`, op),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				if blockIn != "" {
					return fmt.Errorf("block given both as argument and --block")
				}
				blockIn = args[0]
			}
			if blockIn == "" {
				return fmt.Errorf("no %s block given", noun)
			}

			enc := outputEncoding(cmd, cm)
			in, err := decodeBlockInput(blockIn, enc)
			if err != nil {
				return err
			}

			key, err := keys.resolve(cm)
			if err != nil {
				return err
			}

			ks := rijndael.ExpandKey(key)
			if cm.GetConfig().Security.WipeMemory {
				defer ks.Wipe()
			}
			out, tr := fn(in, &ks)
			slog.Debug("processed block", "operation", op, "rounds", rijndael.Rounds)

			showTrace = showTrace || cm.GetConfig().Defaults.Trace
			w := cmd.OutOrStdout()

			if wantJSON(cmd) {
				res := BlockResult{
					Operation: op,
					Input:     encodeBytes(in[:], enc),
					Output:    encodeBytes(out[:], enc),
					Encoding:  enc,
				}
				if showTrace {
					res.Trace = tr
				}
				return writeJSON(w, res)
			}

			if showTrace {
				if _, err := tr.WriteTo(w); err != nil {
					return err
				}
				fmt.Fprintln(w)
			}

			if cm.GetConfig().UI.Verbosity == "quiet" {
				fmt.Fprintln(w, encodeBytes(out[:], enc))
				return nil
			}

			green := color.New(color.FgGreen, color.Bold)
			green.Fprintf(w, "%s: ", capitalize(op)+"ed")
			fmt.Fprintln(w, encodeBytes(out[:], enc))
			return nil
		},
	}

	keys.register(cmd)
	cmd.Flags().StringVarP(&blockIn, "block", "b", "", fmt.Sprintf("16-byte %s block", noun))
	cmd.Flags().BoolVar(&showTrace, "trace", false, "Print the state after every transform")
	cmd.Flags().Bool("base64", false, "Read and write blocks as base64 instead of hex")

	return cmd
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
