package cli

import (
	"fmt"

	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	hex "github.com/tmthrgd/go-hex"
)

// ScheduleResult is the JSON output of expand-key.
type ScheduleResult struct {
	Key       string   `json:"key"`
	RoundKeys []string `json:"round_keys"`
	Flat      string   `json:"flat"`
}

func NewExpandKeyCommand() *cobra.Command {
	var (
		keys  keySource
		words bool
	)

	cmd := &cobra.Command{
		Use:   "expand-key",
		Short: "Print the 11 round keys derived from a key",
		Example: `  # FIPS-197 Appendix A.1
  rijndael expand-key --key 2b7e151628aed2a6abf7158809cf4f3c

  # Show the 44 schedule words instead of round keys
  rijndael expand-key --key 2b7e151628aed2a6abf7158809cf4f3c --words`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			key, err := keys.resolve(cm)
			if err != nil {
				return err
			}

			ks := rijndael.ExpandKey(key)
			defer ks.Wipe()
			w := cmd.OutOrStdout()

			if wantJSON(cmd) {
				flat := ks.Bytes()
				res := ScheduleResult{
					Key:       hex.EncodeToString(key[:]),
					RoundKeys: make([]string, len(ks)),
					Flat:      hex.EncodeToString(flat[:]),
				}
				for r := range ks {
					res.RoundKeys[r] = hex.EncodeToString(ks[r][:])
				}
				return writeJSON(w, res)
			}

			cyan := color.New(color.FgCyan, color.Bold)
			if words {
				cyan.Fprintln(w, "Key schedule words:")
				for i, word := range ks.Words() {
					fmt.Fprintf(w, "  w[%2d] = %08x\n", i, word)
				}
				return nil
			}

			cyan.Fprintln(w, "Round keys:")
			for r := range ks {
				fmt.Fprintf(w, "  round %2d: %s\n", r, hex.EncodeToString(ks[r][:]))
			}
			return nil
		},
	}

	keys.register(cmd)
	cmd.Flags().BoolVar(&words, "words", false, "Print schedule words w[0..43]")

	return cmd
}
