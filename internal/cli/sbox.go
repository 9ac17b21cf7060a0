package cli

import (
	"fmt"

	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	hex "github.com/tmthrgd/go-hex"
)

func NewSBoxCommand() *cobra.Command {
	var inverse bool

	cmd := &cobra.Command{
		Use:   "sbox",
		Short: "Print the S-box or inverse S-box as a 16x16 table",
		Long: `Print the AES substitution table. Row x, column y holds the
substitution of byte 0xXY, the layout of FIPS-197 Figure 7.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(cmd); err != nil {
				return err
			}

			box := &rijndael.SBox
			if inverse {
				box = &rijndael.InvSBox
			}
			w := cmd.OutOrStdout()

			if wantJSON(cmd) {
				return writeJSON(w, map[string]interface{}{
					"inverse": inverse,
					"table":   hex.EncodeToString(box[:]),
				})
			}

			yellow := color.New(color.FgYellow, color.Bold)
			yellow.Fprint(w, "   |")
			for y := 0; y < 16; y++ {
				yellow.Fprintf(w, "  %x", y)
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "---+------------------------------------------------")
			for x := 0; x < 16; x++ {
				yellow.Fprintf(w, " %x |", x)
				for y := 0; y < 16; y++ {
					fmt.Fprintf(w, " %02x", box[x*16+y])
				}
				fmt.Fprintln(w)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&inverse, "inverse", false, "Print the inverse S-box")

	return cmd
}
