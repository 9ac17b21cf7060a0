package cli

import (
	"fmt"

	"github.com/Davincible/rijndael/internal/validation"
	"github.com/Davincible/rijndael/pkg/crypto/gf"
	"github.com/spf13/cobra"
)

// NewGFCommand exposes GF(2^8) arithmetic for checking hand calculations.
func NewGFCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gf",
		Short: "Arithmetic in GF(2^8) modulo x^8+x^4+x^3+x+1",
		Long: `Arithmetic in the AES field GF(2^8). Operands are bytes given as hex
(57, 0x57) or as decimal with a # prefix (#87).`,
	}

	binary := func(use, short string, op func(a, b byte) (byte, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use + " A B",
			Short: short,
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := validation.ParseByte(args[0])
				if err != nil {
					return err
				}
				b, err := validation.ParseByte(args[1])
				if err != nil {
					return err
				}
				r, err := op(a, b)
				if err != nil {
					return err
				}
				return printGF(cmd, r)
			},
		}
	}

	inv := &cobra.Command{
		Use:   "inv A",
		Short: "Multiplicative inverse (0 maps to 0)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := validation.ParseByte(args[0])
			if err != nil {
				return err
			}
			return printGF(cmd, gf.Inverse(a))
		},
	}

	cmd.AddCommand(
		binary("mul", "Multiply two bytes", func(a, b byte) (byte, error) { return gf.Mul(a, b), nil }),
		binary("add", "Add two bytes (XOR)", func(a, b byte) (byte, error) { return gf.Add(a, b), nil }),
		binary("div", "Divide A by B", gf.Div),
		inv,
	)

	return cmd
}

func printGF(cmd *cobra.Command, r byte) error {
	w := cmd.OutOrStdout()
	if wantJSON(cmd) {
		return writeJSON(w, map[string]interface{}{
			"hex":     fmt.Sprintf("%02x", r),
			"decimal": r,
		})
	}
	fmt.Fprintf(w, "%02x\n", r)
	return nil
}
