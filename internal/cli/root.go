package cli

import "github.com/spf13/cobra"

// NewRootCommand assembles the command tree.
func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rijndael",
		Short: "AES-128 block cipher toolkit",
		Long: `Rijndael implements the AES-128 block cipher (FIPS-197) from its
building blocks and lets you inspect every one of them.

Features:
- Single-block encryption and decryption
- Round-by-round traces in the FIPS-197 appendix layout
- Key schedule, S-box and GF(2^8) inspection
- Individual round transforms for checking against other implementations
- Password-protected key files
- Self-test against known answers and the Go standard library

Modes of operation and padding are deliberately not provided.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		NewEncryptCommand(),
		NewDecryptCommand(),
		NewExpandKeyCommand(),
		NewSBoxCommand(),
		NewTransformCommand(),
		NewGFCommand(),
		NewKeygenCommand(),
		NewKeyshowCommand(),
		NewSelfTestCommand(),
	)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default $RIJNDAEL_CONFIG or ~/.config/rijndael/config.json)")

	return rootCmd
}
