package cli

import (
	"fmt"
	"log/slog"

	"github.com/Davincible/rijndael/internal/validation"
	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
	"github.com/Davincible/rijndael/pkg/secure"
	"github.com/Davincible/rijndael/pkg/storage"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	hex "github.com/tmthrgd/go-hex"
)

func NewKeygenCommand() *cobra.Command {
	var (
		output  string
		keyHex  string
		force   bool
		showKey bool
	)

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Create a password-protected AES-128 key file",
		Long: `Generate a random 128-bit key (or import one with --key) and store it
in a key file protected by a password.

The password is stretched with PBKDF2-SHA256; the key is wrapped with one
AES block encryption and authenticated with HMAC-SHA256.`,
		Example: `  # New random key in the default location
  rijndael keygen

  # Import the FIPS-197 example key
  rijndael keygen --key 000102030405060708090a0b0c0d0e0f --out test-key.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cfg := cm.GetConfig()

			if output == "" {
				output, err = cm.KeyFilePath()
				if err != nil {
					return err
				}
			}

			kf := storage.NewKeyFile(output).WithIterations(cfg.Security.KDFIterations)
			if kf.Exists() && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", output)
			}

			var key rijndael.Key
			if keyHex != "" {
				key, err = validation.ParseKey(keyHex)
			} else {
				key, err = secure.RandomKey()
			}
			if err != nil {
				return err
			}
			defer secure.Zero(key[:])

			pass, err := passwordReader("New key file password: ")
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			defer secure.Zero(pass)

			if err := validation.ValidatePassword(pass, cfg.Security.MinPasswordLength); err != nil {
				return err
			}

			confirm, err := passwordReader("Confirm password: ")
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			defer secure.Zero(confirm)

			if !secure.ConstantTimeCompare(pass, confirm) {
				return fmt.Errorf("passwords do not match")
			}

			if err := kf.Save(key, pass); err != nil {
				return fmt.Errorf("failed to save key file: %w", err)
			}
			slog.Debug("saved key file", "path", output, "iterations", cfg.Security.KDFIterations)

			w := cmd.OutOrStdout()
			if wantJSON(cmd) {
				res := map[string]interface{}{"path": output}
				if showKey {
					res["key"] = hex.EncodeToString(key[:])
				}
				return writeJSON(w, res)
			}

			green := color.New(color.FgGreen, color.Bold)
			green.Fprintf(w, "✅ Key saved to: %s\n", output)
			if showKey {
				red := color.New(color.FgRed, color.Bold)
				red.Fprint(w, "⚠️  Key: ")
				fmt.Fprintln(w, hex.EncodeToString(key[:]))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "out", "o", "", "Key file to write (default from config)")
	cmd.Flags().StringVarP(&keyHex, "key", "k", "", "Import this key instead of generating one")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing key file")
	cmd.Flags().BoolVar(&showKey, "show-key", false, "Print the key after saving")

	return cmd
}

func NewKeyshowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keyshow FILE",
		Short: "Decrypt a key file and print the key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(cmd); err != nil {
				return err
			}

			kf := storage.NewKeyFile(args[0])
			ek, err := kf.Read()
			if err != nil {
				return err
			}

			pass, err := passwordReader("Key file password: ")
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			defer secure.Zero(pass)

			key, err := storage.Open(ek, pass)
			if err != nil {
				return err
			}
			defer secure.Zero(key[:])

			w := cmd.OutOrStdout()
			if wantJSON(cmd) {
				return writeJSON(w, map[string]interface{}{
					"path":       args[0],
					"key":        hex.EncodeToString(key[:]),
					"iterations": ek.Iterations,
					"created":    ek.Created,
				})
			}

			yellow := color.New(color.FgYellow)
			yellow.Fprintf(w, "Created:    %s\n", ek.Created.Format("2006-01-02 15:04:05"))
			yellow.Fprintf(w, "Iterations: %d\n", ek.Iterations)
			fmt.Fprintln(w, hex.EncodeToString(key[:]))
			return nil
		},
	}

	return cmd
}
