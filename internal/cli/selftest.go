package cli

import (
	"crypto/aes"
	"fmt"
	"log/slog"
	"math"
	"math/bits"

	"github.com/Davincible/rijndael/internal/validation"
	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
	"github.com/Davincible/rijndael/pkg/secure"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// CheckResult is the outcome of one self-test check.
type CheckResult struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`

	// Informational results are reported without a verdict.
	Informational bool `json:"informational,omitempty"`
}

const (
	// avalancheMinBlocks is the sample size below which the avalanche
	// mean is too noisy to judge.
	avalancheMinBlocks = 32

	// One block flips Binomial(128, 1/2) bits: mean 64, deviation sqrt(32).
	avalancheMean   = 64.0
	avalancheSigmas = 8.0
)

// avalancheCheck judges the mean number of flipped output bits over n
// single-bit input changes. The accepted band narrows as 1/sqrt(n).
func avalancheCheck(flipped, n int) CheckResult {
	mean := float64(flipped) / float64(n)
	r := CheckResult{
		Name:   "avalanche",
		Passed: true,
		Detail: fmt.Sprintf("%.1f of 128 output bits flip on average", mean),
	}
	if n < avalancheMinBlocks {
		r.Informational = true
		r.Detail += fmt.Sprintf(", not judged below %d blocks", avalancheMinBlocks)
		return r
	}

	tolerance := avalancheSigmas * math.Sqrt(32) / math.Sqrt(float64(n))
	r.Passed = math.Abs(mean-avalancheMean) < tolerance
	if !r.Passed {
		r.Detail += fmt.Sprintf(", expected 64 ± %.1f", tolerance)
	}
	return r
}

var selfTestVectors = []struct {
	name, key, pt, ct string
}{
	{"FIPS-197 C.1", "000102030405060708090a0b0c0d0e0f", "00112233445566778899aabbccddeeff", "69c4e0d86a7b0430d8cdb78070b4c55a"},
	{"FIPS-197 B", "2b7e151628aed2a6abf7158809cf4f3c", "3243f6a8885a308d313198a2e0370734", "3925841d02dc09fbdc118597196a0b32"},
}

// runSelfTest checks the cipher against known answers and, for n random
// keys and blocks, against crypto/aes.
func runSelfTest(n int) ([]CheckResult, error) {
	var results []CheckResult

	for _, v := range selfTestVectors {
		key, err := validation.ParseKey(v.key)
		if err != nil {
			return nil, err
		}
		pt, err := validation.ParseBlock(v.pt)
		if err != nil {
			return nil, err
		}
		ct, err := validation.ParseBlock(v.ct)
		if err != nil {
			return nil, err
		}

		got := rijndael.Encrypt(pt, key)
		back := rijndael.Decrypt(ct, key)
		r := CheckResult{Name: "known answer " + v.name, Passed: got == ct && back == pt}
		if !r.Passed {
			r.Detail = fmt.Sprintf("encrypt gave %x, decrypt gave %x", got, back)
		}
		results = append(results, r)
	}

	sboxOK := true
	for b := 0; b < 256; b++ {
		if rijndael.InvSBox[rijndael.SBox[b]] != byte(b) {
			sboxOK = false
			break
		}
	}
	results = append(results, CheckResult{Name: "S-box bijection", Passed: sboxOK})

	roundTrip := CheckResult{Name: fmt.Sprintf("round trip (%d blocks)", n), Passed: true}
	oracle := CheckResult{Name: fmt.Sprintf("crypto/aes agreement (%d blocks)", n), Passed: true}
	flipped := 0

	for i := 0; i < n; i++ {
		key, err := secure.RandomKey()
		if err != nil {
			return nil, err
		}
		raw, err := secure.RandomBytes(rijndael.BlockSize)
		if err != nil {
			return nil, err
		}
		pt := rijndael.Block(raw)

		c := rijndael.NewCipherFromKey(key)
		ct := c.EncryptBlock(pt)
		if c.DecryptBlock(ct) != pt && roundTrip.Passed {
			roundTrip.Passed = false
			roundTrip.Detail = fmt.Sprintf("key %x block %x", key, pt)
		}

		std, err := aes.NewCipher(key[:])
		if err != nil {
			return nil, err
		}
		var want rijndael.Block
		std.Encrypt(want[:], pt[:])
		if want != ct && oracle.Passed {
			oracle.Passed = false
			oracle.Detail = fmt.Sprintf("key %x block %x: got %x want %x", key, pt, ct, want)
		}

		bit := i % 128
		q := pt
		q[bit/8] ^= 1 << (bit % 8)
		ct2 := c.EncryptBlock(q)
		for j := range ct {
			flipped += bits.OnesCount8(ct[j] ^ ct2[j])
		}
		c.Wipe()
	}
	results = append(results, roundTrip, oracle)

	if n > 0 {
		results = append(results, avalancheCheck(flipped, n))
	}

	return results, nil
}

func NewSelfTestCommand() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Check the cipher against known answers and crypto/aes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(cmd); err != nil {
				return err
			}
			if count < 0 {
				return fmt.Errorf("count must not be negative, got %d", count)
			}

			results, err := runSelfTest(count)
			if err != nil {
				return fmt.Errorf("self-test could not run: %w", err)
			}

			failed := 0
			for _, r := range results {
				if !r.Passed {
					failed++
					slog.Warn("self-test check failed", "check", r.Name, "detail", r.Detail)
				}
			}

			w := cmd.OutOrStdout()
			if wantJSON(cmd) {
				if err := writeJSON(w, map[string]interface{}{
					"checks": results,
					"failed": failed,
				}); err != nil {
					return err
				}
			} else {
				green := color.New(color.FgGreen, color.Bold)
				red := color.New(color.FgRed, color.Bold)
				for _, r := range results {
					if r.Informational {
						fmt.Fprint(w, "· ")
					} else if r.Passed {
						green.Fprint(w, "✓ ")
					} else {
						red.Fprint(w, "✗ ")
					}
					fmt.Fprint(w, r.Name)
					if r.Detail != "" {
						fmt.Fprintf(w, " (%s)", r.Detail)
					}
					fmt.Fprintln(w)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d self-test check(s) failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1000, "Number of random blocks to check")

	return cmd
}
