package cmd

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hashworks/perimetr/internal/layer"
	"github.com/hashworks/perimetr/internal/vsss"
)

// readAndVerifyShares interactively prompts for threshold shares, one at a
// time, verifying each against verifier before accepting it. It aborts on
// the first invalid share rather than collecting all of them.
func readAndVerifyShares(verifier vsss.FeldmanVerifier, threshold int) ([]vsss.Share, error) {
	out := make([]vsss.Share, 0, threshold)
	for i := 0; i < threshold; i++ {
		fmt.Printf("Please provide share %d of %d: ", i+1, threshold)
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return nil, fmt.Errorf("failed to read share: %w", err)
		}

		share, err := vsss.ShareFromBase64(strings.TrimSpace(string(raw)))
		if err != nil {
			return nil, fmt.Errorf("malformed share: %w", err)
		}
		if !verifier.Verify(share) {
			return nil, fmt.Errorf("invalid share")
		}
		out = append(out, share)
	}
	return out, nil
}

func newCombineCommand() *cobra.Command {
	var metadataFile string

	combineCmd := &cobra.Command{
		Use:   "combine",
		Short: "Combine shares into a secret with the provided metadata-file",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := layer.Read(metadataFile)
			if err != nil {
				return fmt.Errorf("failed to read metadata: %w", err)
			}

			if l.VSSS == nil {
				return fmt.Errorf("no VSSS metadata found in %s", metadataFile)
			}

			shareVals, err := readAndVerifyShares(l.VSSS.Verifier, l.VSSS.Threshold)
			if err != nil {
				return err
			}

			secret, err := vsss.Combine(shareVals, l.VSSS.Threshold)
			if err != nil {
				return fmt.Errorf("failed to combine shares: %w", err)
			}

			secretStr, err := vsss.ScalarToSecretBytes(secret)
			if err != nil {
				return fmt.Errorf("failed to combine shares: %w", err)
			}

			fmt.Printf("Secret: %s\n", secretStr)
			return nil
		},
	}

	combineCmd.Flags().StringVarP(&metadataFile, "metadata-file", "m", "", "Path to metadata file")
	_ = combineCmd.MarkFlagRequired("metadata-file")

	return combineCmd
}
