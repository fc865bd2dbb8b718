package cmd

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hashworks/perimetr/internal/config"
	"github.com/hashworks/perimetr/internal/layer"
	"github.com/hashworks/perimetr/internal/vsss"
)

// zero overwrites b with zero bytes. Security: best-effort cleanup of a
// secret held only briefly in a local slice; Go's GC means this is not a
// real guarantee, but it costs nothing. The split command is the only
// caller; the combine command and the server do not zero their buffers.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// validateSplitArgs checks the shares/threshold bounds before any layer
// is allocated, matching cli.rs's "safe unwraps because of required(true)"
// fail-fast order: range checks first, then the threshold-vs-shares
// relationship.
func validateSplitArgs(shares, threshold int) error {
	if shares < 1 || shares > 255 {
		return fmt.Errorf("shares must be between 1 and 255")
	}
	if threshold < 1 || threshold > 255 {
		return fmt.Errorf("threshold must be between 1 and 255")
	}
	if threshold > shares {
		return fmt.Errorf("threshold must be lower than or equal to shares")
	}
	return nil
}

func newSplitCommand() *cobra.Command {
	var shares, threshold int
	var metadataPath string
	var defaultActions bool

	splitCmd := &cobra.Command{
		Use:   "split",
		Short: "Split a secret into shares and store metadata at the metadata-path.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateSplitArgs(shares, threshold); err != nil {
				return err
			}

			l := layer.New(uuid.NewString())

			path := metadataPath
			if info, err := os.Stat(metadataPath); err == nil && info.IsDir() {
				path = filepath.Join(metadataPath, l.UUID+config.DefaultLayerSuffix)
			}

			if threshold > 1 {
				fmt.Println("Please provide a secret with up to 32 bytes on STDIN.")
				fmt.Print("Secret: ")
				secret, err := term.ReadPassword(int(syscall.Stdin))
				fmt.Println()
				if err != nil {
					return fmt.Errorf("failed to read secret: %w", err)
				}
				defer zero(secret)

				trimmed := []byte(strings.TrimSpace(string(secret)))
				shareVals, verifier, err := vsss.Split(trimmed, threshold, shares, rand.Reader)
				zero(trimmed)
				if err != nil {
					return fmt.Errorf("failed to split secret: %w", err)
				}

				fmt.Printf("Shares of \"%s\":\n", l.UUID)
				for _, share := range shareVals {
					fmt.Println(share.Base64())
				}
				fmt.Println()

				l.VSSS = &layer.VSSSMetadata{Threshold: threshold, Verifier: verifier}
			} else {
				fmt.Println("Threshold is 1, no need to split secret.")
			}

			if defaultActions {
				l.Commands = []layer.Command{
					{
						Program: "gpg",
						Args: []string{
							"--decrypt", "--passphrase-fd", "0", "--batch",
							"-o", l.UUID + ".tar.zst",
							l.UUID + ".tar.zst.gpg",
						},
						WorkingDir:  ".",
						SecretStdin: true,
					},
					{
						Program:    "tar",
						Args:       []string{"xf", l.UUID + ".tar.zst"},
						WorkingDir: ".",
					},
					{
						Program:    "rm",
						Args:       []string{l.UUID + ".tar.zst", l.UUID + ".tar.zst.gpg"},
						WorkingDir: ".",
					},
				}
			}

			if err := layer.Write(path, l); err != nil {
				return fmt.Errorf("failed to write metadata: %w", err)
			}

			fmt.Printf("Metadata written to %q.\n", path)
			return nil
		},
	}

	splitCmd.Flags().IntVarP(&shares, "shares", "s", 0, "Number of shares to generate (max: 255)")
	splitCmd.Flags().IntVarP(&threshold, "threshold", "t", 0, "Threshold of shares needed to recover secret (max: 255)")
	splitCmd.Flags().StringVarP(&metadataPath, "metadata-path", "m", "", "Path to metadata file or directory")
	splitCmd.Flags().BoolVarP(&defaultActions, "default-actions", "d", false, "Include default actions in metadata file")
	_ = splitCmd.MarkFlagRequired("shares")
	_ = splitCmd.MarkFlagRequired("threshold")
	_ = splitCmd.MarkFlagRequired("metadata-path")

	return splitCmd
}
