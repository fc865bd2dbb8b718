package dms

import (
	"bytes"
	"fmt"
	"os/exec"
)

// VerifyPGPSignature shells out to gpgv to check signature against keyring,
// returning the verified plaintext. gpgv is invoked as an external oracle:
// any non-zero exit (bad signature, unknown key, malformed input) is
// reported as a single VerificationFailure, with gpgv's stderr attached for
// operator diagnosis.
func VerifyPGPSignature(signature []byte, keyringFile string) ([]byte, error) {
	cmd := exec.Command("gpgv", "-q", "--keyring", keyringFile, "--output", "-")
	cmd.Stdin = bytes.NewReader(signature)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("dms: pgp verification failed: %w: %s", err, stderr.String())
	}
	return stdout.Bytes(), nil
}
