// Package vsss implements Feldman Verifiable Secret Sharing over the
// BLS12-381 scalar field with commitments in G1. A secret of up to 32
// bytes is split into N shares of which any T reconstruct the original;
// each share can be verified against a public commitment sequence without
// revealing the secret.
package vsss
