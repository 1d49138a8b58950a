package project

import (
	"crypto/sha256"
)

// Digest is a fixed 256-bit hash, compatible with source.File.Hash.
type Digest [32]byte

// Combine hashes content followed by each extra digest in order:
// H(content || d1 || d2 ...). Cache keys mix a file hash with the settings
// that change analysis output.
func Combine(content Digest, extra ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range extra {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// HashBytes is sha256 of b as a Digest.
func HashBytes(b []byte) Digest {
	return sha256.Sum256(b)
}
