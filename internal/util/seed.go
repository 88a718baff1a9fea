package util

import (
	"fmt"
	"hash/fnv"
	"math/big"

	"github.com/google/uuid"
)

// DeriveSeed derives a per-texture seed from a pack seed and a texture name.
// The same (base, name) pair always yields the same seed.
func DeriveSeed(base int64, name string) int64 {
	h := fnv.New64a()
	_, _ = fmt.Fprintf(h, "%d_texture_%s", base, name) // hash.Write never returns an error
	return int64(h.Sum64())
}

// SeedFromString hashes an arbitrary string into a seed, used when no seed is
// configured so the same output directory always produces the same pack.
func SeedFromString(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}

// DeterministicUID returns a DICOM UID under the 2.25 root built from a
// name-based (SHA-1) UUID of key. The result is at most 44 characters.
func DeterministicUID(key string) string {
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
	n := new(big.Int).SetBytes(id[:])
	return "2.25." + n.String()
}
