package contentid

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Length of the hex prefix kept from the full digest. 16 hex chars (64 bits)
// is plenty at catalog scale; this is a convenience hash, not a security one.
const Length = 16

// New derives a stable identifier from a human-readable name. The same name
// always yields the same id, which gives catalog writes upsert-by-name
// semantics without a separate lookup.
func New(name string) string {
	sum := sha256.Sum256([]byte(name))
	return hex.EncodeToString(sum[:])[:Length]
}

// Normalize trims surrounding whitespace before hashing so that accidental
// padding does not mint a second id for the same name.
func Normalize(name string) string {
	return strings.TrimSpace(name)
}

// FromName is New composed with Normalize.
func FromName(name string) string {
	return New(Normalize(name))
}
