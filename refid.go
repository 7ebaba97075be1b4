package maileroo

import (
	"io"

	"github.com/maileroo/maileroo-go-sdk/internal/refid"
)

// ReferenceIDLength is the number of hex characters in a reference id.
const ReferenceIDLength = refid.Length

var defaultIDs = refid.New(nil)

// GenerateReferenceID returns a new reference id: 24 lowercase hex
// characters drawn from 96 bits of crypto/rand output.
func GenerateReferenceID() (string, error) {
	return defaultIDs.Generate()
}

// ValidateReferenceID checks a caller-supplied reference id and returns its
// lowercase form. Surrounding whitespace is rejected, not trimmed.
func ValidateReferenceID(id string) (string, error) {
	return refid.Validate("reference_id", id)
}

// NewSeededRandomSource returns a deterministic randomness source for
// WithRandomSource. The seed must be 32 bytes. Two clients given equal seeds
// generate the same reference id sequence.
func NewSeededRandomSource(seed []byte) (io.Reader, error) {
	return refid.NewSeededReader(seed)
}
