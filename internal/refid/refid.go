// Package refid generates and validates Maileroo reference ids: 24 lowercase
// hexadecimal characters encoding 96 random bits.
package refid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/crypto/chacha20"

	"github.com/maileroo/maileroo-go-sdk/internal/apierrors"
)

const (
	// ByteLength is the number of random bytes behind a reference id.
	ByteLength = 12
	// Length is the number of hex characters in a reference id.
	Length = ByteLength * 2
	// SeedSize is the seed length accepted by NewSeededReader.
	SeedSize = chacha20.KeySize
)

var pattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// Generator draws reference ids from a randomness source. Reads are
// serialized, so a Generator is safe for concurrent use with any source.
type Generator struct {
	mu  sync.Mutex
	src io.Reader
}

// New returns a Generator reading from src, or from crypto/rand when src is nil.
func New(src io.Reader) *Generator {
	if src == nil {
		src = rand.Reader
	}
	return &Generator{src: src}
}

// Generate returns a fresh reference id.
func (g *Generator) Generate() (string, error) {
	var buf [ByteLength]byte
	g.mu.Lock()
	_, err := io.ReadFull(g.src, buf[:])
	g.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(buf[:]), nil
}

// Validate checks a caller-supplied reference id and returns it lowercased.
func Validate(field, id string) (string, error) {
	if id != strings.TrimSpace(id) {
		return "", apierrors.Invalid(field, "reference id must not contain leading or trailing whitespace")
	}
	if !pattern.MatchString(id) {
		return "", apierrors.Invalid(field, "reference id must be exactly %d hexadecimal characters", Length)
	}
	return strings.ToLower(id), nil
}

// NewSeededReader returns a deterministic ChaCha20 keystream reader for seed,
// which must be SeedSize bytes. Identical seeds produce identical id sequences.
func NewSeededReader(seed []byte) (io.Reader, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	nonce := make([]byte, chacha20.NonceSize)
	cipher, err := chacha20.NewUnauthenticatedCipher(seed, nonce)
	if err != nil {
		return nil, fmt.Errorf("init chacha20: %w", err)
	}
	return &keystream{cipher: cipher}, nil
}

type keystream struct {
	cipher *chacha20.Cipher
}

func (k *keystream) Read(p []byte) (int, error) {
	clear(p)
	k.cipher.XORKeyStream(p, p)
	return len(p), nil
}
