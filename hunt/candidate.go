// =======================
// hunt/candidate.go
// =======================

package hunt

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mrand "math/rand/v2"
)

// Generator produces random candidate strings from a fixed charset.
// A Generator is not safe for concurrent use; give each worker its own.
type Generator struct {
	charset string
	rng     *mrand.Rand
	buf     []byte
}

// NewGenerator returns a generator drawing from charset with its own PCG
// source seeded by (seed, stream).
func NewGenerator(charset string, seed, stream uint64) (*Generator, error) {
	if err := validateCharset(charset); err != nil {
		return nil, err
	}
	return &Generator{
		charset: charset,
		rng:     mrand.New(mrand.NewPCG(seed, stream)),
	}, nil
}

// NewEntropySeed reads a 64-bit seed from the OS entropy source.
func NewEntropySeed() (uint64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("seed generation failed: %w", err)
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

// Charset returns the generator's alphabet.
func (g *Generator) Charset() string { return g.charset }

// Next fills an internal buffer with n random charset bytes and returns it.
// The slice is overwritten by the following call.
func (g *Generator) Next(n int) []byte {
	if cap(g.buf) < n {
		g.buf = make([]byte, n)
	}
	g.buf = g.buf[:n]
	k := len(g.charset)
	for i := range g.buf {
		g.buf[i] = g.charset[g.rng.IntN(k)]
	}
	return g.buf
}

// String returns a fresh candidate of length n.
func (g *Generator) String(n int) string {
	return string(g.Next(n))
}

func validateCharset(charset string) error {
	if len(charset) == 0 {
		return ErrInvalidCharset
	}
	var seen [128]bool
	for i := 0; i < len(charset); i++ {
		c := charset[i]
		if c < 0x21 || c > 0x7e || seen[c] {
			return fmt.Errorf("%w: byte %q at %d", ErrInvalidCharset, c, i)
		}
		seen[c] = true
	}
	return nil
}
