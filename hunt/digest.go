// =======================
// hunt/digest.go
// =======================

package hunt

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"
)

// Algorithm names a supported one-way hash function.
type Algorithm string

const (
	MD5    Algorithm = "md5"
	SHA1   Algorithm = "sha1"
	SHA256 Algorithm = "sha256"
	SHA384 Algorithm = "sha384"
	SHA512 Algorithm = "sha512"
)

// Algorithms lists every supported algorithm in a stable order.
var Algorithms = []Algorithm{MD5, SHA1, SHA256, SHA384, SHA512}

// ParseAlgorithm resolves a case-insensitive algorithm name.
func ParseAlgorithm(name string) (Algorithm, error) {
	a := Algorithm(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Algorithms {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Size returns the digest length in bytes, or 0 for an unknown algorithm.
func (a Algorithm) Size() int {
	switch a {
	case MD5:
		return md5.Size
	case SHA1:
		return sha1.Size
	case SHA256:
		return sha256.Size
	case SHA384:
		return sha512.Size384
	case SHA512:
		return sha512.Size
	}
	return 0
}

// HexLen returns the length of the digest's hex rendering.
func (a Algorithm) HexLen() int { return hex.EncodedLen(a.Size()) }

func (a Algorithm) newHash() (hash.Hash, error) {
	switch a {
	case MD5:
		return md5.New(), nil
	case SHA1:
		return sha1.New(), nil
	case SHA256:
		return sha256.New(), nil
	case SHA384:
		return sha512.New384(), nil
	case SHA512:
		return sha512.New(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(a))
}

// Digester computes digests into buffers sized by the algorithm.
// Not safe for concurrent use.
type Digester struct {
	alg Algorithm
	h   hash.Hash
	sum []byte
	hex []byte
}

// NewDigester returns a Digester for alg, or ErrUnknownAlgorithm.
func NewDigester(alg Algorithm) (*Digester, error) {
	h, err := alg.newHash()
	if err != nil {
		return nil, err
	}
	return &Digester{
		alg: alg,
		h:   h,
		sum: make([]byte, 0, h.Size()),
		hex: make([]byte, hex.EncodedLen(h.Size())),
	}, nil
}

// Algorithm returns the hash the digester computes.
func (d *Digester) Algorithm() Algorithm { return d.alg }

// Sum hashes data. The returned slice is reused by the next call.
func (d *Digester) Sum(data []byte) []byte {
	d.h.Reset()
	d.h.Write(data)
	d.sum = d.h.Sum(d.sum[:0])
	return d.sum
}

// Hex renders digest as lowercase hex into a reused buffer.
func (d *Digester) Hex(digest []byte) []byte {
	hex.Encode(d.hex, digest)
	return d.hex
}

// SumHex is a convenience for one-off hashing.
func SumHex(alg Algorithm, data []byte) (string, error) {
	d, err := NewDigester(alg)
	if err != nil {
		return "", err
	}
	return string(d.Hex(d.Sum(data))), nil
}
