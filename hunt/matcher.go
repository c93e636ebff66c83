// =======================
// hunt/matcher.go
// =======================

package hunt

import (
	"bytes"
	"fmt"
	"strings"
)

// Mode selects what a pattern is matched against.
type Mode string

const (
	// MatchHex matches against the lowercase hex rendering of the digest.
	MatchHex Mode = "hex"
	// MatchRaw matches against the raw digest bytes.
	MatchRaw Mode = "raw"
)

// ParseMode resolves a case-insensitive mode name.
func ParseMode(name string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(name))); m {
	case MatchHex, MatchRaw:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// Matcher tests digests for a lowercased pattern.
type Matcher struct {
	pattern []byte
	mode    Mode
}

// NewMatcher lowercases pattern once and validates mode.
func NewMatcher(pattern string, mode Mode) (*Matcher, error) {
	if pattern == "" {
		return nil, ErrEmptyPattern
	}
	mode, err := ParseMode(string(mode))
	if err != nil {
		return nil, err
	}
	return &Matcher{pattern: []byte(strings.ToLower(pattern)), mode: mode}, nil
}

// Pattern returns the lowercased pattern.
func (m *Matcher) Pattern() string { return string(m.pattern) }

// Mode returns what the pattern is matched against.
func (m *Matcher) Mode() Mode { return m.mode }

// Match reports whether the pattern occurs in the digest. hexText must be
// the hex rendering of raw; it is only read in hex mode.
func (m *Matcher) Match(raw, hexText []byte) bool {
	if m.mode == MatchRaw {
		return bytes.Contains(raw, m.pattern)
	}
	return bytes.Contains(hexText, m.pattern)
}

// Satisfiable reports whether the pattern could ever match a digest of alg.
func (m *Matcher) Satisfiable(alg Algorithm) bool {
	if m.mode == MatchRaw {
		return len(m.pattern) <= alg.Size()
	}
	if len(m.pattern) > alg.HexLen() {
		return false
	}
	for _, c := range m.pattern {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return false
		}
	}
	return true
}
