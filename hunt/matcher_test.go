package hunt_test

import (
	"crypto/md5"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hashhunt/hunt"
)

func TestMatcher_Hex(t *testing.T) {
	sum := md5.Sum([]byte("hello")) // 5d41402abc4b2a76b9719d911017c592
	hx := []byte(hex.EncodeToString(sum[:]))

	cases := []struct {
		pattern string
		want    bool
	}{
		{"5d41", true},
		{"ABC4B", true}, // lowercased once at construction
		{"c592", true},
		{"ffff", false},
		{"'='", false},
	}
	for _, tc := range cases {
		m, err := hunt.NewMatcher(tc.pattern, hunt.MatchHex)
		require.NoError(t, err)
		assert.Equalf(t, tc.want, m.Match(sum[:], hx), "pattern %q", tc.pattern)
	}
}

func TestMatcher_Raw(t *testing.T) {
	sum := md5.Sum([]byte("hello"))
	hx := []byte(hex.EncodeToString(sum[:]))

	// bytes 0x40 0x2a
	m, err := hunt.NewMatcher("@*", hunt.MatchRaw)
	require.NoError(t, err)
	assert.True(t, m.Match(sum[:], hx))

	// the hex text is ignored in raw mode
	m, err = hunt.NewMatcher("5d41", hunt.MatchRaw)
	require.NoError(t, err)
	assert.False(t, m.Match(sum[:], hx))
}

func TestMatcher_Satisfiable(t *testing.T) {
	cases := []struct {
		pattern string
		mode    hunt.Mode
		alg     hunt.Algorithm
		want    bool
	}{
		{"'='", hunt.MatchHex, hunt.MD5, false},
		{"beef", hunt.MatchHex, hunt.MD5, true},
		{"BEEF", hunt.MatchHex, hunt.MD5, true},
		{"0123456789abcdef0123456789abcdef0", hunt.MatchHex, hunt.MD5, false},
		{"0123456789abcdef0123456789abcdef0", hunt.MatchHex, hunt.SHA256, true},
		{"'='", hunt.MatchRaw, hunt.MD5, true},
		{"0123456789abcdefg", hunt.MatchRaw, hunt.MD5, false},
	}
	for _, tc := range cases {
		m, err := hunt.NewMatcher(tc.pattern, tc.mode)
		require.NoError(t, err)
		assert.Equalf(t, tc.want, m.Satisfiable(tc.alg), "%q %s %s", tc.pattern, tc.mode, tc.alg)
	}
}

func TestNewMatcher_Errors(t *testing.T) {
	_, err := hunt.NewMatcher("", hunt.MatchHex)
	assert.ErrorIs(t, err, hunt.ErrEmptyPattern)

	_, err = hunt.NewMatcher("ab", hunt.Mode("regex"))
	assert.ErrorIs(t, err, hunt.ErrUnknownMode)

	m, err := hunt.ParseMode("RAW")
	require.NoError(t, err)
	assert.Equal(t, hunt.MatchRaw, m)
}

func TestNewMatcher_NormalisesMode(t *testing.T) {
	m, err := hunt.NewMatcher("AB", hunt.Mode(" Hex "))
	require.NoError(t, err)
	assert.Equal(t, hunt.MatchHex, m.Mode())
	assert.Equal(t, "ab", m.Pattern())
}
