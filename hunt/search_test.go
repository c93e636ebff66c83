package hunt_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"hashhunt/hunt"
)

// SearchSuite exercises Searcher.Run in serial and parallel modes.
type SearchSuite struct {
	suite.Suite
	workers int
}

func TestSearchSerial(t *testing.T)   { suite.Run(t, &SearchSuite{workers: 1}) }
func TestSearchParallel(t *testing.T) { suite.Run(t, &SearchSuite{workers: 4}) }

func (s *SearchSuite) options() hunt.Options {
	opts := hunt.DefaultOptions()
	opts.Seed = 1234
	opts.Workers = s.workers
	opts.ChunkSize = 16
	return opts
}

func (s *SearchSuite) run(opts hunt.Options, limit uint64) (*hunt.Collector, hunt.Summary) {
	sr, err := hunt.NewSearcher(opts)
	require.NoError(s.T(), err)
	var c hunt.Collector
	sum, err := sr.Run(context.Background(), limit, &c)
	require.NoError(s.T(), err)
	return &c, sum
}

// TestZeroLimit verifies a zero bound terminates immediately with no events.
func (s *SearchSuite) TestZeroLimit() {
	opts := s.options()
	opts.Pattern = "0"
	c, sum := s.run(opts, 0)
	require.Empty(s.T(), c.Found)
	require.Empty(s.T(), c.Markers)
	require.Zero(s.T(), sum.Iterations)
}

// TestUnmatchablePattern uses a non-hex pattern against hex digests.
func (s *SearchSuite) TestUnmatchablePattern() {
	c, sum := s.run(s.options(), 100)
	require.Empty(s.T(), c.Found)
	require.Equal(s.T(), uint64(100), sum.Iterations)
	require.Zero(s.T(), sum.Matches)
}

// TestMatchesAreGenuine checks every reported match really contains the
// pattern and that the loop never stops early.
func (s *SearchSuite) TestMatchesAreGenuine() {
	opts := s.options()
	opts.Pattern = "AB" // lowercased to "ab"
	c, sum := s.run(opts, 2000)

	require.Equal(s.T(), uint64(2000), sum.Iterations)
	require.NotEmpty(s.T(), c.Found)
	require.Equal(s.T(), uint64(len(c.Found)), sum.Matches)

	seen := map[uint64]bool{}
	for _, m := range c.Found {
		require.Len(s.T(), m.Candidate, opts.Length)
		require.Contains(s.T(), m.Digest, "ab")
		want, err := hunt.SumHex(hunt.MD5, []byte(m.Candidate))
		require.NoError(s.T(), err)
		require.Equal(s.T(), want, m.Digest)
		require.True(s.T(), m.Iteration >= 1 && m.Iteration <= 2000)
		require.False(s.T(), seen[m.Iteration], "iteration reported twice")
		seen[m.Iteration] = true
	}
}

// TestProgressMarkers verifies one marker per interval, increasing from 1.
func (s *SearchSuite) TestProgressMarkers() {
	opts := s.options()
	opts.ProgressEvery = 100
	c, _ := s.run(opts, 1050)

	require.Len(s.T(), c.Markers, 10)
	for i, p := range c.Markers {
		require.Equal(s.T(), uint64(i+1), p.Marker)
		require.Equal(s.T(), uint64(i+1)*100, p.Iterations)
	}
}

// TestMarkersInterleaveWithMatches uses a one-letter charset so every
// candidate is "a" and every digest matches. Each marker must then follow
// exactly ProgressEvery matches.
func (s *SearchSuite) TestMarkersInterleaveWithMatches() {
	opts := s.options()
	opts.Charset = "a"
	opts.Length = 1
	opts.Pattern = "0cc1" // md5("a") = 0cc175b9c0f1b6a831c399e269772661
	opts.ProgressEvery = 100
	sr, err := hunt.NewSearcher(opts)
	require.NoError(s.T(), err)

	var ev eventLog
	sum, err := sr.Run(context.Background(), 1000, &ev)
	require.NoError(s.T(), err)
	require.Equal(s.T(), uint64(1000), sum.Matches)

	want := strings.Repeat(strings.Repeat("m", 100)+"P", 10)
	require.Equal(s.T(), want, ev.String())
}

func (s *SearchSuite) TestRawMode() {
	opts := s.options()
	opts.Mode = hunt.MatchRaw
	opts.Pattern = "a" // byte 0x61
	c, _ := s.run(opts, 500)
	require.NotEmpty(s.T(), c.Found)
	for _, m := range c.Found {
		d, err := hunt.NewDigester(hunt.MD5)
		require.NoError(s.T(), err)
		require.True(s.T(), strings.ContainsRune(string(d.Sum([]byte(m.Candidate))), 'a'))
	}
}

// TestCancelled verifies Run stops and reports the context error.
func (s *SearchSuite) TestCancelled() {
	opts := s.options()
	opts.ProgressEvery = 16
	sr, err := hunt.NewSearcher(opts)
	require.NoError(s.T(), err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sink := &cancelSink{cancel: cancel}
	sum, err := sr.Run(ctx, 10_000_000, sink)
	require.ErrorIs(s.T(), err, context.Canceled)
	require.Less(s.T(), sum.Iterations, uint64(10_000_000))
	require.GreaterOrEqual(s.T(), sum.Iterations, uint64(16))
}

func (s *SearchSuite) TestAlreadyCancelled() {
	sr, err := hunt.NewSearcher(s.options())
	require.NoError(s.T(), err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var c hunt.Collector
	sum, err := sr.Run(ctx, 1000, &c)
	require.ErrorIs(s.T(), err, context.Canceled)
	require.Zero(s.T(), sum.Iterations)
}

func (s *SearchSuite) TestChunkObserver() {
	opts := s.options()
	sr, err := hunt.NewSearcher(opts)
	require.NoError(s.T(), err)
	obs := &chunkSink{}
	_, err = sr.Run(context.Background(), 100, obs)
	require.NoError(s.T(), err)
	require.NotEmpty(s.T(), obs.totals)
	require.Equal(s.T(), uint64(100), obs.totals[len(obs.totals)-1])
	for i := 1; i < len(obs.totals); i++ {
		require.Greater(s.T(), obs.totals[i], obs.totals[i-1])
	}
}

// TestSerialDeterministic checks a fixed seed reproduces the same matches.
func TestSerialDeterministic(t *testing.T) {
	opts := hunt.DefaultOptions()
	opts.Seed = 99
	opts.Pattern = "f0"

	collect := func() []hunt.Match {
		sr, err := hunt.NewSearcher(opts)
		require.NoError(t, err)
		var c hunt.Collector
		_, err = sr.Run(context.Background(), 3000, &c)
		require.NoError(t, err)
		return c.Found
	}
	first := collect()
	require.NotEmpty(t, first)
	require.Equal(t, first, collect())
}

func TestNewSearcher_Errors(t *testing.T) {
	cases := []struct {
		name   string
		modify func(*hunt.Options)
		err    error
	}{
		{"ZeroLength", func(o *hunt.Options) { o.Length = 0 }, hunt.ErrInvalidLength},
		{"HugeLength", func(o *hunt.Options) { o.Length = hunt.MaxLength + 1 }, hunt.ErrInvalidLength},
		{"NoWorkers", func(o *hunt.Options) { o.Workers = 0 }, hunt.ErrInvalidWorkers},
		{"BadAlgorithm", func(o *hunt.Options) { o.Algorithm = "crc" }, hunt.ErrUnknownAlgorithm},
		{"BadCharset", func(o *hunt.Options) { o.Charset = "" }, hunt.ErrInvalidCharset},
		{"EmptyPattern", func(o *hunt.Options) { o.Pattern = "" }, hunt.ErrEmptyPattern},
		{"BadMode", func(o *hunt.Options) { o.Mode = "fuzzy" }, hunt.ErrUnknownMode},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := hunt.DefaultOptions()
			tc.modify(&opts)
			_, err := hunt.NewSearcher(opts)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

type cancelSink struct {
	cancel context.CancelFunc
}

func (c *cancelSink) Match(hunt.Match)       {}
func (c *cancelSink) Progress(hunt.Progress) { c.cancel() }

// eventLog records "m" per match and "P" per progress marker.
type eventLog struct{ strings.Builder }

func (e *eventLog) Match(hunt.Match)       { e.WriteByte('m') }
func (e *eventLog) Progress(hunt.Progress) { e.WriteByte('P') }

type chunkSink struct {
	hunt.Collector
	totals []uint64
}

func (c *chunkSink) Chunk(total uint64) { c.totals = append(c.totals, total) }

func BenchmarkSearchMD5(b *testing.B) {
	opts := hunt.DefaultOptions()
	opts.Seed = 1
	sr, err := hunt.NewSearcher(opts)
	if err != nil {
		b.Fatal(err)
	}
	var c hunt.Collector
	b.ResetTimer()
	if _, err := sr.Run(context.Background(), uint64(b.N), &c); err != nil {
		b.Fatal(err)
	}
}
