// =======================
// hunt/search.go
// =======================

package hunt

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options configures a Searcher.
type Options struct {
	Pattern   string
	Mode      Mode
	Algorithm Algorithm
	Length    int
	Charset   string
	Seed      uint64
	Workers   int

	// ProgressEvery is the iteration interval between progress markers.
	ProgressEvery uint64
	// ChunkSize is how many iterations run between cancellation checks,
	// and the unit of work claimed by parallel workers.
	ChunkSize uint64

	Logger *zap.Logger
}

// DefaultOptions returns md5, 10-character candidates and the pattern "'='".
func DefaultOptions() Options {
	return Options{
		Pattern:       DefaultPattern,
		Mode:          MatchHex,
		Algorithm:     MD5,
		Length:        DefaultLength,
		Charset:       DefaultCharset,
		Workers:       1,
		ProgressEvery: DefaultProgressEvery,
		ChunkSize:     DefaultChunkSize,
	}
}

// Searcher runs the generate, hash, match loop.
type Searcher struct {
	opts    Options
	matcher *Matcher
	log     *zap.Logger
}

// NewSearcher validates opts and fills zero ProgressEvery and ChunkSize
// with their defaults.
func NewSearcher(opts Options) (*Searcher, error) {
	if opts.Length <= 0 || opts.Length > MaxLength {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, opts.Length)
	}
	if opts.Workers < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, opts.Workers)
	}
	if opts.Algorithm.Size() == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(opts.Algorithm))
	}
	if err := validateCharset(opts.Charset); err != nil {
		return nil, err
	}
	m, err := NewMatcher(opts.Pattern, opts.Mode)
	if err != nil {
		return nil, err
	}
	if opts.ProgressEvery == 0 {
		opts.ProgressEvery = DefaultProgressEvery
	}
	if opts.ChunkSize == 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Searcher{opts: opts, matcher: m, log: log}, nil
}

// Matcher returns the compiled pattern matcher.
func (s *Searcher) Matcher() *Matcher { return s.matcher }

// Options returns the options after defaults were applied.
func (s *Searcher) Options() Options { return s.opts }

// Run performs exactly limit iterations, reporting every match and every
// progress marker to sink. It does not stop on a match. It returns early
// only when ctx is cancelled.
func (s *Searcher) Run(ctx context.Context, limit uint64, sink Sink) (Summary, error) {
	start := time.Now()
	s.log.Debug("search started",
		zap.Uint64("limit", limit),
		zap.String("algorithm", string(s.opts.Algorithm)),
		zap.String("mode", string(s.opts.Mode)),
		zap.String("pattern", s.matcher.Pattern()),
		zap.Int("workers", s.opts.Workers),
	)

	var (
		sum Summary
		err error
	)
	if s.opts.Workers == 1 || limit <= s.opts.ChunkSize {
		sum, err = s.runSerial(ctx, limit, sink)
	} else {
		sum, err = s.runParallel(ctx, limit, sink)
	}
	sum.Elapsed = time.Since(start)

	s.log.Debug("search finished",
		zap.Uint64("iterations", sum.Iterations),
		zap.Uint64("matches", sum.Matches),
		zap.Duration("elapsed", sum.Elapsed),
		zap.Error(err),
	)
	return sum, err
}

func (s *Searcher) runSerial(ctx context.Context, limit uint64, sink Sink) (Summary, error) {
	var sum Summary
	if err := ctx.Err(); err != nil {
		return sum, err
	}

	gen, err := NewGenerator(s.opts.Charset, s.opts.Seed, 0)
	if err != nil {
		return sum, err
	}
	dig, err := NewDigester(s.opts.Algorithm)
	if err != nil {
		return sum, err
	}

	obs, _ := sink.(ChunkObserver)
	var marker uint64
	for i := uint64(1); i <= limit; i++ {
		c := gen.Next(s.opts.Length)
		raw := dig.Sum(c)
		hx := dig.Hex(raw)
		if s.matcher.Match(raw, hx) {
			sum.Matches++
			sink.Match(Match{Iteration: i, Candidate: string(c), Digest: string(hx), Algorithm: s.opts.Algorithm})
		}
		sum.Iterations = i
		if i%s.opts.ProgressEvery == 0 {
			marker++
			sink.Progress(Progress{Marker: marker, Iterations: i})
		}
		if i%s.opts.ChunkSize == 0 {
			if obs != nil {
				obs.Chunk(i)
			}
			if err := ctx.Err(); err != nil {
				return sum, err
			}
		}
	}
	if obs != nil && limit%s.opts.ChunkSize != 0 {
		obs.Chunk(limit)
	}
	return sum, nil
}

// batch is a finished chunk handed from a worker to the coordinator.
type batch struct {
	first   uint64
	done    uint64
	matches []Match
}

func (s *Searcher) runParallel(ctx context.Context, limit uint64, sink Sink) (Summary, error) {
	var sum Summary
	if err := ctx.Err(); err != nil {
		return sum, err
	}

	gens := make([]*Generator, s.opts.Workers)
	digs := make([]*Digester, s.opts.Workers)
	for w := range s.opts.Workers {
		var err error
		if gens[w], err = NewGenerator(s.opts.Charset, s.opts.Seed, uint64(w)); err != nil {
			return sum, err
		}
		if digs[w], err = NewDigester(s.opts.Algorithm); err != nil {
			return sum, err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	results := make(chan batch, s.opts.Workers)
	var claimed atomic.Uint64
	for w := range s.opts.Workers {
		g.Go(func() error {
			return s.work(gctx, limit, &claimed, gens[w], digs[w], results)
		})
	}

	var waitErr error
	waited := make(chan struct{})
	go func() {
		waitErr = g.Wait()
		close(results)
		close(waited)
	}()

	// Single consumer: sink calls are serialised and markers stay ordered.
	// Events interleave by completed count, as if the batches had run
	// back to back in one loop.
	obs, _ := sink.(ChunkObserver)
	var marker uint64
	advance := func(completed uint64) {
		for (marker+1)*s.opts.ProgressEvery <= completed {
			marker++
			sink.Progress(Progress{Marker: marker, Iterations: marker * s.opts.ProgressEvery})
		}
	}
	for b := range results {
		for _, m := range b.matches {
			// markers up to the previous candidate precede this match
			advance(sum.Iterations + m.Iteration - b.first - 1)
			sum.Matches++
			sink.Match(m)
		}
		sum.Iterations += b.done
		advance(sum.Iterations)
		if obs != nil {
			obs.Chunk(sum.Iterations)
		}
	}
	<-waited

	if waitErr != nil {
		return sum, waitErr
	}
	// errgroup only reports worker errors; a parent cancel that raced the
	// last chunk still has to surface.
	if sum.Iterations < limit {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
	}
	return sum, nil
}

func (s *Searcher) work(
	ctx context.Context,
	limit uint64,
	claimed *atomic.Uint64,
	gen *Generator,
	dig *Digester,
	out chan<- batch,
) error {
	chunk := s.opts.ChunkSize
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := claimed.Add(chunk)
		first := end - chunk
		if first >= limit {
			return nil
		}
		end = min(end, limit)

		b := batch{first: first}
		for i := first + 1; i <= end; i++ {
			c := gen.Next(s.opts.Length)
			raw := dig.Sum(c)
			hx := dig.Hex(raw)
			if s.matcher.Match(raw, hx) {
				b.matches = append(b.matches, Match{
					Iteration: i,
					Candidate: string(c),
					Digest:    string(hx),
					Algorithm: s.opts.Algorithm,
				})
			}
		}
		b.done = end - first

		select {
		case out <- b:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
