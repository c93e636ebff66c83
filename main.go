// main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"hashhunt/config"
	"hashhunt/hunt"
)

// app carries the resolved configuration and logger shared by commands.
type app struct {
	cfg     config.Config
	verbose bool
	raw     bool
	watch   bool
	log     *zap.Logger

	// newScreen is swapped out in tests.
	newScreen func() (tcell.Screen, error)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(cfg config.Config) *cobra.Command {
	a := &app{cfg: cfg, log: zap.NewNop(), newScreen: tcell.NewScreen}

	root := &cobra.Command{
		Use:   "hashhunt [limit]",
		Short: "Search random strings for digests containing a pattern",
		Long: `hashhunt draws random lowercase-alphanumeric candidates, hashes each one
and prints every candidate whose digest contains the pattern:

  <candidate> --> <digest>

The optional limit is the number of candidates to try (default 100).
A progress line is printed every 10,000,000 candidates. Settings can
also come from HASHHUNT_* environment variables.`,
		// Only the first argument is read; anything malformed, including
		// a negative number that looks like a flag, falls back to 100.
		Args:               cobra.ArbitraryArgs,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.initLogger,
		PersistentPostRun:  func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
		RunE: a.runSearch,
	}

	f := root.PersistentFlags()
	f.StringVarP(&a.cfg.Pattern, "pattern", "p", a.cfg.Pattern, "substring to look for in the digest")
	f.IntVarP(&a.cfg.Length, "length", "n", a.cfg.Length, "candidate length")
	f.StringVarP(&a.cfg.Algorithm, "algorithm", "a", a.cfg.Algorithm, "digest algorithm: md5, sha1, sha256, sha384, sha512")
	f.Uint64Var(&a.cfg.Seed, "seed", a.cfg.Seed, "random seed (0 draws one from the OS)")
	f.IntVarP(&a.cfg.Workers, "workers", "w", a.cfg.Workers, "parallel workers")
	f.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	f.BoolVar(&a.raw, "raw", false, "match against raw digest bytes instead of hex text")
	root.Flags().BoolVar(&a.cfg.JSON, "json", a.cfg.JSON, "print one JSON object per event")
	root.Flags().BoolVar(&a.watch, "watch", false, "show a live terminal view while searching")

	root.AddCommand(a.newBenchCmd())
	return root
}

func (a *app) initLogger(cmd *cobra.Command, args []string) error {
	level, err := zap.ParseAtomicLevel(a.cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", a.cfg.LogLevel, err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = level
	if a.verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	a.log, err = zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// searchOptions resolves flags and environment into hunt.Options.
func (a *app) searchOptions() (hunt.Options, error) {
	if a.raw {
		a.cfg.Mode = string(hunt.MatchRaw)
	}
	opts, err := a.cfg.SearchOptions()
	if err != nil {
		return hunt.Options{}, err
	}
	if opts.Seed == 0 {
		if opts.Seed, err = hunt.NewEntropySeed(); err != nil {
			return hunt.Options{}, err
		}
	}
	opts.Logger = a.log
	return opts, nil
}

func (a *app) runSearch(cmd *cobra.Command, args []string) error {
	limit, ok := config.ParseLimit(args)
	if !ok {
		a.log.Debug("ignoring malformed limit", zap.String("arg", args[0]), zap.Uint64("limit", limit))
	}

	opts, err := a.searchOptions()
	if err != nil {
		return err
	}
	s, err := hunt.NewSearcher(opts)
	if err != nil {
		return fmt.Errorf("failed to initialize search: %w", err)
	}
	if !s.Matcher().Satisfiable(opts.Algorithm) {
		a.log.Warn("pattern can never match this digest",
			zap.String("pattern", s.Matcher().Pattern()),
			zap.String("algorithm", string(opts.Algorithm)),
			zap.String("mode", string(opts.Mode)),
		)
	}

	out := cmd.OutOrStdout()
	var sum hunt.Summary
	if a.watch {
		sum, err = a.searchWatched(cmd.Context(), s, limit, out)
	} else {
		sum, err = a.searchPlain(cmd.Context(), s, limit, out)
	}

	fields := []zap.Field{
		zap.Uint64("seed", opts.Seed),
		zap.Uint64("iterations", sum.Iterations),
		zap.Uint64("matches", sum.Matches),
		zap.Duration("elapsed", sum.Elapsed),
		zap.Float64("rate", sum.Rate()),
	}
	if errors.Is(err, context.Canceled) {
		a.log.Info("search interrupted", fields...)
		return nil
	}
	if err != nil {
		return err
	}
	a.log.Info("search complete", fields...)
	return nil
}

func (a *app) searchPlain(ctx context.Context, s *hunt.Searcher, limit uint64, out io.Writer) (hunt.Summary, error) {
	if a.cfg.JSON {
		sink := hunt.NewJSONSink(out)
		sum, err := s.Run(ctx, limit, sink)
		if ferr := sink.Finish(sum); err == nil {
			err = ferr
		}
		return sum, err
	}
	sink := hunt.NewTextSink(out)
	sum, err := s.Run(ctx, limit, sink)
	if err == nil {
		err = sink.Err()
	}
	return sum, err
}

func (a *app) searchWatched(ctx context.Context, s *hunt.Searcher, limit uint64, out io.Writer) (hunt.Summary, error) {
	screen, err := a.newScreen()
	if err != nil {
		return hunt.Summary{}, fmt.Errorf("screen init failed: %w", err)
	}
	state := newWatchState(s.Options(), limit)
	sum, err := runWatch(ctx, screen, s, limit, state)

	// The screen is gone; replay the matches so they are not lost.
	text := hunt.NewTextSink(out)
	for _, m := range state.snapshot().found {
		text.Match(m)
	}
	if err == nil {
		err = text.Err()
	}
	return sum, err
}
