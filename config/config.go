// Package config loads hashhunt settings from the environment and from
// command-line arguments.
package config

import (
	"fmt"
	"strconv"

	"github.com/caarlos0/env/v11"

	"hashhunt/hunt"
)

// Config is the resolved run configuration. Environment variables set the
// defaults; flags bound onto the same struct override them.
type Config struct {
	Pattern   string `env:"PATTERN"`
	Length    int    `env:"LENGTH"`
	Algorithm string `env:"ALGORITHM"`
	Mode      string `env:"MODE"`
	Seed      uint64 `env:"SEED"`
	Workers   int    `env:"WORKERS"`
	JSON      bool   `env:"JSON"`
	LogLevel  string `env:"LOG_LEVEL"`
}

// EnvPrefix prefixes every environment variable Config reads.
const EnvPrefix = "HASHHUNT_"

// Default returns the built-in settings: md5, length 10, pattern "'='".
func Default() Config {
	return Config{
		Pattern:   hunt.DefaultPattern,
		Length:    hunt.DefaultLength,
		Algorithm: string(hunt.MD5),
		Mode:      string(hunt.MatchHex),
		Workers:   1,
		LogLevel:  "info",
	}
}

// Load returns Default overlaid with HASHHUNT_* environment variables.
func Load() (Config, error) {
	cfg := Default()
	if err := ParseEnv(&cfg, nil); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv fills target from the environment. A nil environment means the
// process environment.
func ParseEnv(target *Config, environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(target, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks the fields the search depends on.
func (c Config) Validate() error {
	if c.Pattern == "" {
		return hunt.ErrEmptyPattern
	}
	if c.Length <= 0 || c.Length > hunt.MaxLength {
		return fmt.Errorf("%w: %d", hunt.ErrInvalidLength, c.Length)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: %d", hunt.ErrInvalidWorkers, c.Workers)
	}
	if _, err := hunt.ParseAlgorithm(c.Algorithm); err != nil {
		return err
	}
	if _, err := hunt.ParseMode(c.Mode); err != nil {
		return err
	}
	return nil
}

// SearchOptions converts the config into hunt.Options.
func (c Config) SearchOptions() (hunt.Options, error) {
	if err := c.Validate(); err != nil {
		return hunt.Options{}, err
	}
	alg, _ := hunt.ParseAlgorithm(c.Algorithm)
	mode, _ := hunt.ParseMode(c.Mode)

	opts := hunt.DefaultOptions()
	opts.Pattern = c.Pattern
	opts.Length = c.Length
	opts.Algorithm = alg
	opts.Mode = mode
	opts.Seed = c.Seed
	opts.Workers = c.Workers
	return opts, nil
}

// ParseLimit reads the optional iteration bound from the first positional
// argument. Missing or malformed input falls back to hunt.DefaultLimit;
// ok is false when a value was given but could not be parsed.
func ParseLimit(args []string) (limit uint64, ok bool) {
	if len(args) == 0 {
		return hunt.DefaultLimit, true
	}
	n, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return hunt.DefaultLimit, false
	}
	return n, true
}
