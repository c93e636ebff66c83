// =======================
// hunt/benchmarks.go
// =======================

package hunt

import (
	"context"
	"fmt"
	"io"
	"time"
)

// BenchmarkInfo holds performance metrics for one algorithm.
type BenchmarkInfo struct {
	Algorithm   Algorithm     `json:"algorithm"`
	Iterations  uint64        `json:"iterations"`
	Matches     uint64        `json:"matches"`
	Elapsed     time.Duration `json:"elapsed"`
	PerHash     time.Duration `json:"per_hash"`
	Rate        float64       `json:"candidates_per_second"`
	Throughput  float64       `json:"throughput_mbps"`
	DigestBytes int           `json:"digest_bytes"`
}

type discardSink struct{}

func (discardSink) Match(Match)       {}
func (discardSink) Progress(Progress) {}

// BenchmarkAlgorithms times the full search loop for every supported
// algorithm using opts as the template.
func BenchmarkAlgorithms(ctx context.Context, opts Options, iterations uint64) ([]BenchmarkInfo, error) {
	if iterations == 0 {
		return nil, fmt.Errorf("benchmark needs at least one iteration")
	}
	results := make([]BenchmarkInfo, 0, len(Algorithms))

	for _, alg := range Algorithms {
		o := opts
		o.Algorithm = alg
		s, err := NewSearcher(o)
		if err != nil {
			return nil, fmt.Errorf("failed to create searcher for %s: %w", alg, err)
		}

		sum, err := s.Run(ctx, iterations, discardSink{})
		if err != nil {
			return nil, fmt.Errorf("benchmark %s interrupted: %w", alg, err)
		}

		seconds := sum.Elapsed.Seconds()
		var throughput float64
		if seconds > 0 {
			throughput = float64(sum.Iterations) * float64(o.Length) / (1024 * 1024) / seconds
		}

		results = append(results, BenchmarkInfo{
			Algorithm:   alg,
			Iterations:  sum.Iterations,
			Matches:     sum.Matches,
			Elapsed:     sum.Elapsed,
			PerHash:     sum.Elapsed / time.Duration(sum.Iterations),
			Rate:        sum.Rate(),
			Throughput:  throughput,
			DigestBytes: alg.Size(),
		})
	}

	return results, nil
}

// PrintBenchmarkResults writes results as a formatted table.
func PrintBenchmarkResults(w io.Writer, results []BenchmarkInfo) {
	fmt.Fprintln(w, "Digest Search Benchmark Results")
	fmt.Fprintln(w, "===============================")
	fmt.Fprintf(w, "%-8s | %-6s | %-12s | %-14s | %-10s | %-8s\n",
		"Algo", "Bytes", "Time/Hash", "Candidates/s", "MB/s", "Matches")
	fmt.Fprintln(w, "---------|--------|--------------|----------------|------------|---------")

	for _, r := range results {
		fmt.Fprintf(w, "%-8s | %-6d | %-12s | %-14.0f | %-10.2f | %-8d\n",
			r.Algorithm,
			r.DigestBytes,
			r.PerHash.String(),
			r.Rate,
			r.Throughput,
			r.Matches)
	}
}
