package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hashhunt/hunt"
)

const defaultBenchIterations = 1_000_000

func (a *app) newBenchCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "bench [iterations]",
		Short: "Measure search throughput for every digest algorithm",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			iterations := uint64(defaultBenchIterations)
			if len(args) == 1 {
				n, err := strconv.ParseUint(args[0], 10, 64)
				if err != nil || n == 0 {
					return fmt.Errorf("invalid iteration count %q", args[0])
				}
				iterations = n
			}

			opts, err := a.searchOptions()
			if err != nil {
				return err
			}
			a.log.Info("running benchmark",
				zap.Uint64("iterations", iterations),
				zap.Int("workers", opts.Workers),
				zap.Int("length", opts.Length),
			)

			results, err := hunt.BenchmarkAlgorithms(cmd.Context(), opts, iterations)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				j, err := json.MarshalIndent(results, "", "  ")
				if err != nil {
					return fmt.Errorf("JSON encoding failed: %w", err)
				}
				_, err = fmt.Fprintf(out, "%s\n", j)
				return err
			}
			hunt.PrintBenchmarkResults(out, results)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}
