// punzip extracts a ZIP archive using a pool of worker goroutines,
// partitioning the archive's entries across workers according to a
// selectable distribution strategy.
package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"runtime"
	"strconv"

	"github.com/spf13/pflag"

	"punzip/pkg/distribute"
	"punzip/pkg/option"
	"punzip/pkg/pipeline"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "punzip: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		quiet       bool
		jobsFlag    string
		strategy    string
		chunkSize   int
		timestamp   string
		outputFlag  string
		shortExts   bool
		diagnostics bool
		help        bool
	)

	flagSet := pflag.NewFlagSet("punzip", pflag.ContinueOnError)
	flagSet.BoolVarP(&quiet, "quiet", "q", false, "suppress per-file progress output")
	flagSet.StringVarP(&jobsFlag, "jobs", "j", "1", "worker count: a positive integer, \"max\", or \"auto\"")
	flagSet.StringVarP(&strategy, "distribution", "d", "cyclic", fmt.Sprintf("distribution strategy: one of %v", distribute.Names()))
	flagSet.IntVarP(&chunkSize, "chunk-size", "c", pipeline.DefaultChunkSize, "streaming read/write chunk size in bytes")
	flagSet.StringVarP(&timestamp, "timestamp", "t", "verbatim", "timestamp policy: \"verbatim\", \"current\", or a fixed epoch-seconds integer")
	flagSet.StringVarP(&outputFlag, "output", "o", "", "output directory prefix (default: archive name with .zip stripped)")
	flagSet.BoolVarP(&shortExts, "short-ext", "a", false, "stage long file extensions under a short alias while writing")
	flagSet.BoolVarP(&diagnostics, "diagnostics", "g", false, "print a diagnostics summary to stderr after extraction")
	flagSet.BoolVarP(&help, "help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printUsage(flagSet)
			return nil
		}
		return err
	}
	if help {
		printUsage(flagSet)
		return nil
	}

	positional := flagSet.Args()
	if len(positional) != 1 {
		printUsage(flagSet)
		return fmt.Errorf("expected exactly one archive filename, got %d", len(positional))
	}

	workers, err := resolveJobs(jobsFlag)
	if err != nil {
		return err
	}

	policy, err := resolveTimestamp(timestamp)
	if err != nil {
		return err
	}

	req := pipeline.Request{
		Filename:    positional[0],
		Quiet:       quiet,
		Workers:     workers,
		Strategy:    strategy,
		ChunkSize:   chunkSize,
		Timestamp:   policy,
		ShortExts:   shortExts,
		Diagnostics: diagnostics,
	}
	if outputFlag != "" {
		req.OutputPrefix = option.Some(outputFlag)
	}

	summary, err := pipeline.Run(context.Background(), req)
	if err != nil {
		if diagnostics {
			summary.WriteTo(os.Stderr)
		}
		return err
	}

	if diagnostics {
		summary.WriteTo(os.Stderr)
	}
	return nil
}

func resolveJobs(raw string) (int, error) {
	switch raw {
	case "max":
		return runtime.NumCPU(), nil
	case "auto":
		n := int(math.Round(float64(runtime.NumCPU()) * 0.75))
		if n < 1 {
			n = 1
		}
		return n, nil
	default:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return 0, fmt.Errorf("invalid -j value %q: must be a positive integer, \"max\", or \"auto\"", raw)
		}
		return n, nil
	}
}

func resolveTimestamp(raw string) (option.TimestampPolicy, error) {
	switch raw {
	case "verbatim":
		return option.Verbatim{}, nil
	case "current":
		return option.Current{}, nil
	default:
		epoch, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid -t value %q: must be \"verbatim\", \"current\", or an epoch-seconds integer", raw)
		}
		if epoch == 0 {
			return nil, fmt.Errorf("invalid -t value %q: fixed epoch 0 is reserved for \"current\"", raw)
		}
		if epoch < 0 {
			return nil, fmt.Errorf("invalid -t value %q: fixed epoch must be a positive integer", raw)
		}
		return option.Fixed{Epoch: epoch}, nil
	}
}

func printUsage(fs *pflag.FlagSet) {
	fmt.Fprintln(os.Stderr, "usage: punzip [flags] archive.zip")
	fs.PrintDefaults()
}
