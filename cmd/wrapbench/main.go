package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/synadia-labs/wrapcost/collatz"
	"github.com/synadia-labs/wrapcost/harness"
	"github.com/synadia-labs/wrapcost/report"
)

// CLI defines the wrapbench command-line interface. Every flag can
// also be set through its WRAPBENCH_* environment variable.
type CLI struct {
	LogLevel string `help:"Log level on stderr (debug, info, warn, error)" enum:"debug,info,warn,error" default:"info" env:"WRAPBENCH_LOG_LEVEL"`

	Run    RunCmd    `cmd:"" default:"withargs" help:"Benchmark the wrapper variants on one seed."`
	Verify VerifyCmd `cmd:"" help:"Check that every variant agrees over a range of seeds."`
	Trace  TraceCmd  `cmd:"" help:"Print the sequence of one seed."`
	Parse  ParseCmd  `cmd:"" help:"Convert go test -bench output into a report."`
}

// app carries what every command needs.
type app struct {
	ctx    context.Context
	log    *slog.Logger
	stdin  io.Reader
	stdout io.Writer
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("wrapbench"),
		kong.Description("Measure the cost of wrapping an int64 in a struct, a pointer, or a defined type."),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{
		ctx:    ctx,
		log:    newLogger(os.Stderr, cli.LogLevel),
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}
	kctx.FatalIfErrorf(kctx.Run(a))
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// OutputFlags selects where and how a report is written. An empty
// Output or "-" means stdout.
type OutputFlags struct {
	Format string `short:"f" help:"Output format (table, json, cbor, msgpack)" enum:"table,json,cbor,msgpack" default:"table" env:"WRAPBENCH_FORMAT"`
	Output string `short:"o" help:"Output file (defaults to stdout)" env:"WRAPBENCH_OUTPUT"`
}

func (o OutputFlags) write(a *app, r report.Report) error {
	f, err := report.ParseFormat(o.Format)
	if err != nil {
		return err
	}
	path := strings.TrimSpace(o.Output)
	if path == "" || path == "-" {
		return report.Write(a.stdout, r, f)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := report.Write(file, r, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

type RunCmd struct {
	Seed     int64    `help:"Seed to benchmark" default:"27" env:"WRAPBENCH_SEED"`
	Count    int      `short:"c" help:"Measured rounds per variant" default:"1" env:"WRAPBENCH_COUNT"`
	Warmup   int      `short:"w" help:"Discarded warmup rounds per variant" default:"1" env:"WRAPBENCH_WARMUP"`
	Variants []string `short:"V" name:"variant" help:"Only run these variants (may be repeated)" env:"WRAPBENCH_VARIANTS"`

	OutputFlags `embed:""`
}

func (c *RunCmd) Run(a *app) error {
	a.log.Info("benchmarking", "seed", c.Seed, "count", c.Count, "warmup", c.Warmup)
	results, err := harness.Run(a.ctx, harness.Options{
		Seed:     c.Seed,
		Count:    c.Count,
		Warmup:   c.Warmup,
		Variants: c.Variants,
		Logger:   a.log,
	})
	if err != nil {
		return err
	}
	return c.write(a, report.New(fmt.Sprintf("Collatz wrapper cost (seed=%d)", c.Seed), results))
}

type VerifyCmd struct {
	From    int64 `help:"First seed" default:"1" env:"WRAPBENCH_FROM"`
	To      int64 `help:"Last seed" default:"10000" env:"WRAPBENCH_TO"`
	Workers int   `help:"Concurrent workers (0 means GOMAXPROCS)" default:"0" env:"WRAPBENCH_WORKERS"`
}

func (c *VerifyCmd) Run(a *app) error {
	a.log.Info("verifying", "from", c.From, "to", c.To, "variants", len(collatz.Variants()))
	sum, err := harness.Sweep(a.ctx, c.From, c.To, c.Workers)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%d seeds in [%d, %d] agree across %d variants\n", sum.Seeds, sum.From, sum.To, len(collatz.Variants()))
	fmt.Fprintf(a.stdout, "longest: seed %d, %d steps\n", sum.MaxStepsSeed, sum.MaxSteps)
	fmt.Fprintf(a.stdout, "highest: seed %d, peak %d\n", sum.MaxPeakSeed, sum.MaxPeak)
	return nil
}

type TraceCmd struct {
	Seed int64 `arg:"" optional:"" help:"Seed to trace (defaults to 27)" default:"27"`
}

func (c *TraceCmd) Run(a *app) error {
	seq, err := collatz.Trace(c.Seed)
	if err != nil {
		return err
	}
	terms := make([]string, len(seq.Terms))
	for i, n := range seq.Terms {
		terms[i] = fmt.Sprint(n)
	}
	fmt.Fprintln(a.stdout, strings.Join(terms, " "))
	fmt.Fprintf(a.stdout, "seed %d: %d steps, peak %d\n", seq.Seed, seq.Steps, seq.Peak)
	return nil
}

type ParseCmd struct {
	Input string `arg:"" optional:"" help:"go test -bench output (defaults to stdin)"`

	OutputFlags `embed:""`
}

func (c *ParseCmd) Run(a *app) error {
	in := a.stdin
	if c.Input != "" && c.Input != "-" {
		f, err := os.Open(c.Input)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}
	results, err := report.ParseBench(in)
	if err != nil {
		return err
	}
	a.log.Debug("parsed", "results", len(results))
	title := "go test -bench results"
	if c.Input != "" && c.Input != "-" {
		title += " (" + c.Input + ")"
	}
	return c.write(a, report.New(title, results))
}
