// Command cqknn builds a compressed quadtree over a point file and prints the
// approximate k nearest neighbors of each query point.
//
// Usage:
//
//	cqknn -points pts.txt -query "5,4" -k 3 -eps 0
//	cqknn -points pts.txt -queries queries.txt -k 1 -eps 0.5
//
// Output is one line per neighbor: query number, rank, point index, squared
// distance, and the point coordinates.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/TrevorS/quadtree"
	"github.com/TrevorS/quadtree/internal/pointfile"
)

type options struct {
	pointsPath  string
	queriesPath string
	queries     [][]float64
	k           int
	eps         float64
	workers     int
	maxDepth    int
	logLevel    string
	logFormat   string
	stats       bool
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "cqknn: %v\n", err)
		os.Exit(2)
	}

	logger, err := newLogger(opts.logLevel, opts.logFormat, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cqknn: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, logger, os.Stdout); err != nil {
		logger.Error("cqknn failed", "error", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("cqknn", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.pointsPath, "points", "", "point file to index (required)")
	fs.StringVar(&opts.queriesPath, "queries", "", "point file of query points")
	fs.Func("query", "query point as comma separated coordinates (repeatable)", func(s string) error {
		p, err := pointfile.ParsePoint(s)
		if err != nil {
			return err
		}
		opts.queries = append(opts.queries, p)
		return nil
	})
	fs.IntVar(&opts.k, "k", 1, "number of neighbors")
	fs.Float64Var(&opts.eps, "eps", 0, "approximation factor applied to squared distances")
	fs.IntVar(&opts.workers, "workers", 0, "query goroutines (0 = number of CPUs)")
	fs.IntVar(&opts.maxDepth, "max-depth", quadtree.DefaultMaxDepth, "construction depth limit (0 = default)")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")
	fs.BoolVar(&opts.stats, "stats", false, "log tree statistics after building")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.pointsPath == "" {
		return nil, errors.New("-points is required")
	}
	if opts.queriesPath == "" && len(opts.queries) == 0 {
		return nil, errors.New("one of -query or -queries is required")
	}
	return opts, nil
}

func newLogger(level, format string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid -log-level %q", level)
	}
	hopts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, hopts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, hopts)), nil
	default:
		return nil, fmt.Errorf("invalid -log-format %q (want text or json)", format)
	}
}

func run(ctx context.Context, opts *options, logger *slog.Logger, out io.Writer) error {
	points, err := pointfile.ReadFile(opts.pointsPath)
	if err != nil {
		return fmt.Errorf("reading points: %w", err)
	}

	queries := opts.queries
	if opts.queriesPath != "" {
		qs, err := pointfile.ReadFile(opts.queriesPath)
		if err != nil {
			return fmt.Errorf("reading queries: %w", err)
		}
		queries = append(queries, qs...)
	}

	cfg := quadtree.DefaultConfig()
	cfg.MaxDepth = opts.maxDepth
	cfg.Workers = opts.workers
	cfg.Logger = logger

	tree, err := quadtree.New(points, cfg)
	if err != nil {
		return fmt.Errorf("building tree: %w", err)
	}
	if opts.stats {
		st := tree.Stats()
		logger.Info("tree statistics",
			"points", st.Points,
			"nodes", st.Nodes,
			"internal", st.Internal,
			"leaves", st.Leaves,
			"depth", st.Depth,
		)
	}

	results, err := tree.QueryBatch(ctx, queries, opts.k, opts.eps)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(out)
	for qi, nn := range results {
		for rank, nb := range nn {
			fmt.Fprintf(w, "%d %d %d %s %s\n", qi, rank, nb.Index,
				strconv.FormatFloat(nb.SqDist, 'g', -1, 64), formatPoint(nb.Point))
		}
	}
	return w.Flush()
}

func formatPoint(p []float64) string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}
