// Command hexrange prints the compact index ranges of a radius query and
// optionally evaluates them against a DynamoDB table.
//
// Usage:
//
//	hexrange -lat 52.5163 -lon 13.3777 -radius 500 [-format text|json|sql|dynamo|binary]
//	hexrange -lat 52.5163 -lon 13.3777 -radius 500 -table places -field h3
package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/hupe1980/hexrange"
	"github.com/hupe1980/hexrange/backend/dynamo"
	"github.com/hupe1980/hexrange/h3grid"
	"github.com/hupe1980/hexrange/predicate"
	"github.com/hupe1980/hexrange/rangeset"
)

type cliConfig struct {
	lat, lon, radius float64
	format           string
	field            string
	compression      string
	table            string
	region           string
	limit            int
	rate             float64
	verbose          bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "hexrange:", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (cliConfig, error) {
	var cfg cliConfig

	fs := flag.NewFlagSet("hexrange", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Float64Var(&cfg.lat, "lat", 0, "query latitude in degrees")
	fs.Float64Var(&cfg.lon, "lon", 0, "query longitude in degrees")
	fs.Float64Var(&cfg.radius, "radius", 0, "query radius in meters")
	fs.StringVar(&cfg.format, "format", "text", "output format: text, json, sql, dynamo, binary")
	fs.StringVar(&cfg.field, "field", predicate.DefaultField, "attribute or column holding the compact index")
	fs.StringVar(&cfg.compression, "compression", "zstd", "binary format compression: none, lz4, zstd")
	fs.StringVar(&cfg.table, "table", "", "DynamoDB table to scan (optional)")
	fs.StringVar(&cfg.region, "region", "", "AWS region (default from environment)")
	fs.IntVar(&cfg.limit, "limit", 0, "maximum number of items to fetch from the table (0 = all)")
	fs.Float64Var(&cfg.rate, "rate", 0, "maximum scan pages per second (0 = unlimited)")
	fs.BoolVar(&cfg.verbose, "v", false, "verbose logging")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return cfg, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := hexrange.NewLogger(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	idx, err := hexrange.New(h3grid.New(), hexrange.WithField(cfg.field), hexrange.WithLogger(logger))
	if err != nil {
		return err
	}

	plan, err := idx.Plan(ctx, cfg.lat, cfg.lon, cfg.radius)
	if err != nil {
		return err
	}
	pred := predicate.Build(idx.Field(), plan.Ranges.All())

	if err := render(stdout, cfg, plan, pred); err != nil {
		return err
	}

	if cfg.table == "" {
		return nil
	}
	return scan(ctx, stdout, cfg, logger, pred)
}

func render(w io.Writer, cfg cliConfig, plan hexrange.Plan, pred predicate.Predicate) error {
	switch cfg.format {
	case "text":
		fmt.Fprintf(w, "resolution: %d\n", plan.Resolution)
		fmt.Fprintf(w, "center:     %s\n", plan.Center)
		fmt.Fprintf(w, "k:          %d (%d cells)\n", plan.K, len(plan.Cells))
		fmt.Fprintf(w, "ranges:     %d\n", len(plan.Ranges))
		for r := range plan.Ranges.All() {
			fmt.Fprintf(w, "  %s\n", r)
		}
		return nil

	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)

	case "sql":
		where, params := pred.SQL(cfg.field)
		fmt.Fprintln(w, where)
		for i, p := range params {
			fmt.Fprintf(w, "-- $%d = %v\n", i+1, p)
		}
		return nil

	case "dynamo":
		f, err := dynamo.BuildFilter(pred)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, f.Expression)
		for name, attr := range f.Names {
			fmt.Fprintf(w, "-- %s = %s\n", name, attr)
		}
		return nil

	case "binary":
		c, err := rangeset.ParseCompression(cfg.compression)
		if err != nil {
			return err
		}
		data, err := rangeset.Encode(plan.Ranges, c)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, base64.StdEncoding.EncodeToString(data))
		return nil

	default:
		return fmt.Errorf("unknown format %q", cfg.format)
	}
}

func scan(ctx context.Context, w io.Writer, cfg cliConfig, logger *hexrange.Logger, pred predicate.Predicate) error {
	var loadOpts []func(*config.LoadOptions) error
	if cfg.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.region))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}

	opts := []dynamo.Option{dynamo.WithLogger(logger), dynamo.WithMaxItems(cfg.limit)}
	if cfg.rate > 0 {
		opts = append(opts, dynamo.WithRateLimit(cfg.rate, 1))
	}

	s, err := dynamo.NewSearcher(dynamodb.NewFromConfig(awsCfg), cfg.table, opts...)
	if err != nil {
		return err
	}

	items, err := s.Search(ctx, pred)
	if err != nil {
		return err
	}

	for _, item := range items {
		v, err := dynamo.ParseNumber(item, cfg.field)
		if err != nil {
			logger.Warn("item without compact index", "error", err)
			continue
		}
		if !pred.Matches(v) {
			return errors.New("scan returned an item outside the predicate")
		}
	}

	fmt.Fprintf(w, "items: %d\n", len(items))
	return nil
}
