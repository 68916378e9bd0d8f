// Command aqi runs the zonal risk pipeline once and exits. By default it reads
// the sample CSV and writes the snapshot plus the advisory, chart and map
// artifacts; with -from-snapshot it only regenerates the advisory document from
// an existing snapshot.
//
// Exit codes: 0 success, 2 schema error, 3 no usable data, 4 missing column,
// 1 anything else.
//
// Usage:
//
//	go run ./cmd/aqi -in data/tempo_no2.csv -snapshot data/tempo_aqi_risk.csv
//	go run ./cmd/aqi -from-snapshot -snapshot data/tempo_aqi_risk.csv -advisory static/aqi_action.json
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/tempo-aqi-etl/internal/adapter/artifact"
	"github.com/couchcryptid/tempo-aqi-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/tempo-aqi-etl/internal/config"
	"github.com/couchcryptid/tempo-aqi-etl/internal/domain"
	"github.com/couchcryptid/tempo-aqi-etl/internal/observability"
	"github.com/couchcryptid/tempo-aqi-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, cfg, os.Args[1:], os.Stdout, observability.NewLogger(cfg)))
}

// run parses flags over cfg's defaults, performs one run, and returns the
// process exit code.
func run(ctx context.Context, cfg *config.Config, args []string, stdout io.Writer, logger *slog.Logger) int {
	fs := flag.NewFlagSet("aqi", flag.ContinueOnError)
	fs.SetOutput(stdout)
	in := fs.String("in", cfg.InputPath, "sample CSV with latitude, longitude and NO2_column")
	snapshot := fs.String("snapshot", cfg.SnapshotPath, "risk snapshot CSV path")
	advisory := fs.String("advisory", cfg.AdvisoryPath, "advisory JSON output path (empty to skip)")
	chart := fs.String("chart", cfg.ChartPath, "chart JSON output path (empty to skip)")
	mapPath := fs.String("map", cfg.MapPath, "GeoJSON map output path (empty to skip)")
	fromSnapshot := fs.Bool("from-snapshot", false, "regenerate the advisory from -snapshot only")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	var err error
	if *fromSnapshot {
		err = adviseFromSnapshot(ctx, *snapshot, *advisory, logger)
	} else {
		err = runPipeline(ctx, *in, *snapshot, artifact.Paths{Advisory: *advisory, Chart: *chart, Map: *mapPath}, stdout, logger)
	}
	if err != nil {
		logger.Error("aqi run failed", "error", err, "kind", domain.ErrorKind(err))
		return exitCode(err)
	}
	return 0
}

func runPipeline(ctx context.Context, in, snapshot string, paths artifact.Paths, stdout io.Writer, logger *slog.Logger) error {
	p := pipeline.New(csvfile.NewReader(in, logger), logger, observability.NewMetricsForTesting(),
		pipeline.WithLoaders(
			csvfile.NewSnapshotWriter(snapshot, logger),
			artifact.NewWriter(paths, logger),
		),
	)
	a, err := p.RunOnce(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%-16s %6s %6s  %s\n", "ZONE", "POINTS", "SCORE", "LEVEL")
	for _, z := range a.Zones {
		fmt.Fprintf(stdout, "%-16s %6d %6d  %s\n", z.Zone, z.Count, z.MeanScore, z.RiskLevel)
	}
	fmt.Fprintf(stdout, "%d samples, %d outside coverage\n", a.Samples, a.OutsideCoverage())
	return nil
}

func adviseFromSnapshot(ctx context.Context, snapshot, advisory string, logger *slog.Logger) error {
	f, err := os.Open(snapshot)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	scores, err := csvfile.ReadZoneScores(f)
	if err != nil {
		return err
	}
	a := domain.Assessment{Advisories: domain.Advise(scores)}
	return artifact.NewWriter(artifact.Paths{Advisory: advisory}, logger).Load(ctx, a)
}

func exitCode(err error) int {
	switch domain.ErrorKind(err) {
	case domain.KindSchema:
		return 2
	case domain.KindEmptyResult:
		return 3
	case domain.KindMissingColumn:
		return 4
	default:
		return 1
	}
}
