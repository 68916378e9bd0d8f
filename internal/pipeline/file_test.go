package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/couchcryptid/tempo-aqi-etl/internal/adapter/artifact"
	"github.com/couchcryptid/tempo-aqi-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/tempo-aqi-etl/internal/domain"
	"github.com/couchcryptid/tempo-aqi-etl/internal/observability"
	"github.com/couchcryptid/tempo-aqi-etl/internal/pipeline"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mockCSV = `latitude,longitude,NO2_column
47,-110,1e16
47,-110,2e16
45,-60,5e16
20.125,-90.5,1.2e17
10,10,9e16
35,-110,1e15
`

func TestPipeline_FileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "tempo_no2.csv")
	require.NoError(t, os.WriteFile(input, []byte(mockCSV), 0o600))

	snapshot := filepath.Join(dir, "zonal_risk.csv")
	paths := artifact.Paths{
		Advisory: filepath.Join(dir, "advisory.json"),
		Chart:    filepath.Join(dir, "chart.json"),
		Map:      filepath.Join(dir, "map.geojson"),
	}

	logger := discardLogger()
	p := pipeline.New(csvfile.NewReader(input, logger), logger, observability.NewMetricsForTesting(),
		pipeline.WithLoaders(
			csvfile.NewSnapshotWriter(snapshot, logger),
			artifact.NewWriter(paths, logger),
		),
	)

	a, err := p.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, a.Samples)
	assert.Equal(t, 1, a.OutsideCoverage())

	wantZones := []string{"Northwest", "Northeast", "South Central", "Southwest"}
	gotZones := make([]string, len(a.Zones))
	for i, z := range a.Zones {
		gotZones[i] = z.Zone.String()
	}
	assert.Equal(t, wantZones, gotZones)

	f, err := os.Open(snapshot)
	require.NoError(t, err)
	defer f.Close()
	points, err := csvfile.ReadSnapshot(f)
	require.NoError(t, err)
	if diff := cmp.Diff(a.Points, points); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}

	// Advisories rebuilt from the snapshot match the in-process ones.
	_, err = f.Seek(0, 0)
	require.NoError(t, err)
	scores, err := csvfile.ReadZoneScores(f)
	require.NoError(t, err)
	if diff := cmp.Diff(a.Advisories, domain.Advise(scores)); diff != "" {
		t.Errorf("advisory mismatch (-want +got):\n%s", diff)
	}

	for _, path := range []string{paths.Advisory, paths.Chart, paths.Map} {
		data, err := os.ReadFile(path)
		require.NoError(t, err, path)
		assert.True(t, strings.HasPrefix(string(data), "{"), path)
	}
}

func TestPipeline_FileMissingColumn(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "tempo_no2.csv")
	require.NoError(t, os.WriteFile(input, []byte("latitude,longitude,value\n47,-110,1e16\n"), 0o600))

	logger := discardLogger()
	p := pipeline.New(csvfile.NewReader(input, logger), logger, observability.NewMetricsForTesting())

	_, err := p.RunOnce(context.Background())
	var schema *domain.SchemaError
	require.ErrorAs(t, err, &schema)
	assert.Equal(t, domain.ColNO2, schema.Field)
}
