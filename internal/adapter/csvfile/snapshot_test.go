package csvfile

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/couchcryptid/tempo-aqi-etl/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPoints(t *testing.T) []domain.EnrichedPoint {
	t.Helper()
	points, err := domain.Aggregate([]domain.Sample{
		{Latitude: 47, Longitude: -110, NO2Column: 1.0e16},
		{Latitude: 47, Longitude: -110, NO2Column: 2.0e16},
		{Latitude: 60, Longitude: -110, NO2Column: 2.0e16},
		{Latitude: 20.125, Longitude: -90.5, NO2Column: 1.2e17},
	})
	require.NoError(t, err)
	return points
}

func TestWriteSnapshot(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, testPoints(t)))

	expected := strings.Join([]string{
		"latitude,longitude,NO2_column,zone,aqi,risk_score,risk_level",
		"47,-110,1e+16,Northwest,33,51,Moderate",
		"47,-110,2e+16,Northwest,69,51,Moderate",
		"20.125,-90.5,1.2e+17,South Central,170,170,Very High",
		"",
	}, "\n")
	assert.Equal(t, expected, buf.String())
}

func TestSnapshotRoundTrip(t *testing.T) {
	points := testPoints(t)
	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, points))

	read, err := ReadSnapshot(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(points, read); diff != "" {
		t.Fatalf("snapshot round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReadSnapshot_MissingColumns(t *testing.T) {
	_, err := ReadSnapshot(strings.NewReader("latitude,longitude,NO2_column,zone\n"))
	var missingErr *domain.MissingColumnError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, []string{domain.ColAQI, domain.ColRiskScore, domain.ColRiskLevel}, missingErr.Columns)
}

func TestReadSnapshot_UnknownZone(t *testing.T) {
	in := "latitude,longitude,NO2_column,zone,aqi,risk_score,risk_level\n1,2,3,Atlantis,4,5,Low\n"
	_, err := ReadSnapshot(strings.NewReader(in))
	var schemaErr *domain.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, domain.ColZone, schemaErr.Field)
}

func TestReadZoneScores(t *testing.T) {
	in := strings.Join([]string{
		"zone,risk_score,extra",
		"Northwest,51.0,x",
		"Northwest,51.0,y",
		"Southeast,,z",
		"Gulf Coast,-4,w",
	}, "\n")

	scores, err := ReadZoneScores(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, domain.ZoneScore{Key: "Northwest", RiskScore: 51}, scores[0])
	assert.Equal(t, "Southeast", scores[1].Key)
	assert.True(t, math.IsNaN(scores[1].RiskScore))
	assert.Equal(t, domain.ZoneScore{Key: "Gulf Coast", RiskScore: -4}, scores[2])

	records := domain.Advise(scores)
	assert.Equal(t, 0, records[1].RiskScore)
	assert.Equal(t, 0, records[2].RiskScore)
	assert.Equal(t, "Gulf Coast", records[2].NameTR)
}

func TestReadZoneScores_MissingColumns(t *testing.T) {
	for _, in := range []string{"", "latitude,longitude\n1,2\n"} {
		_, err := ReadZoneScores(strings.NewReader(in))
		var missingErr *domain.MissingColumnError
		require.ErrorAs(t, err, &missingErr)
		assert.Equal(t, []string{domain.ColZone, domain.ColRiskScore}, missingErr.Columns)
	}
}

func TestReadZoneScores_InvalidScore(t *testing.T) {
	_, err := ReadZoneScores(strings.NewReader("zone,risk_score\nNorthwest,high\n"))
	assert.Equal(t, domain.KindSchema, domain.ErrorKind(err))
}

func TestSnapshotWriter_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "tempo_aqi_risk.csv")
	w := NewSnapshotWriter(path, discardLogger())

	a := domain.Assessment{RunID: "run-1", Points: testPoints(t)}
	require.NoError(t, w.Load(context.Background(), a))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	read, err := ReadSnapshot(f)
	require.NoError(t, err)
	assert.Len(t, read, 3)
}
