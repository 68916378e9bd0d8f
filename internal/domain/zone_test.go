package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		expected Zone
	}{
		{"northwest interior", 50, -115, Northwest},
		{"northwest south-west corner", 45, -130, Northwest},
		{"northwest north-east corner", 55, -100, Northwest},
		{"northwest wins shared edge", 45, -100, Northwest},
		{"north central interior", 45, -85, NorthCentral},
		{"north central east edge inclusive", 40, -70, NorthCentral},
		{"north central west edge exclusive", 42, -100, Southwest},
		{"northeast interior", 45, -69.5, Northeast},
		{"northeast east edge inclusive", 50, -40, Northeast},
		{"southwest interior", 35, -110, Southwest},
		{"southwest corner", 30, -120, Southwest},
		{"southwest just below 45", 44.999, -105, Southwest},
		{"south central interior", 20, -90, SouthCentral},
		{"south central south-east corner", 10, -70, SouthCentral},
		{"south central top edge exclusive", 40, -90, NorthCentral},
		{"southeast interior", 30, -55, Southeast},
		{"southeast corner", 25, -40, Southeast},
		{"southeast top edge exclusive", 40, -55, Northeast},
		{"too far north", 60, -110, OutsideCoverage},
		{"pacific", 47, -135, OutsideCoverage},
		{"west of southwest", 35, -125, OutsideCoverage},
		{"too far south", 5, -90, OutsideCoverage},
		{"atlantic gap", 24, -50, OutsideCoverage},
		{"east of coverage", 45, -39, OutsideCoverage},
		{"NaN latitude", math.NaN(), -90, OutsideCoverage},
		{"NaN longitude", 45, math.NaN(), OutsideCoverage},
		{"infinite latitude", math.Inf(1), -90, OutsideCoverage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.lat, tt.lon))
		})
	}
}

func TestZoneBoxesMutuallyExclusive(t *testing.T) {
	for lat := 0.0; lat <= 60; lat += 0.25 {
		for lon := -140.0; lon <= -30; lon += 0.25 {
			matches := 0
			for _, b := range zoneBoxes {
				if b.contains(lat, lon) {
					matches++
				}
			}
			if matches > 1 {
				t.Fatalf("(%v, %v) matched %d zones", lat, lon, matches)
			}
		}
	}
}

func TestZoneNames(t *testing.T) {
	assert.Equal(t, "North Central", NorthCentral.String())
	assert.Equal(t, "Kuzey Orta", NorthCentral.NameTR())
	assert.Equal(t, "Güneydoğu", Southeast.NameTR())
	assert.Equal(t, "Outside TEMPO Area", OutsideCoverage.String())
	assert.Equal(t, "Zone(42)", Zone(42).String())
	assert.Equal(t, "Zone(42)", Zone(42).NameTR())

	for _, z := range Zones() {
		parsed, ok := ParseZone(z.String())
		assert.True(t, ok, z.String())
		assert.Equal(t, z, parsed)
	}

	_, ok := ParseZone("Atlantis")
	assert.False(t, ok)
}

func TestZonesOrder(t *testing.T) {
	assert.Equal(t,
		[]Zone{Northwest, NorthCentral, Northeast, Southwest, SouthCentral, Southeast},
		Zones(),
	)
}

func TestZoneText(t *testing.T) {
	b, err := SouthCentral.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "South Central", string(b))

	var z Zone
	assert.NoError(t, z.UnmarshalText([]byte("Northeast")))
	assert.Equal(t, Northeast, z)
	assert.Error(t, z.UnmarshalText([]byte("nowhere")))
}
