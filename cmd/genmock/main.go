// Command genmock writes a deterministic NO2 sample grid covering the TEMPO
// field of regard and its surroundings. The output uses the short "no2"
// column name so the reader's alias handling is exercised, and includes cells
// outside every zone so coverage filtering is too.
//
// Usage:
//
//	go run ./cmd/genmock -out data/tempo_no2.csv -step 1 -seed 42
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"

	"github.com/couchcryptid/tempo-aqi-etl/internal/domain"
)

const (
	latMin, latMax = 5.0, 60.0
	lonMin, lonMax = -135.0, -35.0
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the sample CSV")
	step := flag.Float64("step", 1.0, "grid spacing in degrees")
	seed := flag.Uint64("seed", 42, "random seed for column densities")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *step <= 0 || math.IsNaN(*step) {
		return fmt.Errorf("-step must be positive, got %v", *step)
	}

	rows := grid(*step, rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15)))

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return err
	}
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{domain.ColLatitude, domain.ColLongitude, domain.ColNO2Alias}); err != nil {
		return err
	}
	inside := 0
	for _, s := range rows {
		if domain.Classify(s.Latitude, s.Longitude) != domain.OutsideCoverage {
			inside++
		}
		if err := w.Write([]string{
			strconv.FormatFloat(s.Latitude, 'f', -1, 64),
			strconv.FormatFloat(s.Longitude, 'f', -1, 64),
			strconv.FormatFloat(s.NO2Column, 'e', 4, 64),
		}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	log.Printf("wrote %d samples (%d inside coverage) to %s", len(rows), inside, *out)
	return f.Close()
}

// grid walks the bounding box row by row. Column densities are log-uniform
// between roughly 3e15 and 1.6e17 so every score band appears.
func grid(step float64, r *rand.Rand) []domain.Sample {
	nLat := int(math.Floor((latMax-latMin)/step)) + 1
	nLon := int(math.Floor((lonMax-lonMin)/step)) + 1
	samples := make([]domain.Sample, 0, nLat*nLon)
	for i := range nLat {
		lat := latMin + float64(i)*step
		for j := range nLon {
			lon := lonMin + float64(j)*step
			exp := 15.5 + 1.7*r.Float64()
			samples = append(samples, domain.Sample{
				Latitude:  round(lat),
				Longitude: round(lon),
				NO2Column: math.Pow(10, exp),
			})
		}
	}
	return samples
}

// round trims floating-point drift from repeated step additions.
func round(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
