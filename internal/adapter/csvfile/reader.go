// Package csvfile reads NO2 sample tables and reads and writes the flat risk
// snapshot consumed by the map and chart adapters.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/tempo-aqi-etl/internal/domain"
)

// Reader loads samples from a CSV file on disk.
// It implements pipeline.Extractor.
type Reader struct {
	path   string
	logger *slog.Logger
}

// NewReader creates a Reader for the sample CSV at path.
func NewReader(path string, logger *slog.Logger) *Reader {
	return &Reader{path: path, logger: logger}
}

// Path returns the file the reader loads.
func (r *Reader) Path() string { return r.path }

// Extract reads every sample from the configured file.
func (r *Reader) Extract(ctx context.Context) ([]domain.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open samples: %w", err)
	}
	defer f.Close()

	samples, err := ReadSamples(f)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("samples read", "path", r.path, "samples", len(samples))
	return samples, nil
}

// ReadSamples parses a sample table with latitude, longitude and NO2_column
// (or no2) columns. Failures in the table itself are *domain.SchemaError.
func ReadSamples(in io.Reader) ([]domain.Sample, error) {
	cr := newCSVReader(in)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &domain.SchemaError{Reason: "input is empty"}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := domain.ResolveSampleColumns(header)
	if err != nil {
		return nil, err
	}

	var samples []domain.Sample
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}

		lat, err := parseField(rec, cols.Latitude, domain.ColLatitude, row)
		if err != nil {
			return nil, err
		}
		lon, err := parseField(rec, cols.Longitude, domain.ColLongitude, row)
		if err != nil {
			return nil, err
		}
		no2, err := parseField(rec, cols.NO2, domain.ColNO2, row)
		if err != nil {
			return nil, err
		}
		samples = append(samples, domain.Sample{Latitude: lat, Longitude: lon, NO2Column: no2})
	}

	if len(samples) == 0 {
		return nil, &domain.SchemaError{Reason: "input contains no samples"}
	}
	return samples, nil
}

// parseField reads a finite float from rec[i].
func parseField(rec []string, i int, field string, row int) (float64, error) {
	if i >= len(rec) {
		return 0, &domain.SchemaError{Field: field, Row: row, Reason: "value missing"}
	}
	s := strings.TrimSpace(rec[i])
	if s == "" {
		return 0, &domain.SchemaError{Field: field, Row: row, Reason: "value missing"}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &domain.SchemaError{Field: field, Row: row, Reason: fmt.Sprintf("invalid number %q", s)}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &domain.SchemaError{Field: field, Row: row, Reason: "value is not finite"}
	}
	return v, nil
}

func newCSVReader(in io.Reader) *csv.Reader {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	return cr
}
