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
	"path/filepath"
	"strconv"
	"strings"

	"github.com/couchcryptid/tempo-aqi-etl/internal/domain"
)

// SnapshotWriter persists the enriched point table as CSV.
// It implements pipeline.Loader.
type SnapshotWriter struct {
	path   string
	logger *slog.Logger
}

// NewSnapshotWriter creates a writer for the risk snapshot at path.
func NewSnapshotWriter(path string, logger *slog.Logger) *SnapshotWriter {
	return &SnapshotWriter{path: path, logger: logger}
}

// Load replaces the snapshot file with the assessment's points.
func (w *SnapshotWriter) Load(ctx context.Context, a domain.Assessment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := WriteSnapshot(f, a.Points); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	w.logger.Info("snapshot written", "path", w.path, "rows", len(a.Points), "run_id", a.RunID)
	return nil
}

// WriteSnapshot writes points with the fixed snapshot header.
func WriteSnapshot(out io.Writer, points []domain.EnrichedPoint) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(domain.SnapshotColumns); err != nil {
		return fmt.Errorf("write snapshot header: %w", err)
	}
	for _, p := range points {
		rec := []string{
			formatFloat(p.Latitude),
			formatFloat(p.Longitude),
			formatFloat(p.NO2Column),
			p.Zone.String(),
			strconv.Itoa(p.AQI),
			strconv.Itoa(p.RiskScore),
			p.RiskLevel.String(),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write snapshot row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush snapshot: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ReadZoneScores reads advisory input from a snapshot: one ZoneScore per
// distinct zone, first occurrence wins. Only zone and risk_score are
// required; an empty risk_score becomes NaN.
func ReadZoneScores(in io.Reader) ([]domain.ZoneScore, error) {
	cr := newCSVReader(in)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &domain.MissingColumnError{Columns: []string{domain.ColZone, domain.ColRiskScore}}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	zoneIdx, scoreIdx, err := domain.ResolveAdvisoryColumns(header)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var scores []domain.ZoneScore
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}
		key := cell(rec, zoneIdx)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		score := math.NaN()
		if s := cell(rec, scoreIdx); s != "" {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, &domain.SchemaError{Field: domain.ColRiskScore, Row: row, Reason: fmt.Sprintf("invalid number %q", s)}
			}
			score = v
		}
		scores = append(scores, domain.ZoneScore{Key: key, RiskScore: score})
	}
	return scores, nil
}

// ReadSnapshot parses a complete snapshot back into enriched points. Every
// snapshot column is required.
func ReadSnapshot(in io.Reader) ([]domain.EnrichedPoint, error) {
	cr := newCSVReader(in)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &domain.MissingColumnError{Columns: domain.SnapshotColumns}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	var missing []string
	for _, c := range domain.SnapshotColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.MissingColumnError{Columns: missing}
	}

	var points []domain.EnrichedPoint
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}
		p, err := parseSnapshotRow(rec, idx, row)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

func parseSnapshotRow(rec []string, idx map[string]int, row int) (domain.EnrichedPoint, error) {
	var p domain.EnrichedPoint
	var err error
	if p.Latitude, err = parseField(rec, idx[domain.ColLatitude], domain.ColLatitude, row); err != nil {
		return p, err
	}
	if p.Longitude, err = parseField(rec, idx[domain.ColLongitude], domain.ColLongitude, row); err != nil {
		return p, err
	}
	if p.NO2Column, err = parseField(rec, idx[domain.ColNO2], domain.ColNO2, row); err != nil {
		return p, err
	}

	zone, ok := domain.ParseZone(cell(rec, idx[domain.ColZone]))
	if !ok {
		return p, &domain.SchemaError{Field: domain.ColZone, Row: row, Reason: fmt.Sprintf("unknown zone %q", cell(rec, idx[domain.ColZone]))}
	}
	p.Zone = zone

	aqi, err := parseField(rec, idx[domain.ColAQI], domain.ColAQI, row)
	if err != nil {
		return p, err
	}
	p.AQI = int(aqi)

	score, err := parseField(rec, idx[domain.ColRiskScore], domain.ColRiskScore, row)
	if err != nil {
		return p, err
	}
	p.RiskScore = domain.AdvisoryScore(score)

	level, ok := domain.ParseRiskLevel(cell(rec, idx[domain.ColRiskLevel]))
	if !ok {
		return p, &domain.SchemaError{Field: domain.ColRiskLevel, Row: row, Reason: fmt.Sprintf("unknown risk level %q", cell(rec, idx[domain.ColRiskLevel]))}
	}
	p.RiskLevel = level
	return p, nil
}

func cell(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
