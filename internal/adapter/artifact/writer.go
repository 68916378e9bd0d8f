package artifact

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/tempo-aqi-etl/internal/domain"
	"github.com/goccy/go-json"
)

// Paths names the artifact files; an empty path skips that artifact.
type Paths struct {
	Advisory string
	Chart    string
	Map      string
}

// Writer renders assessments to JSON files on disk.
// It implements pipeline.Loader.
type Writer struct {
	paths  Paths
	logger *slog.Logger
}

// NewWriter creates an artifact writer for the given paths.
func NewWriter(paths Paths, logger *slog.Logger) *Writer {
	return &Writer{paths: paths, logger: logger}
}

// Load writes the advisory document, chart data and map for an assessment.
func (w *Writer) Load(ctx context.Context, a domain.Assessment) error {
	outputs := []struct {
		name string
		path string
		v    any
	}{
		{"advisory", w.paths.Advisory, BuildAdvisoryDocument(a)},
		{"chart", w.paths.Chart, BuildChart(a.Zones)},
		{"map", w.paths.Map, BuildMap(a.Points)},
	}

	for _, o := range outputs {
		if o.path == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeFile(o.path, o.v); err != nil {
			return fmt.Errorf("write %s artifact: %w", o.name, err)
		}
		w.logger.Info("artifact written", "artifact", o.name, "path", o.path, "run_id", a.RunID)
	}
	return nil
}

func writeFile(path string, v any) error {
	var buf bytes.Buffer
	if err := Encode(&buf, v); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// Encode writes v as indented JSON without HTML escaping, so map popups keep
// their markup and Turkish text stays readable.
func Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	return enc.Encode(v)
}
