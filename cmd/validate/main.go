// Command validate checks a risk snapshot produced by the pipeline for
// internal consistency: header layout, per-row recomputation of zone, AQI and
// risk level, and the per-zone score invariant. With -advisory it also checks
// that the advisory document agrees with the snapshot.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -snapshot data/tempo_aqi_risk.csv \
//	  -advisory static/aqi_action.json
package main

import (
	"bytes"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/couchcryptid/tempo-aqi-etl/internal/adapter/artifact"
	"github.com/couchcryptid/tempo-aqi-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/tempo-aqi-etl/internal/domain"
	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	snapshotPath := flag.String("snapshot", "", "path to the risk snapshot CSV")
	advisoryPath := flag.String("advisory", "", "optional path to the advisory JSON document")
	flag.Parse()

	if *snapshotPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*snapshotPath, *advisoryPath); code != 0 {
		os.Exit(code)
	}
}

func run(snapshotPath, advisoryPath string) int {
	fmt.Println("=== TEMPO AQI Snapshot Validation ===")
	fmt.Println()

	data, err := os.ReadFile(snapshotPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read snapshot: %v\n", err)
		return 1
	}
	points, err := csvfile.ReadSnapshot(bytes.NewReader(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: parse snapshot: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateHeader(data),
		validateRows(points),
		validateZones(points),
	}
	if advisoryPath != "" {
		phases = append(phases, validateAdvisory(advisoryPath, data))
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Rows: %d, zones: %d\n", len(points), len(domain.ZonesOf(points)))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phases ──

func validateHeader(data []byte) *phase {
	p := &phase{name: "Phase 1: Header layout"}
	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		p.errorf("read header: %v", err)
		return p
	}
	if !slices.Equal(header, domain.SnapshotColumns) {
		p.errorf("header %v, want %v", header, domain.SnapshotColumns)
	}
	return p
}

func validateRows(points []domain.EnrichedPoint) *phase {
	p := &phase{name: "Phase 2: Per-row recomputation"}
	for i, pt := range points {
		row := i + 1
		if pt.Zone == domain.OutsideCoverage {
			p.errorf("row %d: point outside coverage was not filtered", row)
		}
		if zone := domain.Classify(pt.Latitude, pt.Longitude); zone != pt.Zone {
			p.errorf("row %d: zone %q, recomputed %q", row, pt.Zone, zone)
		}
		if aqi := domain.Score(pt.NO2Column); aqi != pt.AQI {
			p.errorf("row %d: aqi %d, recomputed %d", row, pt.AQI, aqi)
		}
		if level := domain.Level(float64(pt.RiskScore)); level != pt.RiskLevel {
			p.errorf("row %d: risk_level %q, recomputed %q from risk_score %d", row, pt.RiskLevel, level, pt.RiskScore)
		}
	}
	return p
}

func validateZones(points []domain.EnrichedPoint) *phase {
	p := &phase{name: "Phase 3: Per-zone risk score invariant"}

	type acc struct {
		score, count int
		sum          int64
		mixed        bool
	}
	byZone := make(map[domain.Zone]*acc)
	var order []domain.Zone
	for _, pt := range points {
		a, ok := byZone[pt.Zone]
		if !ok {
			a = &acc{score: pt.RiskScore}
			byZone[pt.Zone] = a
			order = append(order, pt.Zone)
		}
		if pt.RiskScore != a.score {
			a.mixed = true
		}
		a.count++
		a.sum += int64(pt.AQI)
	}

	for _, z := range order {
		a := byZone[z]
		if a.mixed {
			p.errorf("zone %q: rows carry different risk_score values", z)
			continue
		}
		mean := domain.RoundScore(float64(a.sum) / float64(a.count))
		if mean != a.score {
			p.errorf("zone %q: risk_score %d, mean aqi over %d rows rounds to %d", z, a.score, a.count, mean)
		}
	}
	return p
}

func validateAdvisory(path string, snapshot []byte) *phase {
	p := &phase{name: "Phase 4: Advisory consistency"}

	raw, err := os.ReadFile(path)
	if err != nil {
		p.errorf("read advisory: %v", err)
		return p
	}
	var got artifact.AdvisoryDocument
	if err := json.Unmarshal(raw, &got); err != nil {
		p.errorf("parse advisory: %v", err)
		return p
	}

	scores, err := csvfile.ReadZoneScores(bytes.NewReader(snapshot))
	if err != nil {
		p.errorf("read zone scores: %v", err)
		return p
	}
	// Round-trip the expected document so fields without a JSON form compare equal.
	encoded, err := json.Marshal(artifact.BuildAdvisoryDocument(domain.Assessment{Advisories: domain.Advise(scores)}))
	if err != nil {
		p.errorf("encode expected advisory: %v", err)
		return p
	}
	var want artifact.AdvisoryDocument
	if err := json.Unmarshal(encoded, &want); err != nil {
		p.errorf("decode expected advisory: %v", err)
		return p
	}
	if diff := cmp.Diff(want, got); diff != "" {
		p.errorf("advisory does not match snapshot (-want +got):\n%s", diff)
	}
	return p
}
