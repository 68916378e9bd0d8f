// Package artifact renders an assessment into the dashboard's display files:
// the decision-support advisory document, bar chart data and a GeoJSON map.
package artifact

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/couchcryptid/tempo-aqi-etl/internal/domain"
)

// AdvisoryDocument is the decision-support payload.
type AdvisoryDocument struct {
	Zones []domain.AdvisoryRecord `json:"zones"`
}

// BuildAdvisoryDocument wraps the assessment's advisories.
func BuildAdvisoryDocument(a domain.Assessment) AdvisoryDocument {
	zones := a.Advisories
	if zones == nil {
		zones = []domain.AdvisoryRecord{}
	}
	return AdvisoryDocument{Zones: zones}
}

// Chart is the bar chart series of zone risk scores.
type Chart struct {
	LabelsTR []string `json:"labels_tr"`
	LabelsEN []string `json:"labels_en"`
	Values   []int    `json:"values"`
	Colors   []string `json:"colors"`
	TitleTR  string   `json:"title_tr"`
	TitleEN  string   `json:"title_en"`
	MaxValue int      `json:"max_value"`
}

const (
	chartTitleTR  = "TEMPO Bölgelerine Göre Ortalama AQI Skoru"
	chartTitleEN  = "Average AQI Score by TEMPO Zone"
	chartMaxValue = 200
)

// BuildChart lists one bar per zone, sorted by English zone name.
func BuildChart(zones []domain.ZoneAggregate) Chart {
	sorted := slices.Clone(zones)
	slices.SortStableFunc(sorted, func(a, b domain.ZoneAggregate) int {
		return cmp.Compare(a.Zone.String(), b.Zone.String())
	})

	c := Chart{
		LabelsTR: make([]string, 0, len(sorted)),
		LabelsEN: make([]string, 0, len(sorted)),
		Values:   make([]int, 0, len(sorted)),
		Colors:   make([]string, 0, len(sorted)),
		TitleTR:  chartTitleTR,
		TitleEN:  chartTitleEN,
		MaxValue: chartMaxValue,
	}
	for _, z := range sorted {
		c.LabelsTR = append(c.LabelsTR, z.Zone.NameTR())
		c.LabelsEN = append(c.LabelsEN, z.Zone.String())
		c.Values = append(c.Values, z.MeanScore)
		c.Colors = append(c.Colors, domain.Level(float64(z.MeanScore)).ChartColor())
	}
	return c
}

// Map view defaults: continental United States.
var (
	mapCenter = [2]float64{-95.0, 39.0}
	mapZoom   = 4
)

// FeatureCollection is a GeoJSON map of enriched points with view hints.
type FeatureCollection struct {
	Type     string     `json:"type"`
	Center   [2]float64 `json:"center"` // [lon, lat]
	Zoom     int        `json:"zoom"`
	Features []Feature  `json:"features"`
}

// Feature is one circle marker.
type Feature struct {
	Type       string        `json:"type"`
	Geometry   Geometry      `json:"geometry"`
	Properties MapProperties `json:"properties"`
}

// Geometry is a GeoJSON Point in [lon, lat] order.
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// MapProperties drive marker styling and popups.
type MapProperties struct {
	Zone        string `json:"zone"`
	AQI         int    `json:"aqi"`
	RiskScore   int    `json:"risk_score"`
	RiskLevel   string `json:"risk_level"`
	RiskLevelTR string `json:"risk_level_tr"`
	Color       string `json:"color"`
	Popup       string `json:"popup"`
}

// BuildMap converts every enriched point into a colored marker.
func BuildMap(points []domain.EnrichedPoint) FeatureCollection {
	fc := FeatureCollection{
		Type:     "FeatureCollection",
		Center:   mapCenter,
		Zoom:     mapZoom,
		Features: make([]Feature, 0, len(points)),
	}
	for _, p := range points {
		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: [2]float64{p.Longitude, p.Latitude},
			},
			Properties: MapProperties{
				Zone:        p.Zone.String(),
				AQI:         p.AQI,
				RiskScore:   p.RiskScore,
				RiskLevel:   p.RiskLevel.String(),
				RiskLevelTR: p.RiskLevel.LabelTR(),
				Color:       p.RiskLevel.MarkerColor(),
				Popup:       fmt.Sprintf("AQI: %d<br>Risk: %s", p.AQI, p.RiskLevel),
			},
		})
	}
	return fc
}
