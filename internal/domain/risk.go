package domain

import (
	"fmt"
	"math"
)

// RiskLevel is the ordinal air-quality category of a risk score.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskModerate
	RiskHigh
	RiskVeryHigh
)

// Level categorizes a score with inclusive upper bounds at 50, 100 and 150.
// NaN is treated as Low.
func Level(score float64) RiskLevel {
	switch {
	case math.IsNaN(score) || score <= 50:
		return RiskLow
	case score <= 100:
		return RiskModerate
	case score <= 150:
		return RiskHigh
	default:
		return RiskVeryHigh
	}
}

// riskLabels holds every display form of a level.
var riskLabels = [...]struct {
	snapshot string
	mapTR    string
	healthTR string
	healthEN string
	color    string
	marker   string
}{
	RiskLow:      {"Low", "Düşük", "İyi", "Good", "#00e400", "green"},
	RiskModerate: {"Moderate", "Orta", "Orta", "Moderate", "#ffff00", "orange"},
	RiskHigh:     {"High", "Yüksek", "Hassas Gruplar İçin Sağlıksız", "Unhealthy for Sensitive Groups", "#ff7e00", "red"},
	RiskVeryHigh: {"Very High", "Çok Yüksek", "Sağlıksız", "Unhealthy", "#ff0000", "darkred"},
}

func (l RiskLevel) valid() bool { return l >= RiskLow && l <= RiskVeryHigh }

// String returns the label written to the snapshot's risk_level column.
func (l RiskLevel) String() string {
	if !l.valid() {
		return fmt.Sprintf("RiskLevel(%d)", int(l))
	}
	return riskLabels[l].snapshot
}

// LabelTR returns the Turkish risk label shown on the map.
func (l RiskLevel) LabelTR() string {
	if !l.valid() {
		return l.String()
	}
	return riskLabels[l].mapTR
}

// HealthLabels returns the Turkish and English health-impact labels used in
// advisories.
func (l RiskLevel) HealthLabels() (tr, en string) {
	if !l.valid() {
		return l.String(), l.String()
	}
	return riskLabels[l].healthTR, riskLabels[l].healthEN
}

// ChartColor returns the hex color of the level's AQI band.
func (l RiskLevel) ChartColor() string {
	if !l.valid() {
		return "#808080"
	}
	return riskLabels[l].color
}

// MarkerColor returns the named map marker color of the level.
func (l RiskLevel) MarkerColor() string {
	if !l.valid() {
		return "gray"
	}
	return riskLabels[l].marker
}

// ParseRiskLevel resolves a snapshot risk_level label.
func ParseRiskLevel(s string) (RiskLevel, bool) {
	for l := range riskLabels {
		if riskLabels[l].snapshot == s {
			return RiskLevel(l), true
		}
	}
	return RiskLow, false
}

// RoundScore rounds a mean score half to even, the convention used for zone
// means and the overall summary.
func RoundScore(mean float64) int {
	return int(math.RoundToEven(mean))
}

func (l RiskLevel) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func (l *RiskLevel) UnmarshalText(b []byte) error {
	parsed, ok := ParseRiskLevel(string(b))
	if !ok {
		return fmt.Errorf("unknown risk level %q", b)
	}
	*l = parsed
	return nil
}
