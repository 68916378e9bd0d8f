package domain

import "time"

// Sample is one observed grid cell as produced by the upstream reader.
type Sample struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	NO2Column float64 `json:"NO2_column"` // molecules/cm²
}

// ScoredPoint is a sample with its zone and own AQI proxy score.
type ScoredPoint struct {
	Sample
	Zone Zone `json:"zone"`
	AQI  int  `json:"aqi"`
}

// ZoneAggregate summarizes all scored points sharing a zone.
type ZoneAggregate struct {
	Zone      Zone      `json:"zone"`
	Count     int       `json:"count"`
	Mean      float64   `json:"mean"`       // unrounded mean AQI
	MeanScore int       `json:"risk_score"` // Mean rounded half to even
	RiskLevel RiskLevel `json:"risk_level"`
}

// EnrichedPoint is an output row: the point plus its zone's risk score and
// level. RiskLevel derives from RiskScore, not from AQI.
type EnrichedPoint struct {
	ScoredPoint
	RiskScore int       `json:"risk_score"`
	RiskLevel RiskLevel `json:"risk_level"`
}

// ZoneScore is the minimal advisory input: a zone key and its risk score.
// Key is the English zone name; unknown keys are carried through verbatim.
type ZoneScore struct {
	Key       string
	RiskScore float64
}

// AdvisoryRecord is the zone-level decision-support entry.
type AdvisoryRecord struct {
	Zone      string    `json:"-"`
	Level     RiskLevel `json:"-"`
	NameTR    string    `json:"name_tr"`
	NameEN    string    `json:"name_en"`
	RiskScore int       `json:"risk_score"`
	LevelTR   string    `json:"level_tr"`
	LevelEN   string    `json:"level_en"`
	ActionsTR []string  `json:"actions_tr"`
	ActionsEN []string  `json:"actions_en"`
}

// Assessment is the complete outcome of one pipeline run.
type Assessment struct {
	RunID       string
	GeneratedAt time.Time
	Samples     int
	Points      []EnrichedPoint
	Zones       []ZoneAggregate
	Advisories  []AdvisoryRecord
}

// NewAssessment stamps a run's outputs with the package clock.
func NewAssessment(runID string, samples int, points []EnrichedPoint, zones []ZoneAggregate, advisories []AdvisoryRecord) Assessment {
	return Assessment{
		RunID:       runID,
		GeneratedAt: clock.Now().UTC(),
		Samples:     samples,
		Points:      points,
		Zones:       zones,
		Advisories:  advisories,
	}
}

// OutsideCoverage returns how many samples were dropped by the zone filter.
func (a Assessment) OutsideCoverage() int {
	return a.Samples - len(a.Points)
}
