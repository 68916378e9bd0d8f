package domain

import "math"

// Aggregate scores and classifies every sample, drops points outside
// coverage, and joins each zone's rounded mean score back onto its points.
// Output preserves input order.
func Aggregate(samples []Sample) ([]EnrichedPoint, error) {
	points, _, err := AggregateZones(samples)
	return points, err
}

// AggregateZones is Aggregate that also returns the per-zone summaries in
// order of first appearance.
func AggregateZones(samples []Sample) ([]EnrichedPoint, []ZoneAggregate, error) {
	if len(samples) == 0 {
		return nil, nil, &SchemaError{Reason: "input contains no samples"}
	}

	// Scoring happens for every sample before the coverage filter.
	scored := make([]ScoredPoint, 0, len(samples))
	for i, s := range samples {
		if math.IsNaN(s.NO2Column) || math.IsInf(s.NO2Column, 0) {
			return nil, nil, &SchemaError{Field: "NO2_column", Row: i + 1, Reason: "value is not finite"}
		}
		scored = append(scored, ScoredPoint{
			Sample: s,
			Zone:   Classify(s.Latitude, s.Longitude),
			AQI:    Score(s.NO2Column),
		})
	}

	kept := scored[:0]
	for _, p := range scored {
		if p.Zone != OutsideCoverage {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return nil, nil, &EmptyResultError{Total: len(samples)}
	}

	zones := groupZones(kept)
	byZone := make(map[Zone]ZoneAggregate, len(zones))
	for _, z := range zones {
		byZone[z.Zone] = z
	}

	points := make([]EnrichedPoint, len(kept))
	for i, p := range kept {
		z := byZone[p.Zone]
		points[i] = EnrichedPoint{
			ScoredPoint: p,
			RiskScore:   z.MeanScore,
			RiskLevel:   z.RiskLevel,
		}
	}
	return points, zones, nil
}

func groupZones(points []ScoredPoint) []ZoneAggregate {
	type acc struct {
		sum   int64
		count int
	}
	var order []Zone
	sums := make(map[Zone]*acc)
	for _, p := range points {
		a, ok := sums[p.Zone]
		if !ok {
			a = &acc{}
			sums[p.Zone] = a
			order = append(order, p.Zone)
		}
		a.sum += int64(p.AQI)
		a.count++
	}

	zones := make([]ZoneAggregate, len(order))
	for i, z := range order {
		a := sums[z]
		mean := float64(a.sum) / float64(a.count)
		score := RoundScore(mean)
		zones[i] = ZoneAggregate{
			Zone:      z,
			Count:     a.count,
			Mean:      mean,
			MeanScore: score,
			RiskLevel: Level(float64(score)),
		}
	}
	return zones
}

// ZonesOf recovers one aggregate per zone from enriched points, keeping the
// first occurrence's score. Mean is the score since the raw mean is not
// carried on points.
func ZonesOf(points []EnrichedPoint) []ZoneAggregate {
	idx := make(map[Zone]int)
	var zones []ZoneAggregate
	for _, p := range points {
		if i, ok := idx[p.Zone]; ok {
			zones[i].Count++
			continue
		}
		idx[p.Zone] = len(zones)
		zones = append(zones, ZoneAggregate{
			Zone:      p.Zone,
			Count:     1,
			Mean:      float64(p.RiskScore),
			MeanScore: p.RiskScore,
			RiskLevel: p.RiskLevel,
		})
	}
	return zones
}

// OverallScore is the mean risk score over all rows, rounded like zone means.
// It reports false for an empty table.
func OverallScore(points []EnrichedPoint) (int, bool) {
	if len(points) == 0 {
		return 0, false
	}
	var sum int64
	for _, p := range points {
		sum += int64(p.RiskScore)
	}
	return RoundScore(float64(sum) / float64(len(points))), true
}
