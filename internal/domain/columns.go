package domain

import "strings"

// Column names of the input table and the risk snapshot.
const (
	ColLatitude  = "latitude"
	ColLongitude = "longitude"
	ColNO2       = "NO2_column"
	ColNO2Alias  = "no2"
	ColZone      = "zone"
	ColAQI       = "aqi"
	ColRiskScore = "risk_score"
	ColRiskLevel = "risk_level"
)

// SnapshotColumns is the exact column order of the risk snapshot.
var SnapshotColumns = []string{ColLatitude, ColLongitude, ColNO2, ColZone, ColAQI, ColRiskScore, ColRiskLevel}

// SampleColumns holds the header positions of the sample fields.
type SampleColumns struct {
	Latitude  int
	Longitude int
	NO2       int
}

// ResolveSampleColumns locates the required sample columns in a header.
// "no2" is accepted when "NO2_column" is absent.
func ResolveSampleColumns(header []string) (SampleColumns, error) {
	idx := headerIndex(header)
	if len(idx) == 0 {
		return SampleColumns{}, &SchemaError{Reason: "input has no header"}
	}

	no2, ok := idx[ColNO2]
	if !ok {
		no2, ok = idx[ColNO2Alias]
	}
	if !ok {
		return SampleColumns{}, &SchemaError{Field: ColNO2, Reason: "required column missing"}
	}
	lat, ok := idx[ColLatitude]
	if !ok {
		return SampleColumns{}, &SchemaError{Field: ColLatitude, Reason: "required column missing"}
	}
	lon, ok := idx[ColLongitude]
	if !ok {
		return SampleColumns{}, &SchemaError{Field: ColLongitude, Reason: "required column missing"}
	}
	return SampleColumns{Latitude: lat, Longitude: lon, NO2: no2}, nil
}

// ResolveAdvisoryColumns locates the zone and risk_score columns, reporting
// every missing one.
func ResolveAdvisoryColumns(header []string) (zone, riskScore int, err error) {
	idx := headerIndex(header)
	var missing []string
	zone, okZone := idx[ColZone]
	if !okZone {
		missing = append(missing, ColZone)
	}
	riskScore, okScore := idx[ColRiskScore]
	if !okScore {
		missing = append(missing, ColRiskScore)
	}
	if len(missing) > 0 {
		return 0, 0, &MissingColumnError{Columns: missing}
	}
	return zone, riskScore, nil
}

// headerIndex maps trimmed, non-empty column names to their first position.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			continue
		}
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	return idx
}
