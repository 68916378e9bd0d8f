package domain

import "math"

// NO2 column density band edges in molecules/cm².
const (
	moderateThreshold  = 1.5e16
	sensitiveThreshold = 2.8e16
	unhealthyThreshold = 1.0e17
)

// Score maps an NO2 column density to the AQI proxy score. The result is
// truncated toward zero. Negative and NaN densities score 0; very large
// densities saturate at math.MaxInt32.
func Score(no2 float64) int {
	if math.IsNaN(no2) || no2 <= 0 {
		return 0
	}

	var s float64
	switch {
	case no2 < moderateThreshold:
		s = no2 / moderateThreshold * 50
	case no2 < sensitiveThreshold:
		s = 50 + (no2-moderateThreshold)/(sensitiveThreshold-moderateThreshold)*50
	case no2 < unhealthyThreshold:
		s = 100 + (no2-sensitiveThreshold)/(unhealthyThreshold-sensitiveThreshold)*50
	default:
		s = 150 + (no2-unhealthyThreshold)/unhealthyThreshold*100
	}

	if s >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(s)
}
