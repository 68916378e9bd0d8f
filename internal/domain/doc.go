// Package domain models TEMPO tropospheric NO2 observations and the zonal
// air-quality assessment derived from them.
//
// # Data Source
//
// Samples originate from NASA TEMPO Level-3 NO2 granules. The upstream reader
// flattens the product's vertical_column_troposphere grid into one row per
// finite cell: latitude, longitude and the column density in molecules/cm².
// Older exports name the density column "no2" instead of "NO2_column"; both
// are accepted.
//
// # Zones
//
// Coverage is split into six fixed rectangular boxes over North America,
// checked in declaration order, first match wins:
//
//	Northwest      lat [45,55]  lon [-130,-100]
//	North Central  lat [40,50]  lon (-100,-70]
//	Northeast      lat [40,50]  lon (-70,-40]
//	Southwest      lat [30,45)  lon [-120,-100]
//	South Central  lat [10,40)  lon (-100,-70]
//	Southeast      lat [25,40)  lon (-70,-40]
//
// Anything else is [OutsideCoverage] and is dropped before aggregation.
//
// # AQI Proxy Score
//
// The column density maps onto an AQI-like integer through four linear bands.
// The scale is a project-specific approximation, not a regulatory AQI:
//
//	< 1.5e16            0..50
//	[1.5e16, 2.8e16)    50..100
//	[2.8e16, 1.0e17)    100..150
//	>= 1.0e17           150 + 100 per additional 1.0e17
//
// Scores are truncated toward zero. Negative densities (retrieval noise)
// score 0.
//
// # Risk Levels
//
// A zone's risk score is the mean point score rounded half to even. Levels
// use inclusive upper bounds: <=50 Low, <=100 Moderate, <=150 High, else
// Very High. Every point inherits its zone's score and level, never its own.
package domain
