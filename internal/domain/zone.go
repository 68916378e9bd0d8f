package domain

import "fmt"

// Zone identifies one of the fixed TEMPO coverage regions.
type Zone int

const (
	// OutsideCoverage is the zero value so an unclassified point is never
	// mistaken for a real region.
	OutsideCoverage Zone = iota
	Northwest
	NorthCentral
	Northeast
	Southwest
	SouthCentral
	Southeast
)

// zoneBox is a bounding box with per-edge inclusivity.
type zoneBox struct {
	zone                   Zone
	latMin, latMax         float64
	latMaxOpen             bool
	lonMin, lonMax         float64
	lonMinOpen, lonMaxOpen bool
}

// contains uses only positive comparisons so NaN never matches.
func (b zoneBox) contains(lat, lon float64) bool {
	latOK := lat >= b.latMin && (lat < b.latMax || (!b.latMaxOpen && lat == b.latMax))
	lonOK := (lon > b.lonMin || (!b.lonMinOpen && lon == b.lonMin)) &&
		(lon < b.lonMax || (!b.lonMaxOpen && lon == b.lonMax))
	return latOK && lonOK
}

// zoneBoxes are evaluated in order; the first match wins.
var zoneBoxes = []zoneBox{
	{zone: Northwest, latMin: 45, latMax: 55, lonMin: -130, lonMax: -100},
	{zone: NorthCentral, latMin: 40, latMax: 50, lonMin: -100, lonMax: -70, lonMinOpen: true},
	{zone: Northeast, latMin: 40, latMax: 50, lonMin: -70, lonMax: -40, lonMinOpen: true},
	{zone: Southwest, latMin: 30, latMax: 45, latMaxOpen: true, lonMin: -120, lonMax: -100},
	{zone: SouthCentral, latMin: 10, latMax: 40, latMaxOpen: true, lonMin: -100, lonMax: -70, lonMinOpen: true},
	{zone: Southeast, latMin: 25, latMax: 40, latMaxOpen: true, lonMin: -70, lonMax: -40, lonMinOpen: true},
}

// Classify maps a coordinate to its zone, or OutsideCoverage when no box
// contains it. NaN coordinates are always outside coverage.
func Classify(lat, lon float64) Zone {
	for _, b := range zoneBoxes {
		if b.contains(lat, lon) {
			return b.zone
		}
	}
	return OutsideCoverage
}

// Zones returns the covered zones in classification order.
func Zones() []Zone {
	zones := make([]Zone, len(zoneBoxes))
	for i, b := range zoneBoxes {
		zones[i] = b.zone
	}
	return zones
}

var zoneNames = map[Zone]struct{ en, tr string }{
	OutsideCoverage: {"Outside TEMPO Area", "TEMPO Alanı Dışında"},
	Northwest:       {"Northwest", "Kuzeybatı"},
	NorthCentral:    {"North Central", "Kuzey Orta"},
	Northeast:       {"Northeast", "Kuzeydoğu"},
	Southwest:       {"Southwest", "Güneybatı"},
	SouthCentral:    {"South Central", "Güney Orta"},
	Southeast:       {"Southeast", "Güneydoğu"},
}

// String returns the English zone name used in snapshots.
func (z Zone) String() string {
	if n, ok := zoneNames[z]; ok {
		return n.en
	}
	return fmt.Sprintf("Zone(%d)", int(z))
}

// NameTR returns the Turkish display name, falling back to the English key.
func (z Zone) NameTR() string {
	if n, ok := zoneNames[z]; ok && n.tr != "" {
		return n.tr
	}
	return z.String()
}

// ParseZone resolves an English zone name as written by the snapshot writer.
func ParseZone(name string) (Zone, bool) {
	for z, n := range zoneNames {
		if n.en == name {
			return z, true
		}
	}
	return OutsideCoverage, false
}

func (z Zone) MarshalText() ([]byte, error) { return []byte(z.String()), nil }

func (z *Zone) UnmarshalText(b []byte) error {
	parsed, ok := ParseZone(string(b))
	if !ok {
		return fmt.Errorf("unknown zone %q", b)
	}
	*z = parsed
	return nil
}
