package domain

import (
	"math"
	"slices"
)

// advisoryActions are the fixed recommendations per level, Turkish then
// English.
var advisoryActions = [...]struct{ tr, en []string }{
	RiskLow: {
		tr: []string{
			"Açık hava aktiviteleri serbest ve önerilir.",
			"Pencere/kapıları açmak güvenlidir.",
		},
		en: []string{
			"Outdoor activities are permitted and encouraged.",
			"Opening windows/doors is safe.",
		},
	},
	RiskModerate: {
		tr: []string{
			"Hassas gruplar (çocuklar, yaşlılar) uzun süreli açık hava aktivitesinden kaçınmalı.",
			"Hava kalitesi izlenmeye devam edilmeli.",
		},
		en: []string{
			"Sensitive groups should limit prolonged outdoor exertion.",
			"Air quality monitoring should continue.",
		},
	},
	RiskHigh: {
		tr: []string{
			"Astım/solunum problemi olanlar dışarı çıkmamalı.",
			"Herkes yoğun efordan kaçınmalı.",
			"Dışarıda N95/FFP2 maske kullanılması önerilir.",
		},
		en: []string{
			"Individuals with respiratory issues should stay indoors.",
			"Everyone should limit strenuous activity.",
			"Use of N95/FFP2 masks is recommended outdoors.",
		},
	},
	RiskVeryHigh: {
		tr: []string{
			"🚨 Zorunlu olmadıkça dışarı çıkmayın.",
			"Dışarıda maske kullanın.",
			"Pencere/kapıları kapalı tutun.",
			"Hava temizleyici (air purifier) kullanılması tavsiye edilir.",
		},
		en: []string{
			"🚨 Avoid going outdoors unless necessary.",
			"Use a mask outside.",
			"Keep windows and doors closed.",
			"Air purifier use is advised indoors.",
		},
	},
}

// Actions returns copies of the level's Turkish and English recommendations.
func (l RiskLevel) Actions() (tr, en []string) {
	if !l.valid() {
		return []string{}, []string{}
	}
	a := advisoryActions[l]
	return slices.Clone(a.tr), slices.Clone(a.en)
}

// AdvisoryScore normalizes a zone risk score for advisories: NaN becomes 0,
// the value is rounded half to even and clamped to [0, math.MaxInt32].
func AdvisoryScore(score float64) int {
	switch {
	case math.IsNaN(score) || score <= 0:
		return 0
	case score >= math.MaxInt32:
		return math.MaxInt32
	}
	return RoundScore(score)
}

// Advise builds one advisory per distinct zone key, keeping the first
// occurrence's score and the input order.
func Advise(scores []ZoneScore) []AdvisoryRecord {
	seen := make(map[string]struct{}, len(scores))
	records := make([]AdvisoryRecord, 0, len(scores))
	for _, zs := range scores {
		if _, ok := seen[zs.Key]; ok {
			continue
		}
		seen[zs.Key] = struct{}{}
		records = append(records, advise(zs))
	}
	return records
}

func advise(zs ZoneScore) AdvisoryRecord {
	score := AdvisoryScore(zs.RiskScore)
	level := Level(float64(score))
	levelTR, levelEN := level.HealthLabels()
	actionsTR, actionsEN := level.Actions()

	nameTR, nameEN := zs.Key, zs.Key
	if z, ok := ParseZone(zs.Key); ok {
		nameTR, nameEN = z.NameTR(), z.String()
	}

	return AdvisoryRecord{
		Zone:      zs.Key,
		Level:     level,
		NameTR:    nameTR,
		NameEN:    nameEN,
		RiskScore: score,
		LevelTR:   levelTR,
		LevelEN:   levelEN,
		ActionsTR: actionsTR,
		ActionsEN: actionsEN,
	}
}

// ScoresOf converts zone aggregates into advisory input.
func ScoresOf(zones []ZoneAggregate) []ZoneScore {
	scores := make([]ZoneScore, len(zones))
	for i, z := range zones {
		scores[i] = ZoneScore{Key: z.Zone.String(), RiskScore: float64(z.MeanScore)}
	}
	return scores
}
