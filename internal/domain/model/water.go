// Package model contains domain models passed between layers.
package model

import "strings"

// Group is the provenance/region tag of a water. It is distinct from the
// computed Category.
type Group string

// Known groups.
const (
	GroupRussia      Group = "Russia"
	GroupEurope      Group = "Europe"
	GroupTherapeutic Group = "Therapeutic"
)

// Category is the derived usage classification of a water.
type Category string

// Known categories.
const (
	CategoryDaily       Category = "Daily"
	CategoryRotate      Category = "Rotate"
	CategoryTherapeutic Category = "Therapeutic"
	CategoryUnknown     Category = "Unknown"
)

// SourceType describes where the label data came from.
type SourceType string

// Known source types.
const (
	SourceOfficial           SourceType = "official"
	SourceThirdPartyEstimate SourceType = "third-party-estimate"
	SourceApproximate        SourceType = "approximate"
	SourceSeed               SourceType = "seed"
)

// Confidence is the trust level of a record's data. It is independent of
// completeness and only used as a ranking tie-break.
type Confidence string

// Known confidence levels.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Rank orders confidence levels: high > medium > low.
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceHigh:
		return 2
	case ConfidenceMedium:
		return 1
	default:
		return 0
	}
}

// Profile is a named weighting scheme used by the scorer.
type Profile string

// Known profiles.
const (
	ProfileEveryday  Profile = "Everyday"
	ProfilePressure  Profile = "Pressure"
	ProfileSport     Profile = "Sport"
	ProfileSensitive Profile = "Sensitive"
	ProfileKid       Profile = "Kid"
)

// Profiles lists every known profile.
var Profiles = []Profile{ProfileEveryday, ProfilePressure, ProfileSport, ProfileSensitive, ProfileKid}

// Valid reports whether p is one of the known profiles.
func (p Profile) Valid() bool {
	for _, known := range Profiles {
		if p == known {
			return true
		}
	}
	return false
}

// ParseProfile maps a profile name (case-insensitive) to a known Profile.
func ParseProfile(s string) (Profile, bool) {
	s = strings.TrimSpace(s)
	for _, p := range Profiles {
		if strings.EqualFold(s, string(p)) {
			return p, true
		}
	}
	return "", false
}

// Water is the canonical water record. Metric fields are nil when unknown;
// an unknown value is never coerced to zero.
//
// The category is not stored here: it is always derived from Group, TDS and
// sodium by the classifier.
type Water struct {
	ID          string     `json:"id"`
	BrandName   string     `json:"brand_name"`
	CountryCode string     `json:"country_code,omitempty"`
	Flag        string     `json:"flag_emoji,omitempty"`
	Group       Group      `json:"group"`
	PH          *float64   `json:"ph"`
	TDS         *float64   `json:"tds_mg_l"`
	Calcium     *float64   `json:"ca_mg_l"`
	Magnesium   *float64   `json:"mg_mg_l"`
	Sodium      *float64   `json:"na_mg_l"`
	Potassium   *float64   `json:"k_mg_l"`
	Chloride    *float64   `json:"cl_mg_l"`
	Sparkling   *bool      `json:"sparkling"`
	SourceType  SourceType `json:"source_type"`
	Confidence  Confidence `json:"confidence_level"`
	Notes       string     `json:"notes,omitempty"`
}

// Value returns the value of metric m and whether it is known.
func (w Water) Value(m Metric) (float64, bool) {
	var p *float64
	switch m {
	case MetricCalcium:
		p = w.Calcium
	case MetricMagnesium:
		p = w.Magnesium
	case MetricPotassium:
		p = w.Potassium
	case MetricSodium:
		p = w.Sodium
	case MetricChloride:
		p = w.Chloride
	case MetricPH:
		p = w.PH
	case MetricTDS:
		p = w.TDS
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Known reports whether metric m has a value.
func (w Water) Known(m Metric) bool {
	_, ok := w.Value(m)
	return ok
}

// Coverage returns how many of the tracked metrics are known.
func (w Water) Coverage() Coverage {
	c := Coverage{Total: len(Metrics)}
	for _, m := range Metrics {
		if w.Known(m) {
			c.Count++
		}
	}
	return c
}

// HasMinimum reports whether every minimum metric (pH, TDS, Ca, Mg, Na, Cl)
// is known. Potassium is not part of the minimum set.
func (w Water) HasMinimum() bool {
	for _, m := range MinimumMetrics {
		if !w.Known(m) {
			return false
		}
	}
	return true
}

// Coverage is the count of known metrics out of the tracked total.
type Coverage struct {
	Count int
	Total int
}

// Missing returns the number of unknown metrics.
func (c Coverage) Missing() int { return c.Total - c.Count }

// Ratio returns Count/Total, or 0 for an empty total.
func (c Coverage) Ratio() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Count) / float64(c.Total)
}

// Float returns a pointer to v. Handy for building records in code.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }
