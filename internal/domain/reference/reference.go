// Package reference holds the physiological daily reference values the
// scorer measures waters against.
package reference

import (
	"math"

	"github.com/okian/waterradar/internal/domain/model"
)

const (
	// LitersPerDay converts daily mineral references to a per-liter value.
	LitersPerDay = 2

	// TDSDeadZone is the absolute TDS difference (mg/L) below which the
	// deviation counts as zero.
	TDSDeadZone = 150

	dailyStatusMax  = 0.25
	rotateStatusMax = 0.7
)

// Entry describes one metric of the reference table.
type Entry struct {
	Metric model.Metric
	Title  string
	Short  string
	Unit   string
	// Daily is the EU daily reference for minerals (mg/day) or the direct
	// target for pH and TDS.
	Daily float64
	// PerDay is true when Daily is a daily intake to be spread over
	// LitersPerDay.
	PerDay bool
}

var table = map[model.Metric]Entry{
	model.MetricCalcium: {
		Metric: model.MetricCalcium, Title: "Calcium (Ca²⁺)", Unit: "mg/day",
		Short: "Key mineral for bones, teeth, and muscle contraction.", Daily: 800, PerDay: true,
	},
	model.MetricMagnesium: {
		Metric: model.MetricMagnesium, Title: "Magnesium (Mg²⁺)", Unit: "mg/day",
		Short: "Important for nerves and muscles.", Daily: 375, PerDay: true,
	},
	model.MetricPotassium: {
		Metric: model.MetricPotassium, Title: "Potassium (K⁺)", Unit: "mg/day",
		Short: "Supports heart function and electrolyte balance.", Daily: 2000, PerDay: true,
	},
	model.MetricSodium: {
		Metric: model.MetricSodium, Title: "Sodium (Na⁺)", Unit: "mg/day",
		Short: "Affects blood pressure and fluid retention.", Daily: 1500, PerDay: true,
	},
	model.MetricChloride: {
		Metric: model.MetricChloride, Title: "Chloride (Cl⁻)", Unit: "mg/day",
		Short: "Part of electrolyte balance.", Daily: 800, PerDay: true,
	},
	model.MetricPH: {
		Metric: model.MetricPH, Title: "pH",
		Short: "Measures acidity/alkalinity.", Daily: 7.5,
	},
	model.MetricTDS: {
		Metric: model.MetricTDS, Title: "Mineralization (TDS)", Unit: "mg/L",
		Short: "Total dissolved solids (overall mineral load).", Daily: 150,
	},
}

// Lookup returns the reference entry for m.
func Lookup(m model.Metric) (Entry, bool) {
	e, ok := table[m]
	return e, ok
}

// Daily returns the raw daily reference for m, or 0 for an unknown metric.
func Daily(m model.Metric) float64 {
	return table[m].Daily
}

// PerLiter returns the per-liter reference used for scoring. Minerals are
// divided by LitersPerDay; pH and TDS are used directly.
func PerLiter(m model.Metric) float64 {
	e, ok := table[m]
	if !ok {
		return 0
	}
	if e.PerDay {
		return e.Daily / LitersPerDay
	}
	return e.Daily
}

// Status is a coarse per-metric label shown next to a value.
type Status string

// Metric statuses.
const (
	StatusDaily       Status = "daily"
	StatusRotate      Status = "rotate"
	StatusTherapeutic Status = "therapeutic"
	StatusUnknown     Status = "unknown"
)

// MetricStatus labels a single value by its deviation ratio against the raw
// daily reference. TDS inside the dead zone is always daily.
func MetricStatus(m model.Metric, value *float64) Status {
	if value == nil {
		return StatusUnknown
	}
	ref := Daily(m)
	denom := ref
	if denom == 0 {
		denom = 1
	}
	ratio := math.Abs(*value-ref) / denom
	if m == model.MetricTDS && math.Abs(*value-ref) < TDSDeadZone {
		ratio = 0
	}
	switch {
	case ratio <= dailyStatusMax:
		return StatusDaily
	case ratio <= rotateStatusMax:
		return StatusRotate
	default:
		return StatusTherapeutic
	}
}

// Statuses returns the status of every tracked metric of w.
func Statuses(w model.Water) map[model.Metric]Status {
	out := make(map[model.Metric]Status, len(model.Metrics))
	for _, m := range model.Metrics {
		v, ok := w.Value(m)
		if !ok {
			out[m] = StatusUnknown
			continue
		}
		out[m] = MetricStatus(m, &v)
	}
	return out
}
