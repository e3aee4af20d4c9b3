// Package classify maps a water record to its usage category.
package classify

import "github.com/okian/waterradar/internal/domain/model"

// Category thresholds (mg/L).
const (
	TherapeuticTDS    = 1500
	TherapeuticSodium = 200
	RotateTDS         = 500
	RotateSodium      = 50
)

// Classify returns the category of w. First match wins:
//  1. group Therapeutic
//  2. TDS >= 1500 or sodium >= 200 -> Therapeutic
//  3. TDS >= 500 or sodium >= 50 -> Rotate
//  4. TDS and sodium both unknown -> Unknown
//  5. Daily
//
// An unknown value never triggers a threshold. The result is derived on every
// call and never stored on the record.
func Classify(w model.Water) model.Category {
	if w.Group == model.GroupTherapeutic {
		return model.CategoryTherapeutic
	}
	if atLeast(w.TDS, TherapeuticTDS) || atLeast(w.Sodium, TherapeuticSodium) {
		return model.CategoryTherapeutic
	}
	if atLeast(w.TDS, RotateTDS) || atLeast(w.Sodium, RotateSodium) {
		return model.CategoryRotate
	}
	if w.TDS == nil && w.Sodium == nil {
		return model.CategoryUnknown
	}
	return model.CategoryDaily
}

// IsTherapeutic is shorthand for Classify(w) == Therapeutic.
func IsTherapeutic(w model.Water) bool {
	return Classify(w) == model.CategoryTherapeutic
}

func atLeast(v *float64, threshold float64) bool {
	return v != nil && *v >= threshold
}
