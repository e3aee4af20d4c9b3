package repository

import (
	"strings"

	"github.com/okian/waterradar/internal/domain/model"
)

// Filter narrows a dataset listing. Zero values match everything.
type Filter struct {
	// Query is a case-insensitive brand-name substring.
	Query string
	// Group restricts to one group when set.
	Group model.Group
	// OnlyVerified keeps high-confidence records only.
	OnlyVerified bool
	// TDSMax drops records whose TDS exceeds it. Unknown TDS counts as 0.
	TDSMax *float64
}

// Match reports whether w passes every condition of f.
func (f Filter) Match(w model.Water) bool {
	if f.Group != "" && w.Group != f.Group {
		return false
	}
	if f.OnlyVerified && w.Confidence != model.ConfidenceHigh {
		return false
	}
	if f.TDSMax != nil {
		tds, _ := w.Value(model.MetricTDS)
		if tds > *f.TDSMax {
			return false
		}
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(w.BrandName), q) {
			return false
		}
	}
	return true
}
