// Package scoring computes a 0..100 suitability score for a water against a
// profile.
package scoring

import (
	"fmt"
	"math"
	"slices"

	"github.com/okian/waterradar/internal/domain/classify"
	"github.com/okian/waterradar/internal/domain/model"
	"github.com/okian/waterradar/internal/domain/reference"
)

// Scoring constants.
const (
	maxScore           = 100
	maxDeviation       = 3
	deviationScale     = 20
	missingPenalty     = 10
	minimumPenalty     = 20
	therapeuticPenalty = 40
	coverageFloor      = 0.55
	coverageSpan       = 0.45
	topMetricReasons   = 3
)

// Reason codes. Metric reasons are formatted as "METRIC_<key>", coverage as
// "COVERAGE_<count>_<total>".
const (
	ReasonMinimumMissing = "MIN_MISSING"
	reasonCoverageFmt    = "COVERAGE_%d_%d"
	reasonMetricFmt      = "METRIC_%s"
)

// Weights maps each metric to its importance.
type Weights map[model.Metric]float64

func (w Weights) clone() Weights {
	out := make(Weights, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// DefaultWeights returns the base weight table.
func DefaultWeights() Weights {
	return Weights{
		model.MetricCalcium:   1.0,
		model.MetricMagnesium: 1.0,
		model.MetricPotassium: 0.8,
		model.MetricSodium:    1.2,
		model.MetricChloride:  1.0,
		model.MetricPH:        0.4,
		model.MetricTDS:       0.6,
	}
}

// DefaultOverlays returns the per-profile weight overwrites. Metrics a
// profile does not mention keep the base weight. Exactly one profile is
// active per score, so overlays never compound.
func DefaultOverlays() map[model.Profile]Weights {
	return map[model.Profile]Weights{
		model.ProfilePressure: {
			model.MetricSodium:   1.8,
			model.MetricChloride: 1.4,
		},
		model.ProfileSport: {
			model.MetricSodium:    0.9,
			model.MetricPotassium: 1.0,
			model.MetricMagnesium: 1.2,
		},
		model.ProfileKid: {
			model.MetricSodium: 2.0,
			model.MetricTDS:    1.0,
		},
		model.ProfileSensitive: {
			model.MetricPH:  0.6,
			model.MetricTDS: 0.8,
		},
	}
}

// Part is the penalty contribution of one known metric.
type Part struct {
	Metric       model.Metric
	Deviation    float64
	Weight       float64
	Contribution float64
}

// Result contains the computed score for a water.
type Result struct {
	WaterID       string
	Score         float64
	Category      model.Category
	CoverageCount int
	CoverageTotal int
	HasMinimum    bool
	// TopReasons lists the minimum-missing flag (if any), a coverage summary,
	// then the three largest metric contributions.
	TopReasons []string
	// Parts holds every known metric's contribution, largest first.
	Parts []Part
}

// Scorer computes a score for a water under a profile.
type Scorer interface {
	Score(w model.Water, profile model.Profile) Result
}

// Option applies a configuration option to the WeightedScorer.
type Option func(*WeightedScorer)

// WithWeightsFromConfig overrides base weights and profile overlays from
// configuration maps keyed by metric ("na", "tds", ...) and profile name
// (case-insensitive).
// Unknown keys and non-positive weights are ignored.
func WithWeightsFromConfig(base map[string]float64, profiles map[string]map[string]float64) Option {
	return func(s *WeightedScorer) {
		for key, weight := range base {
			if m, ok := model.ParseMetric(key); ok && weight > 0 {
				s.base[m] = weight
			}
		}
		for name, overlay := range profiles {
			p, ok := model.ParseProfile(name)
			if !ok {
				continue
			}
			if s.overlays[p] == nil {
				s.overlays[p] = Weights{}
			}
			for key, weight := range overlay {
				if m, ok := model.ParseMetric(key); ok && weight > 0 {
					s.overlays[p][m] = weight
				}
			}
		}
	}
}

// WeightedScorer implements Scorer with the weighted deviation model.
type WeightedScorer struct {
	base     Weights
	overlays map[model.Profile]Weights
}

// NewWeightedScorer creates a scorer with the default weight tables.
func NewWeightedScorer(opts ...Option) *WeightedScorer {
	s := &WeightedScorer{
		base:     DefaultWeights(),
		overlays: DefaultOverlays(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Weights returns the effective weights for profile: the base table with the
// profile's overlay written over it.
func (s *WeightedScorer) Weights(profile model.Profile) Weights {
	w := s.base.clone()
	for m, v := range s.overlays[profile] {
		w[m] = v
	}
	return w
}

// Score computes the suitability score of w under profile.
func (s *WeightedScorer) Score(w model.Water, profile model.Profile) Result {
	weights := s.Weights(profile)
	cov := w.Coverage()
	hasMin := w.HasMinimum()

	parts := make([]Part, 0, len(model.Metrics))
	for _, m := range model.Metrics {
		x, ok := w.Value(m)
		if !ok {
			continue
		}
		dev := Deviation(m, x)
		parts = append(parts, Part{
			Metric:       m,
			Deviation:    dev,
			Weight:       weights[m],
			Contribution: dev * weights[m],
		})
	}

	score := float64(maxScore)
	for _, p := range parts {
		score -= p.Contribution * deviationScale
	}
	score -= float64(cov.Missing() * missingPenalty)
	if !hasMin {
		score -= minimumPenalty
	}
	// Dampen by coverage so a partial record cannot beat a complete one
	// through narrow excellence.
	score *= coverageFloor + coverageSpan*cov.Ratio()

	category := classify.Classify(w)
	if category == model.CategoryTherapeutic {
		score -= therapeuticPenalty
	}
	score = math.Max(0, math.Min(maxScore, score))

	slices.SortStableFunc(parts, func(a, b Part) int {
		switch {
		case a.Contribution > b.Contribution:
			return -1
		case a.Contribution < b.Contribution:
			return 1
		}
		return 0
	})

	reasons := make([]string, 0, 2+topMetricReasons)
	if !hasMin {
		reasons = append(reasons, ReasonMinimumMissing)
	}
	reasons = append(reasons, CoverageReason(cov))
	for i := 0; i < len(parts) && i < topMetricReasons; i++ {
		reasons = append(reasons, MetricReason(parts[i].Metric))
	}

	return Result{
		WaterID:       w.ID,
		Score:         score,
		Category:      category,
		CoverageCount: cov.Count,
		CoverageTotal: cov.Total,
		HasMinimum:    hasMin,
		TopReasons:    reasons,
		Parts:         parts,
	}
}

// Deviation returns the relative deviation of x from the per-liter reference
// of m, clamped to [0, 3]. TDS inside the dead zone deviates by zero.
func Deviation(m model.Metric, x float64) float64 {
	ref := reference.PerLiter(m)
	diff := math.Abs(x - ref)
	if m == model.MetricTDS && diff < reference.TDSDeadZone {
		return 0
	}
	denom := ref
	if denom == 0 {
		denom = 1
	}
	return math.Max(0, math.Min(maxDeviation, diff/denom))
}

// CoverageReason formats the coverage summary reason.
func CoverageReason(c model.Coverage) string {
	return fmt.Sprintf(reasonCoverageFmt, c.Count, c.Total)
}

// MetricReason formats the reason code for a metric.
func MetricReason(m model.Metric) string {
	return fmt.Sprintf(reasonMetricFmt, m)
}
