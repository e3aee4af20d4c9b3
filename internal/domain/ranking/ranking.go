// Package ranking orders waters for comparison and picks the daily winner.
//
// Ordering: minimum-metrics first (hard rule), then score DESC, coverage
// DESC, confidence DESC, brand name ASC (locale-aware).
package ranking

import (
	"slices"
	"strings"
	"sync"

	"github.com/okian/waterradar/internal/domain/model"
	"github.com/okian/waterradar/internal/domain/scoring"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// RotationDays is the length of a rotation plan.
const RotationDays = 7

// Scored pairs a water with its score result.
type Scored struct {
	Water  model.Water
	Result scoring.Result
}

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithScorer sets the scorer used to rank.
func WithScorer(s scoring.Scorer) Option {
	return func(r *Ranker) {
		if s != nil {
			r.scorer = s
		}
	}
}

// WithLanguage sets the collation language for brand-name tie-breaks.
func WithLanguage(tag language.Tag) Option {
	return func(r *Ranker) {
		r.collator = collate.New(tag)
	}
}

// Ranker composes scorer output into a total order.
type Ranker struct {
	scorer scoring.Scorer

	// collate.Collator is not safe for concurrent use.
	mu       sync.Mutex
	collator *collate.Collator
}

// New creates a Ranker using the default weighted scorer and root-locale
// collation.
func New(opts ...Option) *Ranker {
	r := &Ranker{
		scorer:   scoring.NewWeightedScorer(),
		collator: collate.New(language.Und),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Scorer returns the scorer used by r.
func (r *Ranker) Scorer() scoring.Scorer { return r.scorer }

// Compare returns -1 if a ranks above b, 1 if below, 0 if tied.
func (r *Ranker) Compare(a, b model.Water, profile model.Profile) int {
	return r.compareScored(r.score(a, profile), r.score(b, profile))
}

// Sort returns ws ordered best first. The input is not modified.
func (r *Ranker) Sort(ws []model.Water, profile model.Profile) []Scored {
	out := make([]Scored, len(ws))
	for i, w := range ws {
		out[i] = r.score(w, profile)
	}
	slices.SortStableFunc(out, r.compareScored)
	return out
}

// PickWinner returns the best daily choice of selection. Therapeutic waters
// are excluded unless every selected water is therapeutic; when any candidate
// has the minimum metrics, only those stay eligible. It returns false for an
// empty selection.
func (r *Ranker) PickWinner(selection []model.Water, profile model.Profile) (Scored, bool) {
	if len(selection) == 0 {
		return Scored{}, false
	}
	scored := make([]Scored, len(selection))
	for i, w := range selection {
		scored[i] = r.score(w, profile)
	}

	pool := filter(scored, func(s Scored) bool {
		return s.Result.Category != model.CategoryTherapeutic
	})
	if len(pool) == 0 {
		pool = scored
	}
	if withMin := filter(pool, func(s Scored) bool { return s.Result.HasMinimum }); len(withMin) > 0 {
		pool = withMin
	}

	best := pool[0]
	for _, s := range pool[1:] {
		if r.compareScored(s, best) < 0 {
			best = s
		}
	}
	return best, true
}

// RotationDay is one day of a rotation plan.
type RotationDay struct {
	Day   int
	Water model.Water
}

// RotationPlan alternates the two best non-therapeutic waters over a week,
// falling back to the overall ranking when fewer than two qualify.
func (r *Ranker) RotationPlan(selection []model.Water, profile model.Profile) []RotationDay {
	sorted := r.Sort(selection, profile)
	if len(sorted) == 0 {
		return nil
	}
	safe := filter(sorted, func(s Scored) bool {
		return s.Result.Category != model.CategoryTherapeutic
	})

	first := pick(safe, sorted, 0, sorted[0])
	second := pick(safe, sorted, 1, first)

	plan := make([]RotationDay, 0, RotationDays)
	for day := 1; day <= RotationDays; day++ {
		w := first
		if day%2 == 0 {
			w = second
		}
		plan = append(plan, RotationDay{Day: day, Water: w.Water})
	}
	return plan
}

func pick(preferred, fallback []Scored, i int, last Scored) Scored {
	if i < len(preferred) {
		return preferred[i]
	}
	if i < len(fallback) {
		return fallback[i]
	}
	return last
}

func (r *Ranker) score(w model.Water, profile model.Profile) Scored {
	return Scored{Water: w, Result: r.scorer.Score(w, profile)}
}

func (r *Ranker) compareScored(a, b Scored) int {
	// Hard rule: complete minimum data always ranks first.
	if a.Result.HasMinimum != b.Result.HasMinimum {
		if a.Result.HasMinimum {
			return -1
		}
		return 1
	}
	if c := descending(a.Result.Score, b.Result.Score); c != 0 {
		return c
	}
	if c := descending(float64(a.Result.CoverageCount), float64(b.Result.CoverageCount)); c != 0 {
		return c
	}
	if c := descending(float64(a.Water.Confidence.Rank()), float64(b.Water.Confidence.Rank())); c != 0 {
		return c
	}
	return r.CompareNames(a.Water.BrandName, b.Water.BrandName)
}

// CompareNames orders brand names with the ranker's collation. Names the
// collator considers equal fall back to byte order.
func (r *Ranker) CompareNames(a, b string) int {
	r.mu.Lock()
	c := r.collator.CompareString(a, b)
	r.mu.Unlock()
	if c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func descending(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	}
	return 0
}

func filter(in []Scored, keep func(Scored) bool) []Scored {
	var out []Scored
	for _, s := range in {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}
