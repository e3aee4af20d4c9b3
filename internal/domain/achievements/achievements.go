// Package achievements tags waters with presentation badges. Tags are
// independent of scoring and ranking.
package achievements

import (
	"math"

	"github.com/okian/waterradar/internal/domain/classify"
	"github.com/okian/waterradar/internal/domain/model"
)

// Tag identifies an achievement.
type Tag string

// Built-in tags.
const (
	TagDaily       Tag = "daily"
	TagTherapeutic Tag = "therapeutic"
	TagSport       Tag = "sport"
	TagCoffee      Tag = "coffee"
	TagSparkling   Tag = "sparkling"
	TagStill       Tag = "still"
)

// Predicate decides whether a water earns a tag.
type Predicate func(w model.Water) bool

// Rule couples a tag with its predicate and a human readable reason.
type Rule struct {
	Tag    Tag
	When   Predicate
	Reason string
}

// Registry evaluates rules in registration order.
type Registry struct {
	rules []Rule
}

// NewRegistry creates a registry with the given rules.
func NewRegistry(rules ...Rule) *Registry {
	r := &Registry{}
	for _, rule := range rules {
		r.Register(rule)
	}
	return r
}

// Default returns a registry holding the built-in rules.
func Default() *Registry {
	return NewRegistry(
		Rule{Tag: TagDaily, When: isCategory(model.CategoryDaily), Reason: "Water category = Daily."},
		Rule{Tag: TagTherapeutic, When: isCategory(model.CategoryTherapeutic), Reason: "Water category = Therapeutic (high minerals/salts)."},
		Rule{Tag: TagSport, When: sport, Reason: "Higher electrolytes: Na≥20 or Mg≥20 or K≥2 mg/L."},
		Rule{Tag: TagCoffee, When: coffee, Reason: "For coffee: TDS < 100, pH near 7.5, still water, and low key minerals."},
		Rule{Tag: TagSparkling, When: func(w model.Water) bool { return w.Sparkling != nil && *w.Sparkling }, Reason: "Marked as sparkling."},
		Rule{Tag: TagStill, When: func(w model.Water) bool { return w.Sparkling != nil && !*w.Sparkling }, Reason: "Marked as still."},
	)
}

// Register appends a rule. Rules with a nil predicate are ignored.
func (r *Registry) Register(rule Rule) {
	if rule.When == nil || rule.Tag == "" {
		return
	}
	r.rules = append(r.rules, rule)
}

// Evaluate returns the rules w satisfies, one per tag, in registration order.
func (r *Registry) Evaluate(w model.Water) []Rule {
	var out []Rule
	seen := make(map[Tag]bool)
	for _, rule := range r.rules {
		if seen[rule.Tag] || !rule.When(w) {
			continue
		}
		seen[rule.Tag] = true
		out = append(out, rule)
	}
	return out
}

// Tags is Evaluate reduced to tag names.
func (r *Registry) Tags(w model.Water) []Tag {
	rules := r.Evaluate(w)
	out := make([]Tag, len(rules))
	for i, rule := range rules {
		out[i] = rule.Tag
	}
	return out
}

func isCategory(c model.Category) Predicate {
	return func(w model.Water) bool { return classify.Classify(w) == c }
}

// sport treats unknown electrolytes as zero.
func sport(w model.Water) bool {
	return orZero(w.Sodium) >= 20 || orZero(w.Magnesium) >= 20 || orZero(w.Potassium) >= 2
}

func coffee(w model.Water) bool {
	if w.Sparkling == nil || *w.Sparkling {
		return false
	}
	for _, m := range model.Metrics {
		if !w.Known(m) {
			return false
		}
	}
	return math.Abs(*w.PH-7.5) <= 0.3 &&
		*w.TDS < 100 &&
		*w.Calcium <= 30 &&
		*w.Magnesium <= 10 &&
		*w.Sodium <= 20 &&
		*w.Potassium <= 2 &&
		*w.Chloride <= 30
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
