package model

import "strings"

// Metric identifies one of the tracked label metrics.
type Metric string

// Tracked metrics.
const (
	MetricCalcium   Metric = "ca"
	MetricMagnesium Metric = "mg"
	MetricPotassium Metric = "k"
	MetricSodium    Metric = "na"
	MetricChloride  Metric = "cl"
	MetricPH        Metric = "ph"
	MetricTDS       Metric = "tds"
)

// Metrics lists the tracked metrics in scoring order.
var Metrics = []Metric{
	MetricCalcium,
	MetricMagnesium,
	MetricPotassium,
	MetricSodium,
	MetricChloride,
	MetricPH,
	MetricTDS,
}

// MinimumMetrics is the subset whose joint presence gives a record ranking
// precedence.
var MinimumMetrics = []Metric{
	MetricPH,
	MetricTDS,
	MetricCalcium,
	MetricMagnesium,
	MetricSodium,
	MetricChloride,
}

// ParseMetric maps a metric key (e.g. "na", case-insensitive) to a Metric.
func ParseMetric(s string) (Metric, bool) {
	s = strings.TrimSpace(s)
	for _, m := range Metrics {
		if strings.EqualFold(string(m), s) {
			return m, true
		}
	}
	return "", false
}
