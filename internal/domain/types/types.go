// Package types contains report shapes shared by the service and renderers
package types

import (
	"github.com/okian/waterradar/internal/domain/achievements"
	"github.com/okian/waterradar/internal/domain/model"
	"github.com/okian/waterradar/internal/domain/ranking"
	"github.com/okian/waterradar/internal/domain/reference"
)

// Entry represents one ranked water in a report
type Entry struct {
	Rank          int                     `json:"rank"`
	WaterID       string                  `json:"water_id"`
	Brand         string                  `json:"brand_name"`
	Flag          string                  `json:"flag_emoji"`
	Group         model.Group             `json:"group"`
	Confidence    model.Confidence        `json:"confidence_level"`
	Score         float64                 `json:"score"`
	Category      model.Category          `json:"category"`
	CoverageCount int                     `json:"coverage_count"`
	CoverageTotal int                     `json:"coverage_total"`
	HasMinimum    bool                    `json:"has_minimum"`
	Reasons       []string                `json:"reasons"`
	Achievements  []string                `json:"achievements"`
	Statuses      map[model.Metric]string `json:"statuses"`
}

// RotationDay is one day of a weekly rotation plan
type RotationDay struct {
	Day     int    `json:"day"`
	WaterID string `json:"water_id"`
	Brand   string `json:"brand_name"`
}

// Report is the ranked comparison of a set of waters under one profile
type Report struct {
	Profile    model.Profile `json:"profile"`
	Entries    []Entry       `json:"entries"`
	Winner     *Entry        `json:"winner,omitempty"`
	Rotation   []RotationDay `json:"rotation,omitempty"`
	Comparable bool          `json:"comparable"`
	Missing    []string      `json:"missing,omitempty"`
}

// Stats summarizes the working state
type Stats struct {
	Waters       int `json:"waters"`
	Selected     int `json:"selected"`
	MaxSelection int `json:"max_selection"`
}

// NewEntry builds a report entry from a ranked water and its tags
func NewEntry(rank int, s ranking.Scored, tags []achievements.Tag) Entry {
	e := Entry{
		Rank:          rank,
		WaterID:       s.Water.ID,
		Brand:         s.Water.BrandName,
		Flag:          s.Water.Flag,
		Group:         s.Water.Group,
		Confidence:    s.Water.Confidence,
		Score:         s.Result.Score,
		Category:      s.Result.Category,
		CoverageCount: s.Result.CoverageCount,
		CoverageTotal: s.Result.CoverageTotal,
		HasMinimum:    s.Result.HasMinimum,
		Reasons:       append([]string(nil), s.Result.TopReasons...),
		Achievements:  make([]string, len(tags)),
		Statuses:      make(map[model.Metric]string, len(model.Metrics)),
	}
	for i, t := range tags {
		e.Achievements[i] = string(t)
	}
	for m, st := range reference.Statuses(s.Water) {
		e.Statuses[m] = string(st)
	}
	return e
}

// NewRotation converts a rotation plan into report rows
func NewRotation(plan []ranking.RotationDay) []RotationDay {
	out := make([]RotationDay, len(plan))
	for i, d := range plan {
		out[i] = RotationDay{Day: d.Day, WaterID: d.Water.ID, Brand: d.Water.BrandName}
	}
	return out
}
