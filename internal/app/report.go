package service

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/waterradar/internal/domain/classify"
	"github.com/okian/waterradar/internal/domain/model"
	"github.com/okian/waterradar/internal/domain/scoring"
	"github.com/okian/waterradar/internal/domain/selection"
	"github.com/okian/waterradar/internal/domain/types"
	"github.com/okian/waterradar/pkg/logger"
	"github.com/okian/waterradar/pkg/metrics"
)

// Report ranks ids under profile. With no ids the current selection is used.
// Ids missing from the dataset are listed in Report.Missing.
func (s *Service) Report(ctx context.Context, profile model.Profile, ids ...string) (types.Report, error) {
	ds, sel, err := s.components()
	if err != nil {
		return types.Report{}, err
	}
	p, err := s.profile(profile)
	if err != nil {
		return types.Report{}, fmt.Errorf("%w: %q", err, profile)
	}
	if len(ids) == 0 {
		ids = sel.IDs()
	}
	if len(ids) == 0 {
		return types.Report{}, ErrEmptySelection
	}

	start := time.Now()
	found, missing := ds.GetMany(ctx, ids)

	report := types.Report{
		Profile:    p,
		Entries:    make([]types.Entry, 0, len(found)),
		Comparable: len(found) >= selection.MinCompare,
		Missing:    missing,
	}
	for i, sc := range s.ranker.Sort(found, p) {
		metrics.RecordScore(string(p), sc.Result.Score)
		report.Entries = append(report.Entries, types.NewEntry(i+1, sc, s.badges.Tags(sc.Water)))
	}
	if best, ok := s.ranker.PickWinner(found, p); ok {
		for i := range report.Entries {
			if report.Entries[i].WaterID == best.Water.ID {
				w := report.Entries[i]
				report.Winner = &w
				break
			}
		}
	}
	report.Rotation = types.NewRotation(s.ranker.RotationPlan(found, p))

	ms := float64(time.Since(start).Microseconds()) / 1000
	metrics.RecordReportDuration(ms)
	s.logger.Debug(ctx, "report built",
		logger.String("profile", string(p)),
		logger.Int("entries", len(report.Entries)),
		logger.Int("missing", len(missing)),
		logger.Float64("durationMs", ms),
	)
	return report, nil
}

// Winner returns the best daily choice among ids (or the selection).
func (s *Service) Winner(ctx context.Context, profile model.Profile, ids ...string) (types.Entry, error) {
	report, err := s.Report(ctx, profile, ids...)
	if err != nil {
		return types.Entry{}, err
	}
	if report.Winner == nil {
		return types.Entry{}, ErrEmptySelection
	}
	return *report.Winner, nil
}

// Score scores one water under profile.
func (s *Service) Score(ctx context.Context, id string, profile model.Profile) (scoring.Result, error) {
	if _, _, err := s.components(); err != nil {
		return scoring.Result{}, err
	}
	p, err := s.profile(profile)
	if err != nil {
		return scoring.Result{}, fmt.Errorf("%w: %q", err, profile)
	}
	w, err := s.Water(ctx, id)
	if err != nil {
		return scoring.Result{}, err
	}
	r := s.scorer.Score(w, p)
	metrics.RecordScore(string(p), r.Score)
	return r, nil
}

// Classification is the category and badges of one water.
type Classification struct {
	Water        model.Water
	Category     model.Category
	Achievements []string
}

// Classify returns the category and badges of ids, in the given order.
func (s *Service) Classify(ctx context.Context, ids ...string) ([]Classification, error) {
	out := make([]Classification, 0, len(ids))
	for _, id := range ids {
		w, err := s.Water(ctx, id)
		if err != nil {
			return nil, err
		}
		c := Classification{Water: w, Category: classify.Classify(w)}
		for _, rule := range s.badges.Evaluate(w) {
			c.Achievements = append(c.Achievements, string(rule.Tag))
		}
		out = append(out, c)
	}
	return out, nil
}
