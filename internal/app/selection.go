package service

import (
	"context"
	"errors"

	"github.com/okian/waterradar/internal/domain/model"
	"github.com/okian/waterradar/internal/domain/selection"
	"github.com/okian/waterradar/pkg/logger"
	"github.com/okian/waterradar/pkg/metrics"
)

// Toggle selects id, or deselects it when already selected. It reports the
// resulting state. Unknown ids wrap repository.ErrNotFound; selecting past
// the cap returns selection.ErrSelectionFull.
func (s *Service) Toggle(ctx context.Context, id string) (bool, error) {
	_, sel, err := s.components()
	if err != nil {
		return false, err
	}
	if _, err := s.Water(ctx, id); err != nil {
		return false, err
	}

	on, err := sel.Toggle(id)
	if errors.Is(err, selection.ErrSelectionFull) {
		metrics.RecordSelectionRejected()
		s.logger.Debug(ctx, "selection full", logger.String("id", id), logger.Int("max", sel.MaxSize()))
	}
	metrics.UpdateSelectionSize(sel.Len())
	return on, err
}

// Remove deselects id. It reports whether id was selected.
func (s *Service) Remove(ctx context.Context, id string) (bool, error) {
	_, sel, err := s.components()
	if err != nil {
		return false, err
	}
	removed := sel.Remove(id)
	metrics.UpdateSelectionSize(sel.Len())
	return removed, nil
}

// ClearSelection deselects everything.
func (s *Service) ClearSelection(_ context.Context) error {
	_, sel, err := s.components()
	if err != nil {
		return err
	}
	sel.Clear()
	metrics.UpdateSelectionSize(0)
	return nil
}

// Selected returns the selected records in selection order.
func (s *Service) Selected(ctx context.Context) ([]model.Water, error) {
	ds, sel, err := s.components()
	if err != nil {
		return nil, err
	}
	found, _ := ds.GetMany(ctx, sel.IDs())
	return found, nil
}
