package repository

import (
	"context"

	"github.com/okian/waterradar/internal/domain/model"
)

// Store provides read/write access to the working dataset.
type Store interface {
	// Merge overlays records by id and publishes a new snapshot. It returns
	// the resulting dataset size.
	Merge(ctx context.Context, ws []model.Water) (int, error)

	// Get returns the record with id.
	// Returns ErrNotFound if the id is unknown.
	Get(ctx context.Context, id string) (model.Water, error)

	// All returns every record in dataset order.
	All(ctx context.Context) []model.Water

	// Find returns the records matching f, sorted by brand name.
	Find(ctx context.Context, f Filter) []model.Water

	// Count returns the number of records in the dataset.
	Count(ctx context.Context) int
}
