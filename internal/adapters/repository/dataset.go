package repository

import (
	"context"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/okian/waterradar/internal/adapters/importer"
	"github.com/okian/waterradar/internal/domain/model"
	"github.com/okian/waterradar/pkg/metrics"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Snapshot is an immutable view of the dataset. Readers must not modify it.
type Snapshot struct {
	Waters  []model.Water
	Version uint64

	byID map[string]int
}

func newSnapshot(ws []model.Water, version uint64) *Snapshot {
	s := &Snapshot{
		Waters:  ws,
		Version: version,
		byID:    make(map[string]int, len(ws)),
	}
	for i, w := range ws {
		s.byID[w.ID] = i
	}
	return s
}

// Dataset is an in-memory Store. Writes build a new snapshot and publish it
// atomically, so reads never block and never see a half-applied merge.
type Dataset struct {
	initial []model.Water
	seed    bool
	lang    language.Tag

	mu       sync.Mutex // serializes writers and collator use
	collator *collate.Collator
	snapshot atomic.Pointer[Snapshot]
}

// NewDataset creates a Dataset, optionally preloaded with the seed waters and
// any records passed through WithWaters.
func NewDataset(opts ...Option) *Dataset {
	d := &Dataset{lang: language.Und}

	for _, opt := range opts {
		opt(d)
	}

	d.collator = collate.New(d.lang)

	var base []model.Water
	if d.seed {
		base = Seed()
	}
	d.publish(importer.Merge(base, d.initial), 1)
	d.initial = nil

	return d
}

func (d *Dataset) publish(ws []model.Water, version uint64) {
	d.snapshot.Store(newSnapshot(ws, version))
	metrics.IncrementDatasetSnapshotCount()
	metrics.UpdateDatasetSize(len(ws))
}

// Snapshot returns the current snapshot.
func (d *Dataset) Snapshot() *Snapshot {
	return d.snapshot.Load()
}

// Merge implements Store.
func (d *Dataset) Merge(ctx context.Context, ws []model.Water) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	cur := d.snapshot.Load()
	next := importer.Merge(cur.Waters, ws)
	d.publish(next, cur.Version+1)
	return len(next), nil
}

// Get implements Store.
func (d *Dataset) Get(_ context.Context, id string) (model.Water, error) {
	s := d.snapshot.Load()
	i, ok := s.byID[strings.TrimSpace(id)]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.Water{}, ErrNotFound
	}
	return s.Waters[i], nil
}

// GetMany returns the records for ids in the given order. Unknown ids are
// skipped and returned separately.
func (d *Dataset) GetMany(_ context.Context, ids []string) (found []model.Water, missing []string) {
	s := d.snapshot.Load()
	for _, id := range ids {
		if i, ok := s.byID[id]; ok {
			found = append(found, s.Waters[i])
			continue
		}
		missing = append(missing, id)
	}
	return found, missing
}

// All implements Store.
func (d *Dataset) All(_ context.Context) []model.Water {
	return slices.Clone(d.snapshot.Load().Waters)
}

// Find implements Store.
func (d *Dataset) Find(_ context.Context, f Filter) []model.Water {
	s := d.snapshot.Load()
	out := make([]model.Water, 0, len(s.Waters))
	for _, w := range s.Waters {
		if f.Match(w) {
			out = append(out, w)
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	slices.SortStableFunc(out, func(a, b model.Water) int {
		if c := d.collator.CompareString(a.BrandName, b.BrandName); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Count implements Store.
func (d *Dataset) Count(_ context.Context) int {
	return len(d.snapshot.Load().Waters)
}
