// Package selection tracks the ordered set of waters chosen for comparison.
package selection

import (
	"slices"
	"strings"
	"sync"
)

const (
	// DefaultMaxSize is the comparison cap.
	DefaultMaxSize = 5
	// MinCompare is the number of waters needed for a comparison.
	MinCompare = 2
)

// Selection is an ordered, bounded set of water ids. Safe for concurrent use.
type Selection struct {
	mu      sync.RWMutex
	ids     []string
	index   map[string]struct{}
	maxSize int
}

// New creates an empty selection.
func New(opts ...Option) *Selection {
	s := &Selection{
		maxSize: DefaultMaxSize,
		index:   make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Add appends id. Adding an already selected id is a no-op. Adding past the
// cap returns ErrSelectionFull and leaves the selection unchanged.
func (s *Selection) Add(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[id]; ok {
		return nil
	}
	if len(s.ids) >= s.maxSize {
		return ErrSelectionFull
	}
	s.ids = append(s.ids, id)
	s.index[id] = struct{}{}
	return nil
}

// Toggle removes id when selected, otherwise adds it. It reports whether id
// is selected afterwards.
func (s *Selection) Toggle(id string) (bool, error) {
	if s.Remove(id) {
		return false, nil
	}
	if err := s.Add(id); err != nil {
		return false, err
	}
	return true, nil
}

// Remove drops id and reports whether it was selected.
func (s *Selection) Remove(id string) bool {
	id = strings.TrimSpace(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[id]; !ok {
		return false
	}
	delete(s.index, id)
	s.ids = slices.DeleteFunc(s.ids, func(x string) bool { return x == id })
	return true
}

// Retain drops every id for which keep returns false.
func (s *Selection) Retain(keep func(id string) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ids = slices.DeleteFunc(s.ids, func(x string) bool {
		if keep(x) {
			return false
		}
		delete(s.index, x)
		return true
	})
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ids = nil
	s.index = make(map[string]struct{})
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.index[strings.TrimSpace(id)]
	return ok
}

// IDs returns a copy of the selected ids in selection order.
func (s *Selection) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.ids)
}

// Len returns the number of selected ids.
func (s *Selection) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.ids)
}

// MaxSize returns the cap.
func (s *Selection) MaxSize() int { return s.maxSize }

// CanCompare reports whether enough waters are selected to compare.
func (s *Selection) CanCompare() bool { return s.Len() >= MinCompare }
