// Package service wires the dataset, selection, scorer and ranker into the
// operations exposed to the command line.
package service

import (
	"context"
	"sync"

	"github.com/okian/waterradar/internal/adapters/repository"
	"github.com/okian/waterradar/internal/domain/achievements"
	"github.com/okian/waterradar/internal/domain/model"
	"github.com/okian/waterradar/internal/domain/ranking"
	"github.com/okian/waterradar/internal/domain/scoring"
	"github.com/okian/waterradar/internal/domain/selection"
	"github.com/okian/waterradar/internal/domain/types"
	"github.com/okian/waterradar/pkg/logger"
	"github.com/okian/waterradar/pkg/metrics"
	"golang.org/x/text/language"
)

// Service is the engine facade. Call Start before any other method.
type Service struct {
	mu sync.RWMutex

	// Core components
	dataset   *repository.Dataset
	selection *selection.Selection
	scorer    scoring.Scorer
	ranker    *ranking.Ranker
	badges    *achievements.Registry

	// Configuration
	maxSelection   int
	defaultProfile model.Profile
	seed           bool
	lang           language.Tag
	baseWeights    map[string]float64
	profileWeights map[string]map[string]float64

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxSelection sets how many waters can be selected at once.
func WithMaxSelection(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSelection = n
		}
	}
}

// WithDefaultProfile sets the profile used when a call names none.
func WithDefaultProfile(p model.Profile) Option {
	return func(s *Service) {
		if p.Valid() {
			s.defaultProfile = p
		}
	}
}

// WithScorer replaces the weighted scorer. Weight options are ignored when a
// custom scorer is set.
func WithScorer(sc scoring.Scorer) Option {
	return func(s *Service) {
		if sc != nil {
			s.scorer = sc
		}
	}
}

// WithSeed preloads the built-in sample waters on Start.
func WithSeed(enabled bool) Option {
	return func(s *Service) {
		s.seed = enabled
	}
}

// WithLanguage sets the collation language for brand names.
func WithLanguage(tag language.Tag) Option {
	return func(s *Service) {
		s.lang = tag
	}
}

// WithBaseWeights overrides base metric weights, keyed by metric.
func WithBaseWeights(weights map[string]float64) Option {
	return func(s *Service) {
		s.baseWeights = weights
	}
}

// WithProfileWeights overrides per-profile weight overlays.
func WithProfileWeights(weights map[string]map[string]float64) Option {
	return func(s *Service) {
		s.profileWeights = weights
	}
}

// WithAchievements replaces the badge rules.
func WithAchievements(r *achievements.Registry) Option {
	return func(s *Service) {
		if r != nil {
			s.badges = r
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxSelection:   selection.DefaultMaxSize,
		defaultProfile: model.ProfileEveryday,
		lang:           language.Und,
		badges:         achievements.Default(),
		logger:         nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds the dataset and the scoring pipeline.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Nop()
	}

	if s.scorer == nil {
		s.scorer = scoring.NewWeightedScorer(
			scoring.WithWeightsFromConfig(s.baseWeights, s.profileWeights),
		)
	}
	s.ranker = ranking.New(
		ranking.WithScorer(s.scorer),
		ranking.WithLanguage(s.lang),
	)
	s.dataset = repository.NewDataset(
		repository.WithSeed(s.seed),
		repository.WithLanguage(s.lang),
	)
	s.selection = selection.New(selection.WithMaxSize(s.maxSelection))
	metrics.UpdateSelectionSize(0)

	s.started = true
	s.logger.Info(ctx, "water radar started",
		logger.Int("waters", s.dataset.Count(ctx)),
		logger.Int("maxSelection", s.maxSelection),
		logger.String("defaultProfile", string(s.defaultProfile)),
		logger.Bool("seed", s.seed),
	)

	return nil
}

// Stop marks the service stopped. The dataset is dropped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.dataset = nil
	s.selection = nil
	s.logger.Info(context.Background(), "water radar stopped")
}

// components returns the live components or ErrNotStarted.
func (s *Service) components() (*repository.Dataset, *selection.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.dataset, s.selection, nil
}

// Stats returns dataset and selection sizes.
func (s *Service) Stats(ctx context.Context) (types.Stats, error) {
	ds, sel, err := s.components()
	if err != nil {
		return types.Stats{}, err
	}
	return types.Stats{
		Waters:       ds.Count(ctx),
		Selected:     sel.Len(),
		MaxSelection: sel.MaxSize(),
	}, nil
}

// profile resolves p, falling back to the default profile when empty.
func (s *Service) profile(p model.Profile) (model.Profile, error) {
	if p == "" {
		return s.defaultProfile, nil
	}
	if parsed, ok := model.ParseProfile(string(p)); ok {
		return parsed, nil
	}
	return "", ErrUnknownProfile
}
