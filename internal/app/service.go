// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gitscout/gitscout/internal/adapters/repository"
	"github.com/gitscout/gitscout/internal/domain/model"
	"github.com/gitscout/gitscout/internal/domain/profilecache"
	"github.com/gitscout/gitscout/internal/domain/scoring"
	"github.com/gitscout/gitscout/pkg/logger"
	"github.com/gitscout/gitscout/pkg/metrics"
)

// Supplier fetches candidate activity from GitHub. Implemented by the github
// adapter; tests substitute fakes.
type Supplier interface {
	Candidate(ctx context.Context, username string) (model.Candidate, error)
	Metrics(ctx context.Context, username string) (model.GitHubMetrics, error)
	Languages(ctx context.Context, username string) ([]model.LanguageShare, error)
}

// Service implements the API dependencies for the candidate scoring system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	supplier Supplier
	scorer   scoring.Scorer
	cache    profilecache.Cache

	// Configuration
	dbPath    string
	cacheSize int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDBPath sets the SQLite database location used when no store is injected.
func WithDBPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dbPath = path
		}
	}
}

// WithCacheSize bounds the in-memory profile cache.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.cacheSize = size
		}
	}
}

// WithStore injects a pre-built store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithSupplier injects the GitHub activity supplier.
func WithSupplier(supplier Supplier) Option {
	return func(s *Service) {
		if supplier != nil {
			s.supplier = supplier
		}
	}
}

// WithScorer injects a custom scorer.
func WithScorer(scorer scoring.Scorer) Option {
	return func(s *Service) {
		if scorer != nil {
			s.scorer = scorer
		}
	}
}

// WithCache injects a pre-built profile cache.
func WithCache(cache profilecache.Cache) Option {
	return func(s *Service) {
		if cache != nil {
			s.cache = cache
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dbPath:    "gitscout.db",
		cacheSize: 1024,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components that were not injected.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting scoring service...")

	if s.supplier == nil {
		return errors.New("service requires a GitHub supplier")
	}
	if s.store == nil {
		store, err := repository.NewSQLiteStore(s.dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		s.store = store
	}
	if s.cache == nil {
		s.cache = profilecache.NewInMemoryCache(
			profilecache.WithMaxSize(s.cacheSize),
		)
	}
	if s.scorer == nil {
		s.scorer = scoring.New()
	}

	s.started = true
	s.logger.Info(ctx, "scoring service started",
		logger.String("dbPath", s.dbPath),
		logger.Int("cacheSize", s.cacheSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping scoring service...")

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Error(context.Background(), "error closing store", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(context.Background(), "scoring service stopped")
}

// CreateProfile validates and persists a new standard profile.
func (s *Service) CreateProfile(ctx context.Context, profile model.StandardProfile) (model.StandardProfile, error) {
	if err := profile.Validate(); err != nil {
		return model.StandardProfile{}, err
	}

	created, err := s.store.CreateProfile(ctx, profile)
	if err != nil {
		return model.StandardProfile{}, err
	}

	s.cache.Put(ctx, created)
	metrics.RecordProfileCreated()
	metrics.UpdateCacheSize(int(s.cache.Size()))
	return created, nil
}

// GetProfile returns a profile, serving repeated reads from the cache.
func (s *Service) GetProfile(ctx context.Context, id string) (model.StandardProfile, error) {
	if profile, ok := s.cache.Get(ctx, id); ok {
		metrics.RecordCacheHit()
		return profile, nil
	}
	metrics.RecordCacheMiss()

	profile, err := s.store.GetProfile(ctx, id)
	if err != nil {
		return model.StandardProfile{}, err
	}

	s.cache.Put(ctx, profile)
	return profile, nil
}

// ListProfiles returns the owner's profiles, newest first.
func (s *Service) ListProfiles(ctx context.Context, ownerID string) ([]model.StandardProfile, error) {
	profiles, err := s.store.ListProfiles(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	metrics.UpdateProfilesTotal(len(profiles))
	return profiles, nil
}

// UpdateProfile validates and replaces a profile. Identity fields are kept
// from the stored version.
func (s *Service) UpdateProfile(ctx context.Context, profile model.StandardProfile) (model.StandardProfile, error) {
	if err := profile.Validate(); err != nil {
		return model.StandardProfile{}, err
	}

	updated, err := s.store.UpdateProfile(ctx, profile)
	if err != nil {
		return model.StandardProfile{}, err
	}

	s.cache.Put(ctx, updated)
	metrics.RecordProfileUpdated()
	return updated, nil
}

// DeleteProfile removes a profile. Existing comparisons keep their results
// and denormalized profile name.
func (s *Service) DeleteProfile(ctx context.Context, id string) error {
	if err := s.store.DeleteProfile(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, id)
	metrics.RecordProfileDeleted()
	metrics.UpdateCacheSize(int(s.cache.Size()))
	return nil
}

// CreateComparison fetches the candidate's current GitHub activity, scores it
// against the profile, and persists the outcome.
func (s *Service) CreateComparison(ctx context.Context, username, profileID, ownerID string) (model.ComparisonRecord, error) {
	start := time.Now()

	profile, err := s.GetProfile(ctx, profileID)
	if err != nil {
		return model.ComparisonRecord{}, err
	}

	activity, err := s.supplier.Metrics(ctx, username)
	if err != nil {
		metrics.RecordScoringError()
		return model.ComparisonRecord{}, fmt.Errorf("fetch activity for %q: %w", username, err)
	}

	result := s.scorer.Score(activity, profile)

	record, err := s.store.CreateComparison(ctx, model.ComparisonRecord{
		CandidateUsername: username,
		ProfileID:         profile.ID,
		ProfileName:       profile.Name,
		OwnerID:           ownerID,
		Result:            result,
	})
	if err != nil {
		metrics.RecordScoringError()
		return model.ComparisonRecord{}, err
	}

	metrics.RecordComparisonCreated()
	metrics.RecordRecommendation(result.Recommendation)
	metrics.RecordScoringLatency(float64(time.Since(start).Milliseconds()))

	s.logger.Info(ctx, "comparison created",
		logger.String("username", username),
		logger.String("profile", profile.Name),
		logger.Float64("score", result.OverallScore),
		logger.String("recommendation", result.Recommendation),
	)

	return record, nil
}

// GetComparison returns a stored comparison enriched with a freshly fetched
// candidate view. Enrichment failures degrade to the bare record rather than
// failing the read.
func (s *Service) GetComparison(ctx context.Context, id string) (model.ComparisonView, error) {
	record, err := s.store.GetComparison(ctx, id)
	if err != nil {
		return model.ComparisonView{}, err
	}

	view := model.ComparisonView{ComparisonRecord: record}

	if candidate, err := s.supplier.Candidate(ctx, record.CandidateUsername); err != nil {
		s.logger.Warn(ctx, "candidate enrichment failed",
			logger.String("username", record.CandidateUsername),
			logger.Error(err),
		)
	} else {
		view.Candidate = &candidate
	}

	if languages, err := s.supplier.Languages(ctx, record.CandidateUsername); err != nil {
		s.logger.Warn(ctx, "language enrichment failed",
			logger.String("username", record.CandidateUsername),
			logger.Error(err),
		)
	} else {
		view.Languages = languages
	}

	return view, nil
}

// ListComparisons returns the owner's comparisons, newest first.
func (s *Service) ListComparisons(ctx context.Context, ownerID string) ([]model.ComparisonRecord, error) {
	return s.store.ListComparisons(ctx, ownerID)
}

// DeleteComparison removes a stored comparison.
func (s *Service) DeleteComparison(ctx context.Context, id string) error {
	if err := s.store.DeleteComparison(ctx, id); err != nil {
		return err
	}
	metrics.RecordComparisonDeleted()
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":   s.started,
		"dbPath":    s.dbPath,
		"cacheSize": s.cacheSize,
	}

	if s.started {
		cached := int(s.cache.Size())
		stats["cachedProfiles"] = cached
		metrics.UpdateCacheSize(cached)
	}

	return stats
}
