// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package locality

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/singleflight"

	"github.com/setrini/inmobiliaria/internal/platform/metrics"
)

// DefaultFetchTimeout bounds a single dataset fetch.
const DefaultFetchTimeout = 15 * time.Second

// buildKey is the single singleflight key; there is only one index.
const buildKey = "locality_index"

// # Index State

// Status is the lifecycle of the process-wide index.
type Status string

const (
	StatusNotLoaded  Status = "not_loaded"
	StatusReady      Status = "ready"
	StatusLoadFailed Status = "load_failed"
)

// State describes the index as seen by callers. Search itself returns an empty
// slice for "no match", "not loaded" and "failed" alike.
type State struct {
	Status    Status     `json:"status"`
	Size      int        `json:"size"`
	BuiltAt   *time.Time `json:"builtAt,omitempty"`
	LastError string     `json:"lastError,omitempty"`
	Err       error      `json:"-"`
}

// # Service

// Service owns the lazily built index.
//
// The published index is read without locks. Builds go through a singleflight
// group so concurrent first callers share one fetch.
type Service struct {
	source       Source
	scope        string
	fetchTimeout time.Duration
	logger       *slog.Logger

	index atomic.Pointer[Index]
	group singleflight.Group

	mu      sync.Mutex
	lastErr error
}

// NewService constructs a [Service]. Nothing is fetched until the first search or [Service.Preload].
func NewService(source Source, scope string, logger *slog.Logger) *Service {
	return &Service{
		source:       source,
		scope:        scope,
		fetchTimeout: DefaultFetchTimeout,
		logger:       logger,
	}
}

// WithFetchTimeout overrides [DefaultFetchTimeout].
func (service *Service) WithFetchTimeout(timeout time.Duration) *Service {
	service.fetchTimeout = timeout
	return service
}

/*
Search returns localities whose normalized name starts with the normalized query.

Description: Queries shorter than [MinQueryLength] runes after normalization
return immediately without building the index. A failed build yields an empty
result and is retried by the next call.

Parameters:
  - context: context.Context (used for logging and to start a build; a build is not cancelled by it)
  - query: string (raw user input)
  - limit: int (non-positive means DefaultLimit, capped at MaxLimit)

Returns:
  - []Locality: Ordered by normalized name, never nil
*/
func (service *Service) Search(context context.Context, query string, limit int) []Locality {
	prefix := Normalize(query)

	if utf8.RuneCountInString(prefix) < MinQueryLength {
		metrics.LocalitySearchesTotal.WithLabelValues(metrics.OutcomeTooShort).Inc()
		return []Locality{}
	}

	index, err := service.ensureIndex(context)
	if err != nil {
		metrics.LocalitySearchesTotal.WithLabelValues(metrics.OutcomeUnavailable).Inc()
		return []Locality{}
	}

	results := index.Search(prefix, limit)

	outcome := metrics.OutcomeHit
	if len(results) == 0 {
		outcome = metrics.OutcomeMiss
	}
	metrics.LocalitySearchesTotal.WithLabelValues(outcome).Inc()

	return results
}

// Preload builds the index eagerly. Safe to call any number of times.
func (service *Service) Preload(context context.Context) error {
	_, err := service.ensureIndex(context)
	return err
}

// Invalidate drops the published index; the next search or preload rebuilds it.
func (service *Service) Invalidate() {
	service.index.Store(nil)
	service.group.Forget(buildKey)
}

// Reload invalidates and rebuilds synchronously, returning the resulting state.
func (service *Service) Reload(context context.Context) State {
	service.Invalidate()
	_, _ = service.ensureIndex(context)
	return service.State()
}

// State reports whether the index is ready, not yet loaded, or failed last time.
func (service *Service) State() State {
	if index := service.index.Load(); index != nil {
		builtAt := index.BuiltAt()
		return State{Status: StatusReady, Size: index.Len(), BuiltAt: &builtAt}
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	if service.lastErr != nil {
		return State{Status: StatusLoadFailed, LastError: service.lastErr.Error(), Err: service.lastErr}
	}
	return State{Status: StatusNotLoaded}
}

// ensureIndex returns the published index, building it once if needed.
func (service *Service) ensureIndex(ctx context.Context) (*Index, error) {
	if index := service.index.Load(); index != nil {
		return index, nil
	}

	result, err, _ := service.group.Do(buildKey, func() (any, error) {

		// A flight that started after a successful one finds it published.
		if index := service.index.Load(); index != nil {
			return index, nil
		}

		// One caller hanging up must not fail the build shared by the others.
		return service.build(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}

	return result.(*Index), nil
}

// build fetches, indexes and publishes. Failures are recorded but never published.
func (service *Service) build(ctx context.Context) (*Index, error) {
	ctx, cancel := context.WithTimeout(ctx, service.fetchTimeout)
	defer cancel()

	startedAt := time.Now()

	// 1. Fetch the raw dataset
	dataset, err := service.source.Fetch(ctx)
	if err != nil {
		service.recordFailure(err)
		metrics.LocalityIndexBuildsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		service.logger.ErrorContext(ctx, "locality_index_build_failed",
			slog.String("error", err.Error()),
			slog.Int64("elapsed_ms", time.Since(startedAt).Milliseconds()),
		)
		return nil, fmt.Errorf("locality_index_build_failed: %w", err)
	}

	// 2. Filter, dedupe and sort
	var records []RawRecord
	if dataset != nil {
		records = dataset.Localidades
	}
	index := BuildIndex(records, service.scope)
	index.builtAt = time.Now()

	// 3. Publish atomically and clear any previous failure
	service.index.Store(index)
	service.recordFailure(nil)

	metrics.LocalityIndexBuildsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	metrics.LocalityIndexEntries.Set(float64(index.Len()))

	service.logger.InfoContext(ctx, "locality_index_built",
		slog.Int("records", len(records)),
		slog.Int("entries", index.Len()),
		slog.String("scope", service.scope),
		slog.Int64("elapsed_ms", time.Since(startedAt).Milliseconds()),
	)

	return index, nil
}

func (service *Service) recordFailure(err error) {
	service.mu.Lock()
	service.lastErr = err
	service.mu.Unlock()
}
