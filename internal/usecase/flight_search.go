// Package usecase contains the business logic for flight offer aggregation.
// It orchestrates provider calls using a settle-all scatter-gather, merges
// duplicate itineraries across providers, and applies the filter pipeline.
package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/skyfare/flight-offer-aggregator/internal/cache"
	"github.com/skyfare/flight-offer-aggregator/internal/domain"
	"github.com/skyfare/flight-offer-aggregator/internal/infrastructure/timeutil"
)

//go:generate mockgen -source=flight_search.go -destination=../../test/mock/usecase.go -package=mock

// Default timeout values. Each provider call is bounded so one slow provider
// cannot stall the settle-all barrier indefinitely.
const (
	DefaultGlobalTimeout   = 30 * time.Second
	DefaultProviderTimeout = 12 * time.Second
)

// FlightSearchUseCase defines the interface for flight search operations.
type FlightSearchUseCase interface {
	// Search queries all registered providers, merges their offers by
	// identity key, filters, and returns the price-sorted result.
	Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error)
}

// Config contains configuration options for the use case.
type Config struct {
	GlobalTimeout   time.Duration
	ProviderTimeout time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		GlobalTimeout:   DefaultGlobalTimeout,
		ProviderTimeout: DefaultProviderTimeout,
	}
}

// Option customizes the use case at construction time.
type Option func(*flightSearchUseCase)

// WithCache attaches a short-TTL cache for merged aggregation results.
func WithCache(c cache.Cache) Option {
	return func(uc *flightSearchUseCase) {
		uc.cache = c
	}
}

// WithClock overrides the wall clock, for tests.
func WithClock(clock timeutil.Clock) Option {
	return func(uc *flightSearchUseCase) {
		uc.clock = clock
	}
}

// WithLogger sets the logger used for per-provider diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(uc *flightSearchUseCase) {
		uc.log = log
	}
}

// flightSearchUseCase implements FlightSearchUseCase.
type flightSearchUseCase struct {
	registry        *domain.ProviderRegistry
	globalTimeout   time.Duration
	providerTimeout time.Duration
	cache           cache.Cache
	clock           timeutil.Clock
	log             zerolog.Logger
}

// NewFlightSearchUseCase creates the use case over a provider registry.
// If config is nil, default timeout values are used.
func NewFlightSearchUseCase(registry *domain.ProviderRegistry, config *Config, opts ...Option) FlightSearchUseCase {
	cfg := DefaultConfig()
	if config != nil {
		if config.GlobalTimeout > 0 {
			cfg.GlobalTimeout = config.GlobalTimeout
		}
		if config.ProviderTimeout > 0 {
			cfg.ProviderTimeout = config.ProviderTimeout
		}
	}

	uc := &flightSearchUseCase{
		registry:        registry,
		globalTimeout:   cfg.GlobalTimeout,
		providerTimeout: cfg.ProviderTimeout,
		cache:           cache.NewNoOp(),
		clock:           timeutil.NewRealClock(),
		log:             zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Search implements FlightSearchUseCase.
func (uc *flightSearchUseCase) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	start := uc.clock.Now()

	req.SetDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if uc.registry.Len() == 0 {
		return nil, domain.ErrAllProvidersFailed
	}

	ctx, cancel := context.WithTimeout(ctx, uc.globalTimeout)
	defer cancel()

	merged, metadata, err := uc.collect(ctx, req)
	if err != nil {
		return nil, err
	}

	filtered, warnings := ApplyFilters(merged, &req)
	metadata.Warnings = append(metadata.Warnings, warnings...)
	metadata.SearchTimeMs = uc.clock.Now().Sub(start).Milliseconds()

	return domain.NewSearchResponse(filtered, metadata), nil
}

// collect produces the merged, price-sorted offer list, either from the
// cache or by fanning out to every provider.
func (uc *flightSearchUseCase) collect(ctx context.Context, req domain.SearchRequest) ([]domain.FlightOffer, domain.SearchMetadata, error) {
	if entry, ok := uc.cache.Get(ctx, req); ok {
		metadata := domain.SearchMetadata{
			ContributingProviders: entry.Providers,
			TotalBeforeFilter:     len(entry.Offers),
			PerProviderErrors:     map[string]string{},
			CacheHit:              true,
		}
		return entry.Offers, metadata, nil
	}

	settled := uc.settleAll(ctx, req)

	providers := uc.registry.All()
	providerErrors := make(map[string]string)
	var contributing []string
	var merged []domain.FlightOffer
	index := make(map[string]int)

	// Merge in registration order so equally priced offers keep a
	// deterministic relative order.
	for _, p := range providers {
		result := settled[p.Name()]
		if result.err != nil {
			providerErrors[p.Name()] = result.err.Error()
			uc.log.Warn().
				Str("provider", p.Name()).
				Err(result.err).
				Msg("Provider contributed nothing")
			continue
		}

		contributing = append(contributing, p.Name())
		for _, offer := range result.offers {
			if at, exists := index[offer.ID]; exists {
				merged[at] = domain.MergeOffer(merged[at], offer)
			} else {
				index[offer.ID] = len(merged)
				merged = append(merged, offer)
			}
		}
	}

	if len(providerErrors) == len(providers) {
		return nil, domain.SearchMetadata{}, domain.ErrAllProvidersFailed
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].LowestPrice < merged[j].LowestPrice
	})

	if err := uc.cache.Set(ctx, req, cache.Entry{Offers: merged, Providers: contributing}); err != nil {
		uc.log.Debug().Err(err).Msg("Result cache write failed")
	}

	metadata := domain.SearchMetadata{
		ContributingProviders: contributing,
		TotalBeforeFilter:     len(merged),
		PerProviderErrors:     providerErrors,
	}
	return merged, metadata, nil
}

// providerResult holds one settled provider call.
type providerResult struct {
	provider string
	offers   []domain.FlightOffer
	err      error
	duration time.Duration
}

// settleAll launches every provider concurrently and waits for all of them
// to settle, success or failure. A failing provider never cancels or blocks
// its siblings.
func (uc *flightSearchUseCase) settleAll(ctx context.Context, req domain.SearchRequest) map[string]providerResult {
	providers := uc.registry.All()

	results := make(chan providerResult, len(providers))
	for _, provider := range providers {
		go uc.queryProvider(ctx, provider, req, results)
	}

	settled := make(map[string]providerResult, len(providers))
	for range providers {
		result := <-results
		settled[result.provider] = result
	}
	return settled
}

// queryProvider queries a single provider with a bounded timeout and panic
// recovery, so a misbehaving adapter cannot take down the whole search.
func (uc *flightSearchUseCase) queryProvider(ctx context.Context, provider domain.FlightProvider, req domain.SearchRequest, results chan<- providerResult) {
	ctx, cancel := context.WithTimeout(ctx, uc.providerTimeout)
	defer cancel()

	start := time.Now()
	name := provider.Name()

	defer func() {
		if r := recover(); r != nil {
			results <- providerResult{
				provider: name,
				err:      fmt.Errorf("provider panic: %v", r),
				duration: time.Since(start),
			}
		}
	}()

	offers, err := provider.Search(ctx, req)

	results <- providerResult{
		provider: name,
		offers:   offers,
		err:      err,
		duration: time.Since(start),
	}
}

// Ensure flightSearchUseCase implements FlightSearchUseCase at compile time.
var _ FlightSearchUseCase = (*flightSearchUseCase)(nil)
