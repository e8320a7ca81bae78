package filters

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/antoinebeaumadier/global-city-autocomplete/internal/cache"
	"github.com/antoinebeaumadier/global-city-autocomplete/internal/config"
	"github.com/antoinebeaumadier/global-city-autocomplete/internal/storage"
	"github.com/antoinebeaumadier/global-city-autocomplete/internal/types"
)

const filtersKey = "filters"

// FilterOptions lists every country and state available for narrowing a
// city search.
type FilterOptions struct {
	Countries       []types.Country          `json:"countries"`
	StatesByCountry map[string][]types.State `json:"states"`
}

// Service serves filter options for the search UI. Results are cached
// because the underlying catalog changes rarely.
type Service interface {
	Filters(ctx context.Context) (*FilterOptions, error)
	StatesForCountry(ctx context.Context, countryCode string) ([]types.State, error)
}

type filterService struct {
	store       storage.CityStore
	filterCache *cache.Cache[*FilterOptions]
	statesCache *cache.Cache[[]types.State]
	group       singleflight.Group
	logger      *slog.Logger
}

// NewService creates a filter service backed by the given store.
func NewService(store storage.CityStore, cfg config.SearchConfig, logger *slog.Logger) Service {
	return &filterService{
		store:       store,
		filterCache: cache.New[*FilterOptions](cfg.FilterCacheTTL()),
		statesCache: cache.New[[]types.State](cfg.FilterCacheTTL()),
		logger:      logger.With("component", "filter-service"),
	}
}

func (s *filterService) Filters(ctx context.Context) (*FilterOptions, error) {
	if opts, ok := s.filterCache.Get(filtersKey); ok {
		s.logger.Debug("filter options cache hit")
		return opts, nil
	}
	s.logger.Debug("filter options cache miss, loading from store")

	v, err, _ := s.group.Do(filtersKey, func() (interface{}, error) {
		countries, err := s.store.Countries(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load countries: %w", err)
		}
		states, err := s.store.AllStates(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load states: %w", err)
		}

		opts := &FilterOptions{Countries: countries, StatesByCountry: states}
		s.filterCache.Set(filtersKey, opts)
		return opts, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*FilterOptions), nil
}

func (s *filterService) StatesForCountry(ctx context.Context, countryCode string) ([]types.State, error) {
	code := strings.ToUpper(strings.TrimSpace(countryCode))
	key := "states:" + code

	if states, ok := s.statesCache.Get(key); ok {
		s.logger.Debug("state list cache hit", "country_code", code)
		return states, nil
	}
	s.logger.Debug("state list cache miss, loading from store", "country_code", code)

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		states, err := s.store.States(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("failed to load states for %s: %w", code, err)
		}

		s.statesCache.Set(key, states)
		return states, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]types.State), nil
}
