package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/antoinebeaumadier/global-city-autocomplete/internal/config"
	"github.com/antoinebeaumadier/global-city-autocomplete/internal/scoring"
	"github.com/antoinebeaumadier/global-city-autocomplete/internal/storage"
	"github.com/antoinebeaumadier/global-city-autocomplete/internal/types"
)

// ErrQueryRequired is returned when a search is attempted without a query.
var ErrQueryRequired = errors.New("query parameter is required")

// SearchParams carries one search request through the ranking pipeline.
type SearchParams struct {
	Query       string
	Origin      *types.Coords
	CountryCode string
	StateCode   string
	Offset      int
	Limit       int
}

// ScoredCity is a city with its final relevance score attached.
type ScoredCity struct {
	types.City
	Score float64 `json:"score"`
}

// Result is one ranked page plus the total number of matches across all
// pages. Offset and Limit echo the window actually applied after defaulting.
type Result struct {
	Cities []ScoredCity
	Total  int
	Offset int
	Limit  int
}

// Service ranks cities against a free-text query.
type Service interface {
	Search(ctx context.Context, params SearchParams) (*Result, error)
}

type searchService struct {
	store    storage.CityStore
	strategy scoring.Strategy
	cfg      config.SearchConfig
	logger   *slog.Logger
}

// NewService creates a search service over the given store and scoring strategy.
func NewService(store storage.CityStore, strategy scoring.Strategy, cfg config.SearchConfig, logger *slog.Logger) Service {
	return &searchService{
		store:    store,
		strategy: strategy,
		cfg:      cfg,
		logger:   logger.With("component", "search-service"),
	}
}

type rankedCity struct {
	city       types.City
	score      float64
	distanceKm *float64
}

func (s *searchService) Search(ctx context.Context, params SearchParams) (*Result, error) {
	query := strings.TrimSpace(params.Query)
	if query == "" {
		return nil, ErrQueryRequired
	}

	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	limit := params.Limit
	if limit <= 0 {
		limit = s.cfg.PageSize
	}
	if limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}

	// The candidate set is wider than one page: final ordering is decided
	// by scoring, not by the database, so pagination must slice the globally
	// sorted set.
	candQuery := storage.CandidateQuery{
		Query:       query,
		CountryCode: params.CountryCode,
		StateCode:   params.StateCode,
		Limit:       s.cfg.CandidateLimit,
	}

	candidates, err := s.store.SearchCandidates(ctx, candQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	total, err := s.store.CountMatches(ctx, candQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to count matches: %w", err)
	}

	maxPop := maxPopulation(candidates)

	ranked := make([]rankedCity, 0, len(candidates))
	for i := range candidates {
		breakdown := s.strategy.Score(&candidates[i], query, params.Origin, maxPop)
		ranked = append(ranked, rankedCity{
			city:       candidates[i],
			score:      breakdown.Final,
			distanceKm: breakdown.DistanceKm,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if c := comparePopulationDesc(a.city.Population, b.city.Population); c != 0 {
			return c < 0
		}
		if c := compareDistanceAsc(a.distanceKm, b.distanceKm); c != 0 {
			return c < 0
		}
		return a.city.GeonameID < b.city.GeonameID
	})

	s.logger.Debug("ranked search candidates",
		"query", query,
		"candidates", len(ranked),
		"total", total,
		"offset", offset,
		"limit", limit,
	)

	start := offset
	if start > len(ranked) {
		start = len(ranked)
	}
	end := start + limit
	if end > len(ranked) {
		end = len(ranked)
	}

	cities := make([]ScoredCity, 0, end-start)
	for _, r := range ranked[start:end] {
		cities = append(cities, ScoredCity{City: r.city, Score: r.score})
	}

	return &Result{Cities: cities, Total: total, Offset: offset, Limit: limit}, nil
}

// maxPopulation returns the largest population in the candidate set, so the
// most populous candidate normalizes to 1.
func maxPopulation(cities []types.City) int64 {
	var maxPop int64
	for i := range cities {
		if p := cities[i].Population; p != nil && *p > maxPop {
			maxPop = *p
		}
	}
	return maxPop
}

// comparePopulationDesc orders larger populations first, unknown last.
func comparePopulationDesc(a, b *int64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a > *b:
		return -1
	case *a < *b:
		return 1
	default:
		return 0
	}
}

// compareDistanceAsc orders nearer cities first, unknown last.
func compareDistanceAsc(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}
