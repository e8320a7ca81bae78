package storage

import (
	"context"

	"github.com/antoinebeaumadier/global-city-autocomplete/internal/types"
)

// CandidateQuery describes one candidate retrieval: a permissive name
// filter plus optional exact country/state narrowing and a row cap.
type CandidateQuery struct {
	Query       string
	CountryCode string
	StateCode   string
	Limit       int
}

// CityStore reads the city dataset. Rows are bulk-loaded by an external
// process and never written by this service.
type CityStore interface {
	// SearchCandidates returns up to q.Limit cities matching the filter,
	// largest populations first, so the most notable cities stay in
	// contention when matches exceed the cap.
	SearchCandidates(ctx context.Context, q CandidateQuery) ([]types.City, error)

	// CountMatches returns the total number of rows matching the same
	// filter, independent of the cap.
	CountMatches(ctx context.Context, q CandidateQuery) (int, error)

	// Countries returns the distinct country codes in the dataset, ordered.
	Countries(ctx context.Context) ([]types.Country, error)

	// States returns the distinct subdivisions of one country, ordered by code.
	States(ctx context.Context, countryCode string) ([]types.State, error)

	// AllStates returns every distinct subdivision grouped by country code.
	AllStates(ctx context.Context) (map[string][]types.State, error)
}
