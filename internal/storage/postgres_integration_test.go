//go:build integration

package storage

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/antoinebeaumadier/global-city-autocomplete/internal/config"
)

func TestPostgresStore_Integration(t *testing.T) {
	dsn := os.Getenv("CITY_SEARCH_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("CITY_SEARCH_TEST_DATABASE_URL not set")
	}

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	defer db.Close()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	store := NewPostgresStore(db, config.SearchConfig{TrigramThreshold: 0.3}, logger)
	ctx := context.Background()

	countries, err := store.Countries(ctx)
	require.NoError(t, err)
	t.Logf("distinct countries: %d", len(countries))

	cities, err := store.SearchCandidates(ctx, CandidateQuery{Query: "paris", Limit: 10})
	require.NoError(t, err)
	t.Logf("candidates for %q: %d", "paris", len(cities))
	for _, c := range cities {
		require.NotZero(t, c.GeonameID)
		require.NotEmpty(t, c.Name)
	}

	total, err := store.CountMatches(ctx, CandidateQuery{Query: "paris"})
	require.NoError(t, err)
	require.GreaterOrEqual(t, total, len(cities))

	if len(countries) > 0 {
		states, err := store.States(ctx, countries[0].Code)
		require.NoError(t, err)
		t.Logf("states for %s: %d", countries[0].Code, len(states))
	}
}
