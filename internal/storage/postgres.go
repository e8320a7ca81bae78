package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver

	"github.com/antoinebeaumadier/global-city-autocomplete/internal/config"
	"github.com/antoinebeaumadier/global-city-autocomplete/internal/types"
)

const cityColumns = "geoname_id, name, country_code, state_code, state_name, latitude, longitude, population"

// PostgresStore implements CityStore over a read-only cities table.
type PostgresStore struct {
	db               *sqlx.DB
	useTrigram       bool
	trigramThreshold float64
	logger           *slog.Logger
}

// Open creates the connection pool without pinging: a database that is down
// surfaces as per-request errors, not a startup crash.
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	return db, nil
}

// NewPostgresStore creates a city store over the given pool. Trigram mode
// adds a pg_trgm similarity predicate to the name filter and requires the
// extension to be installed.
func NewPostgresStore(db *sqlx.DB, cfg config.SearchConfig, logger *slog.Logger) *PostgresStore {
	return &PostgresStore{
		db:               db,
		useTrigram:       cfg.UseTrigram,
		trigramThreshold: cfg.TrigramThreshold,
		logger:           logger.With("component", "city-store"),
	}
}

// buildFilter compiles the WHERE clause shared by SearchCandidates and
// CountMatches so both always agree on what counts as a match.
func (s *PostgresStore) buildFilter(q CandidateQuery) (string, []interface{}) {
	conds := make([]string, 0, 3)
	args := make([]interface{}, 0, 4)

	if s.useTrigram {
		conds = append(conds, fmt.Sprintf(
			"(name ILIKE '%%' || $%d || '%%' OR similarity(name, $%d) >= $%d)",
			len(args)+1, len(args)+1, len(args)+2,
		))
		args = append(args, q.Query, s.trigramThreshold)
	} else {
		conds = append(conds, fmt.Sprintf("name ILIKE '%%' || $%d || '%%'", len(args)+1))
		args = append(args, q.Query)
	}

	if q.CountryCode != "" {
		conds = append(conds, fmt.Sprintf("country_code = $%d", len(args)+1))
		args = append(args, strings.ToUpper(q.CountryCode))
	}
	if q.StateCode != "" {
		conds = append(conds, fmt.Sprintf("state_code = $%d", len(args)+1))
		args = append(args, strings.ToUpper(q.StateCode))
	}

	return strings.Join(conds, " AND "), args
}

func (s *PostgresStore) SearchCandidates(ctx context.Context, q CandidateQuery) ([]types.City, error) {
	where, args := s.buildFilter(q)
	args = append(args, q.Limit)
	query := fmt.Sprintf(
		"SELECT %s FROM cities WHERE %s ORDER BY population DESC NULLS LAST, geoname_id LIMIT $%d",
		cityColumns, where, len(args),
	)

	s.logger.Debug("querying candidate cities", "query", q.Query, "limit", q.Limit)

	cities := make([]types.City, 0, q.Limit)
	if err := s.db.SelectContext(ctx, &cities, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query candidate cities: %w", err)
	}

	return cities, nil
}

func (s *PostgresStore) CountMatches(ctx context.Context, q CandidateQuery) (int, error) {
	where, args := s.buildFilter(q)
	query := fmt.Sprintf("SELECT count(*) FROM cities WHERE %s", where)

	var total int
	if err := s.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count matching cities: %w", err)
	}

	return total, nil
}

func (s *PostgresStore) Countries(ctx context.Context) ([]types.Country, error) {
	var countries []types.Country
	err := s.db.SelectContext(ctx, &countries,
		"SELECT DISTINCT country_code AS code FROM cities WHERE country_code <> '' ORDER BY code")
	if err != nil {
		return nil, fmt.Errorf("failed to query countries: %w", err)
	}

	return countries, nil
}

func (s *PostgresStore) States(ctx context.Context, countryCode string) ([]types.State, error) {
	var states []types.State
	err := s.db.SelectContext(ctx, &states,
		"SELECT DISTINCT state_code AS code, COALESCE(state_name, '') AS name FROM cities WHERE country_code = $1 AND state_code <> '' ORDER BY code",
		strings.ToUpper(countryCode))
	if err != nil {
		return nil, fmt.Errorf("failed to query states for %s: %w", countryCode, err)
	}

	return states, nil
}

type stateRow struct {
	CountryCode string `db:"country_code"`
	Code        string `db:"code"`
	Name        string `db:"name"`
}

func (s *PostgresStore) AllStates(ctx context.Context) (map[string][]types.State, error) {
	var rows []stateRow
	err := s.db.SelectContext(ctx, &rows,
		"SELECT DISTINCT country_code, state_code AS code, COALESCE(state_name, '') AS name FROM cities WHERE state_code <> '' ORDER BY country_code, code")
	if err != nil {
		return nil, fmt.Errorf("failed to query states: %w", err)
	}

	grouped := make(map[string][]types.State)
	for _, r := range rows {
		grouped[r.CountryCode] = append(grouped[r.CountryCode], types.State{Code: r.Code, Name: r.Name})
	}

	return grouped, nil
}
