package scoring

import (
	"math"
	"testing"

	"github.com/antoinebeaumadier/global-city-autocomplete/internal/types"
)

func cityFixture(name string, population *int64, lat, lon float64) *types.City {
	return &types.City{
		GeonameID:   1,
		Name:        name,
		CountryCode: "FR",
		Latitude:    lat,
		Longitude:   lon,
		Population:  population,
	}
}

func TestWeightedStrategy_Score(t *testing.T) {
	parisCity := cityFixture("Paris", i64(2_161_000), 48.8566, 2.3522)

	tests := []struct {
		name          string
		weights       Weights
		city          *types.City
		query         string
		origin        *types.Coords
		maxPopulation int64
		wantFinal     float64
		wantDistance  bool
	}{
		{
			name:          "default weights no origin",
			weights:       DefaultWeights,
			city:          parisCity,
			query:         "par",
			origin:        nil,
			maxPopulation: 2_161_000,
			// 0.2*1.0 + 0.7*0.95 + 0.1*0.5
			wantFinal: 0.915,
		},
		{
			name:          "origin at the city itself",
			weights:       DefaultWeights,
			city:          parisCity,
			query:         "par",
			origin:        &types.Coords{Latitude: 48.8566, Longitude: 2.3522},
			maxPopulation: 2_161_000,
			// proximity 1.0 at zero distance
			wantFinal:    0.965,
			wantDistance: true,
		},
		{
			name:          "alternate weighting",
			weights:       Weights{Population: 0.3, Text: 0.5, Distance: 0.2},
			city:          parisCity,
			query:         "par",
			origin:        nil,
			maxPopulation: 2_161_000,
			// 0.3*1.0 + 0.5*0.95 + 0.2*0.5
			wantFinal: 0.875,
		},
		{
			name:          "nil population scores zero component",
			weights:       DefaultWeights,
			city:          cityFixture("Paris", nil, 48.8566, 2.3522),
			query:         "paris",
			origin:        nil,
			maxPopulation: 2_161_000,
			// 0.2*0 + 0.7*1.0 + 0.1*0.5
			wantFinal: 0.75,
		},
		{
			name:          "origin beyond the proximity range",
			weights:       DefaultWeights,
			city:          parisCity,
			query:         "paris",
			origin:        &types.Coords{Latitude: 40.7128, Longitude: -74.0060},
			maxPopulation: 2_161_000,
			// proximity clamps to 0 past 1000 km
			wantFinal:    0.9,
			wantDistance: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy := NewWeightedStrategy(tt.weights)
			got := strategy.Score(tt.city, tt.query, tt.origin, tt.maxPopulation)

			if math.Abs(got.Final-tt.wantFinal) > 1e-9 {
				t.Errorf("Score().Final = %v, want %v", got.Final, tt.wantFinal)
			}
			if tt.wantDistance && got.DistanceKm == nil {
				t.Error("Score().DistanceKm = nil, want a value when an origin is given")
			}
			if !tt.wantDistance && got.DistanceKm != nil {
				t.Errorf("Score().DistanceKm = %v, want nil without an origin", *got.DistanceKm)
			}
		})
	}
}

func TestWeightedStrategy_NeutralProximityWithoutOrigin(t *testing.T) {
	strategy := NewWeightedStrategy(DefaultWeights)
	city := cityFixture("Lyon", i64(500_000), 45.7640, 4.8357)

	got := strategy.Score(city, "lyon", nil, 1_000_000)

	if got.Proximity != NeutralProximity {
		t.Errorf("Score().Proximity = %v, want the neutral %v", got.Proximity, NeutralProximity)
	}
}

func TestWeightedStrategy_ComponentsInRange(t *testing.T) {
	strategy := NewWeightedStrategy(DefaultWeights)
	origin := &types.Coords{Latitude: 48.8566, Longitude: 2.3522}

	cities := []*types.City{
		cityFixture("Paris", i64(2_161_000), 48.8566, 2.3522),
		cityFixture("Tokyo", i64(13_960_000), 35.6762, 139.6503),
		cityFixture("Nowhere", nil, 0, 0),
	}

	for _, c := range cities {
		b := strategy.Score(c, "paris", origin, 13_960_000)
		for label, v := range map[string]float64{
			"Text":       b.Text,
			"Population": b.Population,
			"Proximity":  b.Proximity,
			"Final":      b.Final,
		} {
			if v < 0 || v > 1 || math.IsNaN(v) {
				t.Errorf("%s: %s = %v, want within [0,1]", c.Name, label, v)
			}
		}
	}
}
