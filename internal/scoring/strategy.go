package scoring

import (
	"math"

	"github.com/antoinebeaumadier/global-city-autocomplete/internal/types"
)

// Weights blends the three component scores into a final score.
type Weights struct {
	Population float64
	Text       float64
	Distance   float64
}

// DefaultWeights is the canonical blend.
var DefaultWeights = Weights{Population: 0.2, Text: 0.7, Distance: 0.1}

// Breakdown carries the component and final scores for one candidate.
type Breakdown struct {
	Text       float64
	Population float64
	Proximity  float64
	DistanceKm *float64 // nil when no origin was available
	Final      float64
}

// Strategy computes the relevance score of a candidate city for a query.
// origin is the requester's location, nil when unknown; maxPopulation is
// the reference for population normalization.
type Strategy interface {
	Score(city *types.City, query string, origin *types.Coords, maxPopulation int64) Breakdown
}

type weightedStrategy struct {
	weights Weights
}

// NewWeightedStrategy returns a Strategy blending text, population and
// proximity scores with the given weights.
func NewWeightedStrategy(weights Weights) Strategy {
	return &weightedStrategy{weights: weights}
}

func (s *weightedStrategy) Score(city *types.City, query string, origin *types.Coords, maxPopulation int64) Breakdown {
	b := Breakdown{
		Text:       sanitize(ScoreText(city.Name, query)),
		Population: sanitize(NormalizePopulation(city.Population, maxPopulation)),
		Proximity:  NeutralProximity,
	}

	if origin != nil {
		km := DistanceKm(*origin, city.Coords())
		b.DistanceKm = &km
		b.Proximity = sanitize(ProximityScore(km))
	}

	b.Final = sanitize(s.weights.Population*b.Population +
		s.weights.Text*b.Text +
		s.weights.Distance*b.Proximity)

	return b
}

// sanitize coerces NaN to 0 so a malformed component is never surfaced raw.
func sanitize(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
