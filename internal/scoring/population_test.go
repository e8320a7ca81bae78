package scoring

import (
	"math"
	"testing"
)

func i64(v int64) *int64 {
	return &v
}

func TestNormalizePopulation(t *testing.T) {
	tests := []struct {
		name          string
		population    *int64
		maxPopulation int64
		want          float64
	}{
		{
			name:          "nil population",
			population:    nil,
			maxPopulation: 1_000_000,
			want:          0,
		},
		{
			name:          "zero population",
			population:    i64(0),
			maxPopulation: 1_000_000,
			want:          0,
		},
		{
			name:          "negative population",
			population:    i64(-5),
			maxPopulation: 1_000_000,
			want:          0,
		},
		{
			name:          "population equal to max",
			population:    i64(1_000_000),
			maxPopulation: 1_000_000,
			want:          1,
		},
		{
			name:          "log scale midpoint",
			population:    i64(10_000),
			maxPopulation: 1_000_000,
			want:          4.0 / 6.0,
		},
		{
			name:          "population one scores zero",
			population:    i64(1),
			maxPopulation: 1_000_000,
			want:          0,
		},
		{
			name:          "degenerate max zero",
			population:    i64(500),
			maxPopulation: 0,
			want:          0,
		},
		{
			name:          "degenerate max one",
			population:    i64(500),
			maxPopulation: 1,
			want:          0,
		},
		{
			name:          "population above max clamps to one",
			population:    i64(2_000_000),
			maxPopulation: 1_000_000,
			want:          1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePopulation(tt.population, tt.maxPopulation)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("NormalizePopulation(%v, %d) = %v, want %v", tt.population, tt.maxPopulation, got, tt.want)
			}
		})
	}
}

func TestNormalizePopulation_Monotonic(t *testing.T) {
	// Larger populations never score lower against the same reference
	const maxPop = 10_000_000
	populations := []int64{10, 1_000, 50_000, 1_000_000, 10_000_000}

	prev := -1.0
	for _, p := range populations {
		got := NormalizePopulation(i64(p), maxPop)
		if got < prev {
			t.Fatalf("NormalizePopulation(%d, %d) = %v, below previous %v", p, int64(maxPop), got, prev)
		}
		prev = got
	}
}
