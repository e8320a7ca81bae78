package scoring

import (
	"math"
	"strings"
	"testing"
)

func TestScoreText(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		query     string
		want      float64
	}{
		{
			name:      "exact match",
			candidate: "Paris",
			query:     "paris",
			want:      1.0,
		},
		{
			name:      "exact match mixed case",
			candidate: "PARIS",
			query:     "Paris",
			want:      1.0,
		},
		{
			name:      "prefix",
			candidate: "Paris",
			query:     "par",
			want:      0.95,
		},
		{
			name:      "prefix across words",
			candidate: "New York",
			query:     "new y",
			want:      0.95,
		},
		{
			name:      "whole word",
			candidate: "San Juan",
			query:     "juan",
			want:      0.8,
		},
		{
			name:      "whole phrase mid-name",
			candidate: "Old San Juan",
			query:     "san juan",
			want:      0.8,
		},
		{
			name:      "second occurrence on a word boundary",
			candidate: "Montalta Alta",
			query:     "alta",
			want:      0.8,
		},
		{
			name:      "substring inside a word",
			candidate: "Le Havre",
			query:     "avr",
			want:      0.6,
		},
		{
			name:      "fuzzy one edit",
			candidate: "Paris",
			query:     "pariz",
			// distance 1 over longest length 5
			want: 0.4 + 0.2*(1-1.0/5.0),
		},
		{
			name:      "fuzzy across accents",
			candidate: "Zürich",
			query:     "zurich",
			// distance 1 over longest rune length 6
			want: 0.4 + 0.2*(1-1.0/6.0),
		},
		{
			name:      "word prefix fallback",
			candidate: "San Francisco",
			query:     "francisco bay",
			want:      0.5,
		},
		{
			name:      "word fuzzy fallback",
			candidate: "Saint Denis",
			query:     "deniz",
			want:      0.4,
		},
		{
			name:      "no match floor",
			candidate: "Tokyo",
			query:     "zzz",
			want:      0.2,
		},
		{
			name:      "empty query floor",
			candidate: "Paris",
			query:     "",
			want:      0.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreText(tt.candidate, tt.query)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ScoreText(%q, %q) = %v, want %v", tt.candidate, tt.query, got, tt.want)
			}
		})
	}
}

func TestScoreText_CaseSymmetry(t *testing.T) {
	pairs := []struct{ candidate, query string }{
		{"Paris", "PARIS"},
		{"Zürich", "zürich"},
		{"New York", "new YORK"},
		{"London", "lond"},
		{"Saint Denis", "deniz"},
	}

	for _, p := range pairs {
		a := ScoreText(p.candidate, p.query)
		b := ScoreText(strings.ToUpper(p.candidate), strings.ToLower(p.query))
		if a != b {
			t.Errorf("ScoreText(%q, %q) = %v but ScoreText(upper, lower) = %v", p.candidate, p.query, a, b)
		}
	}
}

func TestScoreText_PrefixBand(t *testing.T) {
	// A strict prefix scores strictly between the whole-word band and exact
	pairs := []struct{ candidate, query string }{
		{"Paris", "pa"},
		{"London", "lond"},
		{"São Paulo", "são"},
	}

	for _, p := range pairs {
		got := ScoreText(p.candidate, p.query)
		if got <= 0.8 || got >= 1.0 {
			t.Errorf("ScoreText(%q, %q) = %v, want in (0.8, 1.0)", p.candidate, p.query, got)
		}
	}
}

func TestScoreText_FuzzyBand(t *testing.T) {
	pairs := []struct{ candidate, query string }{
		{"Paris", "pariz"},
		{"Marseille", "marseile"},
		{"Lyon", "lyons"},
	}

	for _, p := range pairs {
		got := ScoreText(p.candidate, p.query)
		if got < 0.4 || got > 0.6 {
			t.Errorf("ScoreText(%q, %q) = %v, want in [0.4, 0.6]", p.candidate, p.query, got)
		}
	}
}

func TestFuzzyThreshold(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"ab", 2},               // short strings keep the floor of 2
		{"paris", 2},            // floor(1.5) = 1, floor wins
		{"marseille", 2},        // floor(2.7) = 2
		{"saint petersburg", 4}, // floor(4.8) = 4
	}

	for _, tt := range tests {
		if got := fuzzyThreshold(tt.s); got != tt.want {
			t.Errorf("fuzzyThreshold(%q) = %d, want %d", tt.s, got, tt.want)
		}
	}
}
