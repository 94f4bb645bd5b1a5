package ui

import (
	"strings"
	"testing"
	"time"
)

func TestFitnessRatio(t *testing.T) {
	tests := []struct {
		fitness, max int
		want         float32
	}{
		{100, 125, 0.8},
		{125, 125, 1},
		{150, 125, 1},
		{-5, 125, 0},
		{10, 0, 0},
	}
	for _, tt := range tests {
		if got := fitnessRatio(tt.fitness, tt.max); got != tt.want {
			t.Errorf("fitnessRatio(%d, %d) = %v, want %v", tt.fitness, tt.max, got, tt.want)
		}
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		width    int
		maxLines int
		want     []string
	}{
		{"fits", "r = x0", 10, 3, []string{"r = x0"}},
		{"breaks at space", "r = (x0 + x1)", 8, 3, []string{"r = (x0 ", "+ x1)"}},
		{"hard break", "abcdefghij", 4, 5, []string{"abcd", "efgh", "ij"}},
		{"truncates", "aaaa bbbb cccc dddd", 5, 2, []string{"aaaa ", "bb..."}},
		{"too narrow", "abc", 3, 2, nil},
		{"empty", "", 10, 2, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapText(tt.s, tt.width, tt.maxLines)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("wrapText(%q) = %q, want %q", tt.s, got, tt.want)
			}
		})
	}
}

func TestSortedPhases(t *testing.T) {
	got := sortedPhases(map[string]time.Duration{
		"mutate":    3 * time.Millisecond,
		"crossover": time.Millisecond,
		"cull":      time.Millisecond,
		"simplify":  5 * time.Millisecond,
	})
	want := "simplify,mutate,crossover,cull"
	if strings.Join(got, ",") != want {
		t.Errorf("sortedPhases = %v, want %s", got, want)
	}
}
