package telemetry

import (
	"log/slog"
	"sort"

	"github.com/pthm-cable/genart/organism"
	"github.com/pthm-cable/genart/population"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GenerationStats summarizes one completed generation.
type GenerationStats struct {
	Generation int `csv:"generation"`

	// Population counts after culling
	Parents  int `csv:"parents"`
	Children int `csv:"children"`
	Culled   int `csv:"culled"`
	Eligible int `csv:"eligible"` // Parents that may be culled next time
	Boosted  int `csv:"boosted"`

	// Parent fitness distribution
	FitnessMean float64 `csv:"fitness_mean"`
	FitnessStd  float64 `csv:"fitness_std"`
	FitnessMin  float64 `csv:"fitness_min"`
	FitnessP50  float64 `csv:"fitness_p50"`
	FitnessMax  float64 `csv:"fitness_max"`

	// Child complexity distribution
	ComplexityMean float64 `csv:"complexity_mean"`
	ComplexityP10  float64 `csv:"complexity_p10"`
	ComplexityP50  float64 `csv:"complexity_p50"`
	ComplexityP90  float64 `csv:"complexity_p90"`
	ComplexityMax  float64 `csv:"complexity_max"`
}

// Summary holds the distribution of a sample.
type Summary struct {
	Mean, Std     float64
	Min, Max      float64
	P10, P50, P90 float64
}

// Summarize computes mean, sample standard deviation, extremes and
// empirical quantiles. An empty sample yields the zero Summary.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var s Summary
	if n > 1 {
		s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	} else {
		s.Mean = sorted[0]
	}
	s.Min = floats.Min(sorted)
	s.Max = floats.Max(sorted)
	s.P10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	s.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	s.P90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return s
}

// ComputeGenerationStats builds the summary for a generation report.
// spawnThreshold decides which parents count as eligible for culling.
func ComputeGenerationStats(r population.GenerationReport, spawnThreshold int) GenerationStats {
	s := GenerationStats{
		Generation: r.Generation,
		Parents:    len(r.Parents),
		Culled:     len(r.Culled),
	}

	fitness := make([]float64, 0, len(r.Parents))
	for _, p := range r.Parents {
		fitness = append(fitness, float64(p.Fitness()))
		if p.CanDie(spawnThreshold) {
			s.Eligible++
		}
		if p.Boosted() {
			s.Boosted++
		}
	}

	complexity := make([]float64, 0, len(r.Children))
	for _, c := range r.Children {
		if c == nil {
			continue
		}
		s.Children++
		complexity = append(complexity, float64(c.Complexity()))
	}

	f := Summarize(fitness)
	s.FitnessMean, s.FitnessStd = f.Mean, f.Std
	s.FitnessMin, s.FitnessP50, s.FitnessMax = f.Min, f.P50, f.Max

	c := Summarize(complexity)
	s.ComplexityMean = c.Mean
	s.ComplexityP10, s.ComplexityP50, s.ComplexityP90 = c.P10, c.P50, c.P90
	s.ComplexityMax = c.Max

	return s
}

// Complexities returns the complexity of every active child.
func Complexities(children []*organism.Organism) []int {
	out := make([]int, 0, len(children))
	for _, c := range children {
		if c != nil {
			out = append(out, c.Complexity())
		}
	}
	return out
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("parents", s.Parents),
		slog.Int("children", s.Children),
		slog.Int("culled", s.Culled),
		slog.Int("eligible", s.Eligible),
		slog.Int("boosted", s.Boosted),
		slog.Float64("fitness_mean", s.FitnessMean),
		slog.Float64("fitness_std", s.FitnessStd),
		slog.Float64("fitness_min", s.FitnessMin),
		slog.Float64("fitness_p50", s.FitnessP50),
		slog.Float64("fitness_max", s.FitnessMax),
		slog.Float64("complexity_mean", s.ComplexityMean),
		slog.Float64("complexity_p10", s.ComplexityP10),
		slog.Float64("complexity_p50", s.ComplexityP50),
		slog.Float64("complexity_p90", s.ComplexityP90),
		slog.Float64("complexity_max", s.ComplexityMax),
	)
}
