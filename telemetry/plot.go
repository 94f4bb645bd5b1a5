package telemetry

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

type series struct {
	name  string
	color color.Color
	value func(GenerationStats) float64
}

var (
	fitnessSeries = []series{
		{"max", color.RGBA{R: 40, G: 160, B: 60, A: 255}, func(s GenerationStats) float64 { return s.FitnessMax }},
		{"mean", color.RGBA{R: 30, G: 90, B: 200, A: 255}, func(s GenerationStats) float64 { return s.FitnessMean }},
		{"min", color.RGBA{R: 200, G: 50, B: 40, A: 255}, func(s GenerationStats) float64 { return s.FitnessMin }},
	}
	complexitySeries = []series{
		{"p90", color.RGBA{R: 200, G: 120, B: 30, A: 255}, func(s GenerationStats) float64 { return s.ComplexityP90 }},
		{"mean", color.RGBA{R: 30, G: 90, B: 200, A: 255}, func(s GenerationStats) float64 { return s.ComplexityMean }},
		{"p10", color.RGBA{R: 120, G: 120, B: 120, A: 255}, func(s GenerationStats) float64 { return s.ComplexityP10 }},
	}
)

// WriteFitnessPlot draws parent fitness over generations to a PNG.
func WriteFitnessPlot(history []GenerationStats, path string) error {
	return writeHistoryPlot(history, "Parent fitness", "Fitness", fitnessSeries, path)
}

// WriteComplexityPlot draws child complexity over generations to a PNG.
func WriteComplexityPlot(history []GenerationStats, path string) error {
	return writeHistoryPlot(history, "Child complexity", "Nodes", complexitySeries, path)
}

func writeHistoryPlot(history []GenerationStats, title, yLabel string, lines []series, path string) error {
	if len(history) == 0 {
		return nil
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = yLabel

	for _, ser := range lines {
		pts := make(plotter.XYs, len(history))
		for i, s := range history {
			pts[i].X = float64(s.Generation)
			pts[i].Y = ser.value(s)
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("plotting %s: %w", ser.name, err)
		}
		line.Color = ser.color

		p.Add(line)
		p.Legend.Add(ser.name, line)
	}
	p.Legend.Top = true
	p.Legend.Left = true

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
