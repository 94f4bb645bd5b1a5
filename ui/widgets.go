package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight + 2
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawLines draws each line in the value colour.
func (r *Renderer) DrawLines(x, y int32, lines []string) int32 {
	for _, line := range lines {
		rl.DrawText(line, x, y, r.Theme.FontSize, r.Theme.ValueColor)
		y += r.Theme.LineHeight
	}
	return y
}

// DrawFitnessBar draws fitness against maxFitness, coloured by how much of
// it the organism kept.
func (r *Renderer) DrawFitnessBar(x, y int32, fitness, maxFitness int, width int32) int32 {
	ratio := fitnessRatio(fitness, maxFitness)

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 40

	rl.DrawText("Fitness:", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)

	fill := r.Theme.BarFillHigh
	switch {
	case ratio < 0.3:
		fill = r.Theme.BarFillLow
	case ratio < 0.7:
		fill = r.Theme.BarFillMedium
	}
	rl.DrawRectangle(barX, y+2, int32(float32(barWidth)*ratio), r.Theme.BarHeight, fill)
	rl.DrawText(fmt.Sprintf("%d", fitness), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}

// fitnessRatio maps fitness into [0, 1] of maxFitness.
func fitnessRatio(fitness, maxFitness int) float32 {
	if maxFitness <= 0 {
		return 0
	}
	ratio := float32(fitness) / float32(maxFitness)
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

// wrapText breaks s into lines of at most width runes, preferring to break
// after a space. At most maxLines lines are returned; a cut final line ends
// in "...".
func wrapText(s string, width, maxLines int) []string {
	if width < 4 || maxLines < 1 {
		return nil
	}

	var lines []string
	runes := []rune(s)
	for len(runes) > 0 {
		if len(lines) == maxLines-1 && len(runes) > width {
			lines = append(lines, string(runes[:width-3])+"...")
			return lines
		}
		if len(runes) <= width {
			lines = append(lines, string(runes))
			break
		}

		cut := width
		for i := width; i > width/2; i-- {
			if runes[i-1] == ' ' {
				cut = i
				break
			}
		}
		lines = append(lines, string(runes[:cut]))
		runes = runes[cut:]
	}
	return lines
}
