package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OrganismData describes the organism under the mouse.
type OrganismData struct {
	Slot        int
	ID          uint64
	Fitness     int
	MaxFitness  int
	Boosted     bool
	Complexity  int
	Expressions []string // One per channel
}

// OrganismPanel renders details of the hovered organism.
type OrganismPanel struct {
	renderer *Renderer
	width    int32
}

// NewOrganismPanel creates a panel of the given width.
func NewOrganismPanel(width int32) *OrganismPanel {
	return &OrganismPanel{
		renderer: NewRenderer(),
		width:    width,
	}
}

// maxExpressionLines bounds how much of each channel is shown.
const maxExpressionLines = 3

// Draw renders the panel with its top-left corner at (x, y), shifted to
// stay inside the screen.
func (p *OrganismPanel) Draw(x, y, screenWidth, screenHeight int32, data OrganismData) {
	t := p.renderer.Theme
	charsPerLine := int((p.width - 2*t.Padding) / 7)

	var exprLines []string
	for _, e := range data.Expressions {
		exprLines = append(exprLines, wrapText(e, charsPerLine, maxExpressionLines)...)
	}

	height := 3*t.LineHeight + 2 + t.HeaderFontSize + 2 + int32(len(exprLines))*t.LineHeight + 2*t.Padding
	if x+p.width > screenWidth {
		x = screenWidth - p.width
	}
	if y+height > screenHeight {
		y = screenHeight - height
	}

	p.renderer.DrawPanel(x, y, p.width, height)
	cx := x + t.Padding
	cy := y + t.Padding

	title := fmt.Sprintf("Slot %d  #%d", data.Slot, data.ID)
	if data.Boosted {
		title += "  (boosted)"
	}
	cy = p.renderer.DrawSectionHeader(cx, cy, title)
	cy = p.renderer.DrawFitnessBar(cx, cy, data.Fitness, data.MaxFitness, p.width-2*t.Padding)
	cy = p.renderer.DrawLabelValue(cx, cy, "Complexity", fmt.Sprintf("%d", data.Complexity))
	cy += t.LineHeight / 2
	p.renderer.DrawLines(cx, cy, exprLines)

	rl.DrawRectangleLines(x, y, p.width, height, rl.Gray)
}
