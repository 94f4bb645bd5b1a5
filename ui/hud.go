package ui

import (
	"fmt"
	"sort"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/genart/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title      string
	Generation int
	Parents    int
	Active     int // Slots still showing a child
	Slots      int
	FPS        int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	h.renderer.DrawPanel(5, 5, 260, 62)

	rl.DrawText(data.Title, 10, 10, 20, rl.White)
	rl.DrawText(
		fmt.Sprintf("Generation: %d | Parents: %d", data.Generation, data.Parents),
		10, 33, 14, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Showing: %d/%d | FPS: %d", data.Active, data.Slots, data.FPS),
		10, 49, 14, rl.LightGray,
	)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	width := rl.MeasureText(controls, 14) + 10
	h.renderer.DrawPanel(5, screenHeight-28, width, 24)
	rl.DrawText(controls, 10, screenHeight-23, 14, rl.LightGray)
}

// PerfPanel renders the generation timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	names := sortedPhases(stats.PhaseAvg)

	x := p.x
	y := p.y
	p.renderer.DrawPanel(x-5, y-5, 250, int32(46+14*len(names)))

	rl.DrawText("Generation Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s", stats.AvgDuration.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, name := range names {
		pct := stats.PhasePct[name]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", name, stats.PhaseAvg[name].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

// sortedPhases returns phase names sorted by average duration (descending).
func sortedPhases(avg map[string]time.Duration) []string {
	names := make([]string, 0, len(avg))
	for name := range avg {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if avg[names[i]] != avg[names[j]] {
			return avg[names[i]] > avg[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
