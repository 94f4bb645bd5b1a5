package game

import (
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Update processes input and refreshes textures for the next frame.
func (g *Game) Update() {
	g.handleResize()
	g.handleInput()

	if g.autoAdvance > 0 && time.Since(g.lastAdvance) >= g.autoAdvance {
		g.tryAdvance()
		// Keep the timer running even when breeding was refused.
		g.lastAdvance = time.Now()
	}

	g.refreshTextures()
}

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	advance := false
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		switch key {
		case rl.KeyF11:
			rl.ToggleFullscreen()
		case rl.KeyTab:
			g.showPerf = !g.showPerf
		case rl.KeyEscape: // handled by WindowShouldClose
		default:
			advance = true
		}
	}

	mouse := rl.GetMousePosition()
	g.hovered = -1
	if !rl.CheckCollisionPointRec(mouse, g.nextButtonRect()) {
		if i, ok := g.slots.SlotAt(mouse.X, mouse.Y); ok {
			g.hovered = i
		}
	}

	if g.hovered >= 0 {
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			g.eliminate(g.hovered)
		}
		if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
			g.boost(g.hovered)
		}
	}

	if advance {
		g.tryAdvance()
	}
}

// handleResize re-lays the slots out after a window resize.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.slots.Relayout(g.layout())
	g.perfPanel.SetPosition(int32(w)-250, 10)
}

// nextButtonRect returns the bounds of the "Next generation" button.
func (g *Game) nextButtonRect() rl.Rectangle {
	return rl.Rectangle{X: g.screenWidth - 170, Y: g.screenHeight - 40, Width: 160, Height: 30}
}

// drawNextButton draws the "Next generation" button and advances when it
// is clicked.
func (g *Game) drawNextButton() {
	if gui.Button(g.nextButtonRect(), "Next generation") {
		g.tryAdvance()
	}
}
