package game

import (
	"image"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/genart/render"
	"github.com/pthm-cable/genart/ui"
)

var (
	eliminatedFill = rl.Color{R: 30, G: 30, B: 34, A: 255}
	hoverBorder    = rl.White
	boostBorder    = rl.Gold
	tileBorder     = rl.Color{R: 60, G: 70, B: 80, A: 255}
)

const controlsText = "[Any key] next generation  [LMB] eliminate  [RMB] boost  [Tab] perf  [F11] fullscreen"

// initTextures allocates one texture and pixel buffer per slot at the
// configured tile resolution.
func (g *Game) initTextures() {
	w := int(g.cfg.Derived.TileWidth)
	h := int(g.cfg.Derived.TileHeight)

	for i := 0; i < g.slots.Len(); i++ {
		img := rl.GenImageColor(w, h, rl.Black)
		g.textures = append(g.textures, rl.LoadTextureFromImage(img))
		rl.UnloadImage(img)

		g.images = append(g.images, image.NewNRGBA(image.Rect(0, 0, w, h)))
		g.pixels = append(g.pixels, nil)
	}
}

// refreshTextures re-renders every slot whose child changed.
func (g *Game) refreshTextures() {
	dirty := g.slots.TakeDirty()
	if len(dirty) == 0 {
		return
	}

	start := time.Now()
	children := g.manager.Children()
	for _, i := range dirty {
		g.renderer.RenderInto(children[i], g.images[i])
		g.pixels[i] = render.PixelsInto(g.pixels[i], g.images[i])
		rl.UpdateTexture(g.textures[i], g.pixels[i])
	}
	g.recorder.RecordRender(time.Since(start))
}

// Draw renders the game.
func (g *Game) Draw() {
	g.recorder.Perf().RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.drawSlots()

	g.hud.Draw(ui.HUDData{
		Title:      "genart",
		Generation: g.manager.Generation(),
		Parents:    len(g.manager.Parents()),
		Active:     g.slots.Active(),
		Slots:      g.slots.Len(),
		FPS:        rl.GetFPS(),
	})
	if g.status != "" {
		rl.DrawText(g.status, 10, 72, 16, rl.Orange)
	}

	g.drawNextButton()

	if g.showPerf {
		g.perfPanel.Draw(g.recorder.Perf().Stats())
	}

	g.drawHovered()
	g.hud.DrawControls(int32(g.screenWidth), int32(g.screenHeight), controlsText)

	rl.EndDrawing()
}

// drawSlots draws every slot's texture, or a placeholder once its child
// was eliminated.
func (g *Game) drawSlots() {
	for i := 0; i < g.slots.Len(); i++ {
		tile, slot := g.slots.Get(i)
		dst := rl.Rectangle{X: tile.X, Y: tile.Y, Width: tile.Width, Height: tile.Height}

		if slot.Active {
			tex := g.textures[i]
			src := rl.Rectangle{Width: float32(tex.Width), Height: float32(tex.Height)}
			rl.DrawTexturePro(tex, src, dst, rl.Vector2{}, 0, rl.White)
		} else {
			rl.DrawRectangleRec(dst, eliminatedFill)
			label := "eliminated"
			w := rl.MeasureText(label, 16)
			rl.DrawText(label, int32(tile.X+tile.Width/2)-w/2, int32(tile.Y+tile.Height/2)-8, 16, rl.Gray)
		}

		border := tileBorder
		thickness := float32(1)
		switch {
		case i == g.hovered:
			border, thickness = hoverBorder, 2
		case slot.Boosted:
			border, thickness = boostBorder, 3
		}
		rl.DrawRectangleLinesEx(dst, thickness, border)
	}
}

// drawHovered shows the organism panel for the slot under the mouse.
func (g *Game) drawHovered() {
	if g.hovered < 0 || !g.manager.Active(g.hovered) {
		return
	}

	child, _ := g.manager.Slot(g.hovered)
	maxFitness := 0
	for _, c := range g.manager.Children() {
		if c != nil && c.Fitness() > maxFitness {
			maxFitness = c.Fitness()
		}
	}

	mouse := rl.GetMousePosition()
	g.organismPanel.Draw(int32(mouse.X)+16, int32(mouse.Y)+16, int32(g.screenWidth), int32(g.screenHeight), ui.OrganismData{
		Slot:        g.hovered,
		ID:          child.ID,
		Fitness:     child.Fitness(),
		MaxFitness:  maxFitness,
		Boosted:     child.Boosted(),
		Complexity:  child.Complexity(),
		Expressions: strings.Split(strings.TrimSpace(child.Describe()), "\n"),
	})
}
