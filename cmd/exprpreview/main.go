// Expression preview tool - evolve a single organism by hand with sliders.
//
// Usage: go run ./cmd/exprpreview [-config path] [-seed n]
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/genart/config"
	"github.com/pthm-cable/genart/organism"
	"github.com/pthm-cable/genart/population"
	"github.com/pthm-cable/genart/render"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
)

// preview holds the organism being edited and its texture.
type preview struct {
	rng      *rand.Rand
	renderer *render.Renderer
	pcfg     population.Config
	org      *organism.Organism
	nextID   uint64

	resolution int
	img        *image.NRGBA
	pixels     []color.RGBA
	texture    rl.Texture2D
	renderTime time.Duration
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	exportDir := flag.String("export-dir", ".", "Directory for exported PNGs")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	pcfg, err := population.FromConfig(cfg)
	if err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	rl.InitWindow(windowWidth, windowHeight, "Expression Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	p := &preview{
		rng:        rand.New(rand.NewSource(rngSeed)),
		renderer:   render.New(cfg.Render.Workers, pcfg.Params),
		pcfg:       pcfg,
		resolution: 256,
	}
	p.org = p.newOrganism()
	p.resize(p.resolution)
	defer func() { rl.UnloadTexture(p.texture) }()

	needsRender := true

	for !rl.WindowShouldClose() {
		if needsRender {
			p.render()
			needsRender = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			p.texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(p.resolution), Height: float32(p.resolution)},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Organism #%d  Mode: %s  Complexity: %d", p.org.ID, p.org.Mode(), p.org.Complexity()), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Render: %s at %dx%d", p.renderTime.Round(time.Microsecond), p.resolution, p.resolution), 15, statsY+20, 16, rl.DarkGray)

		exprY := statsY + 48
		for _, line := range strings.Split(strings.TrimSpace(p.org.Describe()), "\n") {
			if len(line) > 80 {
				line = line[:77] + "..."
			}
			rl.DrawText(line, 15, exprY, 12, rl.Gray)
			exprY += 16
		}

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Mutation Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		m := &p.pcfg.Mutation
		m.GrowthRate = float64(slider(panelX, &panelY, "Growth rate", "%.2f", float32(m.GrowthRate), 0, 1))
		m.GrowthScale = float64(slider(panelX, &panelY, "Growth scale (prune size)", "%.0f", float32(m.GrowthScale), 10, 400))
		m.ModifierSwapRate = float64(slider(panelX, &panelY, "Modifier swap rate", "%.2f", float32(m.ModifierSwapRate), 0, 0.5))
		m.ConstantJitterRate = float64(slider(panelX, &panelY, "Constant jitter rate", "%.2f", float32(m.ConstantJitterRate), 0, 1))

		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15

		newRes := int(slider(panelX, &panelY, "Preview resolution", "%.0f", float32(p.resolution), 32, previewSize))
		if newRes != p.resolution {
			p.resize(newRes)
			needsRender = true
		}
		panelY += 10

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Mutate") {
			p.org.Mutate(p.rng, p.pcfg.Mutation)
			needsRender = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Mutate x10") {
			for i := 0; i < 10; i++ {
				p.org.Mutate(p.rng, p.pcfg.Mutation)
			}
			needsRender = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Simplify") {
			p.org.Simplify()
			needsRender = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "New Random") {
			p.org = p.newOrganism()
			needsRender = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(p.pcfg.Mode == organism.ChannelsReference, "Independent", "Reference")) {
			if p.pcfg.Mode == organism.ChannelsReference {
				p.pcfg.Mode = organism.ChannelsIndependent
			} else {
				p.pcfg.Mode = organism.ChannelsReference
			}
			p.org = p.newOrganism()
			needsRender = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Export PNG") {
			path := filepath.Join(*exportDir, fmt.Sprintf("organism_%d.png", p.org.ID))
			if err := render.Export(p.img, path); err != nil {
				slog.Error("export failed", "error", err)
			} else {
				slog.Info("exported", "path", path)
			}
		}
		panelY += 55

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range strings.Split(mutationYAML(p.pcfg), "\n") {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML, E to copy expressions", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(mutationYAML(p.pcfg))
		}
		if rl.IsKeyPressed(rl.KeyE) {
			rl.SetClipboardText(p.org.Describe())
		}

		rl.EndDrawing()
	}
}

// slider draws a labelled slider at (x, *y), advances *y past it and
// returns the new value.
func slider(x float32, y *float32, label, format string, value, lo, hi float32) float32 {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	newValue := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprintf(format, lo), fmt.Sprintf(format, hi),
		value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, newValue), int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	return newValue
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

func mutationYAML(c population.Config) string {
	return fmt.Sprintf(`organism:
  channel_mode: %s
mutation:
  growth_scale: %.0f
  growth_rate: %.2f
  modifier_swap_rate: %.2f
  constant_jitter_rate: %.2f`,
		c.Mode, c.Mutation.GrowthScale, c.Mutation.GrowthRate,
		c.Mutation.ModifierSwapRate, c.Mutation.ConstantJitterRate)
}

func (p *preview) newOrganism() *organism.Organism {
	p.nextID++
	return organism.New(p.nextID, p.rng, p.pcfg.Mode, p.pcfg.Params)
}

// resize reallocates the pixel buffer and texture at size x size.
func (p *preview) resize(size int) {
	if p.texture.ID != 0 {
		rl.UnloadTexture(p.texture)
	}
	p.resolution = size
	p.img = image.NewNRGBA(image.Rect(0, 0, size, size))
	p.pixels = nil

	img := rl.GenImageColor(size, size, rl.Black)
	p.texture = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
}

func (p *preview) render() {
	start := time.Now()
	p.renderer.RenderInto(p.org, p.img)
	p.pixels = render.PixelsInto(p.pixels, p.img)
	rl.UpdateTexture(p.texture, p.pixels)
	p.renderTime = time.Since(start)
}
