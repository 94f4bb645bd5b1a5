// Package game wires the population manager to the raylib viewer and to
// the headless runner.
package game

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/genart/components"
	"github.com/pthm-cable/genart/config"
	"github.com/pthm-cable/genart/population"
	"github.com/pthm-cable/genart/render"
	"github.com/pthm-cable/genart/systems"
	"github.com/pthm-cable/genart/telemetry"
	"github.com/pthm-cable/genart/ui"
)

// Game holds the complete viewer state.
type Game struct {
	cfg      *config.Config
	manager  *population.Manager
	renderer *render.Renderer
	judge    *systems.Judge

	recorder *telemetry.Recorder

	// Display slots
	world *ecs.World
	slots *systems.SlotSystem

	// Per-slot pixel buffers (viewer only)
	textures []rl.Texture2D
	images   []*image.NRGBA
	pixels   [][]color.RGBA

	// UI
	hud           *ui.HUD
	perfPanel     *ui.PerfPanel
	organismPanel *ui.OrganismPanel
	showPerf      bool
	status        string

	// State
	headless    bool
	exportDir   string
	autoAdvance time.Duration
	lastAdvance time.Time
	hovered     int // -1 when no slot is under the mouse

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a game from the global config. Unless
// opts.Headless is set, the raylib window must already be open.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	pcfg, err := population.FromConfig(cfg)
	if err != nil {
		return nil, err
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, err
	}

	g := &Game{
		cfg:          cfg,
		manager:      population.New(pcfg, rand.New(rand.NewSource(opts.Seed))),
		renderer:     render.New(cfg.Render.Workers, cfg.Organism.Parameters),
		judge:        systems.NewJudge(rand.New(rand.NewSource(opts.Seed+1)), cfg.Headless.EliminateChance, cfg.Headless.BoostChance),
		recorder:     telemetry.NewRecorder(cfg, output),
		world:        ecs.NewWorld(),
		headless:     opts.Headless,
		exportDir:    opts.ExportDir,
		autoAdvance:  opts.AutoAdvance,
		lastAdvance:  time.Now(),
		hovered:      -1,
		screenWidth:  float32(cfg.Screen.Width),
		screenHeight: float32(cfg.Screen.Height),
	}
	g.manager.SetObserver(g.recorder)

	g.slots = systems.NewSlotSystem(g.world, g.layout())
	g.slots.Sync(g.manager.Children())

	if !g.headless {
		g.hud = ui.NewHUD()
		g.perfPanel = ui.NewPerfPanel(int32(g.screenWidth)-250, 10)
		g.organismPanel = ui.NewOrganismPanel(320)
		g.initTextures()
	}

	slog.Info("population seeded",
		"slots", g.manager.SlotCount(),
		"mode", pcfg.Mode.String(),
		"cap", pcfg.Cap,
		"render_workers", g.renderer.Workers(),
	)
	return g, nil
}

// layout returns the slot tiles for the current screen size.
func (g *Game) layout() []components.Tile {
	return components.Layout(g.screenWidth, g.screenHeight, g.cfg.Grid.Rows, g.cfg.Grid.Columns)
}

// Manager returns the population manager.
func (g *Game) Manager() *population.Manager { return g.manager }

// Generation returns the current generation number.
func (g *Game) Generation() int { return g.manager.Generation() }

// advance breeds the next generation and refreshes the slots.
func (g *Game) advance() error {
	if _, err := g.manager.AdvanceGeneration(); err != nil {
		return err
	}
	g.slots.Sync(g.manager.Children())
	g.lastAdvance = time.Now()
	g.status = ""
	return nil
}

// tryAdvance advances from the viewer; a population too small to breed is
// reported on screen instead of failing.
func (g *Game) tryAdvance() {
	err := g.advance()
	if errors.Is(err, population.ErrPopulationTooSmall) {
		g.status = "Keep at least two images alive to breed"
		slog.Warn("advance skipped", "error", err)
		return
	}
	if err != nil {
		slog.Error("advance failed", "error", err)
	}
}

// eliminate removes the child in slot i.
func (g *Game) eliminate(i int) {
	if err := g.manager.Eliminate(i); err != nil {
		slog.Debug("eliminate ignored", "slot", i, "error", err)
		return
	}
	g.slots.Sync(g.manager.Children())
}

// boost rewards the child in slot i.
func (g *Game) boost(i int) {
	if err := g.manager.Boost(i); err != nil {
		slog.Debug("boost ignored", "slot", i, "error", err)
		return
	}
	g.slots.Sync(g.manager.Children())
}

// Unload releases GPU resources and flushes telemetry.
func (g *Game) Unload() error {
	for _, tex := range g.textures {
		rl.UnloadTexture(tex)
	}
	g.textures = nil
	return g.recorder.Close()
}
