package game

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/genart/config"
	"github.com/pthm-cable/genart/population"
)

func newHeadlessGame(t *testing.T, opts Options, adjust ...func(*config.Config)) *Game {
	t.Helper()
	if err := config.Init(""); err != nil {
		t.Fatalf("config.Init: %v", err)
	}
	cfg := config.Cfg()
	cfg.Render.ExportWidth = 40
	cfg.Render.ExportHeight = 30
	cfg.Telemetry.LogGenerations = false
	for _, fn := range adjust {
		fn(cfg)
	}

	opts.Headless = true
	g, err := NewGameWithOptions(opts)
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	return g
}

func TestRunHeadless(t *testing.T) {
	out := t.TempDir()
	export := filepath.Join(t.TempDir(), "png")
	g := newHeadlessGame(t, Options{Seed: 42, OutputDir: out, ExportDir: export})

	if err := g.RunHeadless(5); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if g.Generation() != 5 {
		t.Errorf("generation = %d, want 5", g.Generation())
	}
	if err := g.Unload(); err != nil {
		t.Fatalf("Unload: %v", err)
	}

	for _, name := range []string{"config.yaml", "generations.csv", "perf.csv", "hall_of_fame.json"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	pngs, err := filepath.Glob(filepath.Join(export, "gen0005_slot*.png"))
	if err != nil {
		t.Fatal(err)
	}
	if len(pngs) != g.Manager().SlotCount() {
		t.Errorf("exported %d images, want %d", len(pngs), g.Manager().SlotCount())
	}
}

func TestRunHeadlessIsDeterministic(t *testing.T) {
	run := func() string {
		g := newHeadlessGame(t, Options{Seed: 7})
		if err := g.RunHeadless(4); err != nil {
			t.Fatalf("RunHeadless: %v", err)
		}
		if err := g.Unload(); err != nil {
			t.Fatalf("Unload: %v", err)
		}

		var desc string
		for _, c := range g.Manager().Children() {
			desc += c.Describe()
		}
		return desc
	}

	if a, b := run(), run(); a != b {
		t.Errorf("same seed produced different children:\n%s\nvs\n%s", a, b)
	}
}

func TestRunHeadlessRejectsSingleSlot(t *testing.T) {
	g := newHeadlessGame(t, Options{Seed: 3}, func(cfg *config.Config) {
		cfg.Grid.Rows = 1
		cfg.Grid.Columns = 1
	})

	err := g.RunHeadless(3)
	if !errors.Is(err, population.ErrPopulationTooSmall) {
		t.Fatalf("RunHeadless = %v, want ErrPopulationTooSmall", err)
	}
	if g.Generation() != 0 {
		t.Errorf("generation = %d, want 0", g.Generation())
	}
	if err := g.Unload(); err != nil {
		t.Errorf("Unload: %v", err)
	}
}
