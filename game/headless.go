package game

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pthm-cable/genart/population"
	"github.com/pthm-cable/genart/render"
)

// RunHeadless plays n generations with a seeded judge standing in for the
// user, then exports the final children when an export directory is set.
//
// A population that can never breed, such as a single slot with no
// parents, fails up front with population.ErrPopulationTooSmall.
func (g *Game) RunHeadless(n int) error {
	if breeders := g.manager.SlotCount() + len(g.manager.Parents()); breeders < 2 {
		return fmt.Errorf("%w: headless runs need at least two slots, grid has %d",
			population.ErrPopulationTooSmall, g.manager.SlotCount())
	}

	slog.Info("starting headless run",
		"generations", n,
		"eliminate_chance", g.cfg.Headless.EliminateChance,
		"boost_chance", g.cfg.Headless.BoostChance,
	)

	for i := 0; i < n; i++ {
		verdict, err := g.judge.Judge(g.manager)
		if err != nil {
			return fmt.Errorf("judging generation %d: %w", g.manager.Generation(), err)
		}
		slog.Debug("judged",
			"generation", g.manager.Generation(),
			"eliminated", verdict.Eliminated,
			"boosted", verdict.Boosted,
		)

		if err := g.advance(); err != nil {
			return fmt.Errorf("advancing generation %d: %w", g.manager.Generation(), err)
		}
	}

	if err := g.recorder.Err(); err != nil {
		return err
	}
	return g.Export()
}

// Export writes the current children as PNGs to the export directory.
func (g *Game) Export() error {
	if g.exportDir == "" {
		return nil
	}
	if err := os.MkdirAll(g.exportDir, 0755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}

	paths, err := g.renderer.ExportGeneration(g.manager.Children(), g.manager.Generation(), g.exportDir, render.ExportOptions{
		Width:          g.cfg.Render.ExportWidth,
		Height:         g.cfg.Render.ExportHeight,
		ThumbnailWidth: g.cfg.Render.ThumbnailWidth,
	})
	if err != nil {
		return err
	}
	slog.Info("exported generation", "generation", g.manager.Generation(), "files", len(paths), "dir", g.exportDir)
	return nil
}
