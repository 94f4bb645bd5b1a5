package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/genart/config"
	"github.com/pthm-cable/genart/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics, judging generations automatically")
	generations := flag.Int("generations", 0, "Generations to run headless (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, plots and config snapshot")
	exportDir := flag.String("export-dir", "", "Directory for PNG exports of the final generation")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	autoAdvance := flag.Duration("auto-advance", 0, "Advance the viewer automatically after this interval (0 = wait for input)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:        rngSeed,
		OutputDir:   *outputDir,
		ExportDir:   *exportDir,
		Headless:    *headless,
		AutoAdvance: *autoAdvance,
	}

	if *headless {
		n := cfg.Headless.Generations
		if *generations > 0 {
			n = *generations
		}

		g, err := game.NewGameWithOptions(opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}

		slog.Info("seed", "seed", rngSeed)
		runErr := g.RunHeadless(n)
		if err := g.Unload(); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if runErr != nil {
			slog.Error("headless run failed", "error", runErr)
			os.Exit(1)
		}
		slog.Info("headless run complete", "generation", g.Generation())
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "genart")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return
	}

	slog.Info("seed", "seed", rngSeed)
	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}

	if err := g.Export(); err != nil {
		slog.Error("export failed", "error", err)
	}
	if err := g.Unload(); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
}
