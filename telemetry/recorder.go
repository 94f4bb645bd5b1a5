package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/genart/config"
	"github.com/pthm-cable/genart/population"
)

// Recorder observes a population manager and turns each generation into
// log lines, CSV rows, a hall of fame and end-of-run plots.
type Recorder struct {
	out  *OutputManager
	perf *PerfCollector
	hof  *HallOfFame

	spawnThreshold int
	logGenerations bool
	perfWindow     int
	plot           bool

	history []GenerationStats
	err     error
}

var _ population.Observer = (*Recorder)(nil)

// NewRecorder creates a recorder writing to out, which may be nil.
func NewRecorder(cfg *config.Config, out *OutputManager) *Recorder {
	return &Recorder{
		out:            out,
		perf:           NewPerfCollector(cfg.Telemetry.PerfWindow),
		hof:            NewHallOfFame(cfg.Telemetry.HallOfFame),
		spawnThreshold: cfg.Population.SpawnThreshold,
		logGenerations: cfg.Telemetry.LogGenerations,
		perfWindow:     cfg.Telemetry.PerfWindow,
		plot:           cfg.Telemetry.Plot,
	}
}

// OnGeneration implements population.Observer.
func (r *Recorder) OnGeneration(rep population.GenerationReport) {
	stats := ComputeGenerationStats(rep, r.spawnThreshold)
	r.history = append(r.history, stats)
	r.perf.Record(rep.Phases)

	for _, p := range rep.Parents {
		r.hof.Consider(p, rep.Generation, r.spawnThreshold)
	}

	if r.logGenerations {
		slog.Info("generation", "stats", stats)
		slog.Info("children", "generation", rep.Generation, "complexity", Complexities(rep.Children))
	}
	if rep.Generation%r.perfWindow == 0 {
		slog.Info("perf", "generation", rep.Generation, "stats", r.perf.Stats())
	}

	r.keep(r.out.WriteGeneration(stats))
	r.keep(r.out.WritePerf(r.perf.Stats(), rep.Generation))
}

// RecordRender adds render time to the latest generation's sample.
func (r *Recorder) RecordRender(d time.Duration) {
	r.perf.AddPhase(PhaseRender, d)
}

// keep remembers the first write error and logs every one.
func (r *Recorder) keep(err error) {
	if err == nil {
		return
	}
	slog.Error("telemetry write failed", "error", err)
	if r.err == nil {
		r.err = err
	}
}

// Perf returns the performance collector.
func (r *Recorder) Perf() *PerfCollector { return r.perf }

// HallOfFame returns the hall of fame.
func (r *Recorder) HallOfFame() *HallOfFame { return r.hof }

// History returns the stats of every observed generation.
func (r *Recorder) History() []GenerationStats { return r.history }

// Err returns the first write error, if any.
func (r *Recorder) Err() error { return r.err }

// Close writes the hall of fame and plots, then closes the output files.
// It returns the first error seen during the run.
func (r *Recorder) Close() error {
	r.keep(r.out.WriteHallOfFame(r.hof))
	if r.plot {
		r.keep(r.out.WritePlots(r.history))
	}
	r.keep(r.out.Close())
	return r.err
}
