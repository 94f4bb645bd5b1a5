package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/genart/population"
)

// PhaseRender times texture or export rendering after a generation.
const PhaseRender = "render"

// phaseOrder lists the phases in the order they run.
var phaseOrder = []string{
	population.PhaseCrossover,
	population.PhaseMutate,
	population.PhaseSimplify,
	population.PhaseCull,
	PhaseRender,
}

// PerfSample holds timing data for a single generation.
type PerfSample struct {
	Total  time.Duration
	Phases map[string]time.Duration
}

// PerfCollector tracks performance metrics over a rolling window of
// generations.
type PerfCollector struct {
	windowSize  int
	samples     []PerfSample
	writeIndex  int
	sampleCount int

	// Frame timing (for graphics mode)
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of generations to average over.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 20
	}
	return &PerfCollector{
		windowSize: windowSize,
		samples:    make([]PerfSample, windowSize),
	}
}

// Record adds a generation's phase timings to the window. The sample total
// is the sum of its phases.
func (p *PerfCollector) Record(phases map[string]time.Duration) {
	sample := PerfSample{Phases: make(map[string]time.Duration, len(phases))}
	for phase, d := range phases {
		sample.Phases[phase] = d
		sample.Total += d
	}

	p.samples[p.writeIndex] = sample
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// AddPhase adds d to the named phase of the most recent sample.
func (p *PerfCollector) AddPhase(phase string, d time.Duration) {
	if p.sampleCount == 0 {
		return
	}
	last := (p.writeIndex - 1 + p.windowSize) % p.windowSize
	p.samples[last].Phases[phase] += d
	p.samples[last].Total += d
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	// Generation timing
	AvgDuration time.Duration
	MinDuration time.Duration
	MaxDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total generation time
	PhasePct map[string]float64

	// Frame timing (graphics mode)
	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.frameDuration > 0 {
		fps = float64(time.Second) / float64(p.frameDuration)
	}

	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg:      make(map[string]time.Duration),
			PhasePct:      make(map[string]float64),
			FrameDuration: p.frameDuration,
			FPS:           fps,
		}
	}

	var total, minDur, maxDur time.Duration
	phaseSum := make(map[string]time.Duration)

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.Total

		if i == 0 || s.Total < minDur {
			minDur = s.Total
		}
		if s.Total > maxDur {
			maxDur = s.Total
		}

		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)

	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avg) * 100
		}
	}

	return PerfStats{
		AvgDuration:   avg,
		MinDuration:   minDur,
		MaxDuration:   maxDur,
		PhaseAvg:      phaseAvg,
		PhasePct:      phasePct,
		FrameDuration: p.frameDuration,
		FPS:           fps,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_us", s.AvgDuration.Microseconds()),
		slog.Int64("min_us", s.MinDuration.Microseconds()),
		slog.Int64("max_us", s.MaxDuration.Microseconds()),
	}

	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}

	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	Generation   int     `csv:"generation"`
	AvgUS        int64   `csv:"avg_us"`
	MinUS        int64   `csv:"min_us"`
	MaxUS        int64   `csv:"max_us"`
	FPS          float64 `csv:"fps"`
	CrossoverPct float64 `csv:"crossover_pct"`
	MutatePct    float64 `csv:"mutate_pct"`
	SimplifyPct  float64 `csv:"simplify_pct"`
	CullPct      float64 `csv:"cull_pct"`
	RenderPct    float64 `csv:"render_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(generation int) PerfStatsCSV {
	return PerfStatsCSV{
		Generation:   generation,
		AvgUS:        s.AvgDuration.Microseconds(),
		MinUS:        s.MinDuration.Microseconds(),
		MaxUS:        s.MaxDuration.Microseconds(),
		FPS:          s.FPS,
		CrossoverPct: s.PhasePct[population.PhaseCrossover],
		MutatePct:    s.PhasePct[population.PhaseMutate],
		SimplifyPct:  s.PhasePct[population.PhaseSimplify],
		CullPct:      s.PhasePct[population.PhaseCull],
		RenderPct:    s.PhasePct[PhaseRender],
	}
}
