package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/genart/config"
	"github.com/pthm-cable/genart/population"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	require.NoError(t, err)
	assert.Nil(t, om)

	// Every method is safe on a nil manager.
	assert.NoError(t, om.WriteGeneration(GenerationStats{}))
	assert.NoError(t, om.WritePerf(PerfStats{}, 1))
	assert.NoError(t, om.WriteHallOfFame(NewHallOfFame(1)))
	assert.NoError(t, om.WritePlots([]GenerationStats{{Generation: 1}}))
	assert.NoError(t, om.WriteConfig(nil))
	assert.Empty(t, om.Dir())
	assert.NoError(t, om.Close())
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestOutputManager_CSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	require.NoError(t, err)

	require.NoError(t, om.WriteGeneration(GenerationStats{Generation: 1, Parents: 8}))
	require.NoError(t, om.WriteGeneration(GenerationStats{Generation: 2, Parents: 16}))

	pc := NewPerfCollector(2)
	pc.Record(map[string]time.Duration{population.PhaseMutate: time.Millisecond})
	require.NoError(t, om.WritePerf(pc.Stats(), 2))
	require.NoError(t, om.Close())

	gens := readLines(t, filepath.Join(dir, "generations.csv"))
	require.Len(t, gens, 3)
	assert.True(t, strings.HasPrefix(gens[0], "generation,parents,children"), gens[0])
	assert.True(t, strings.HasPrefix(gens[2], "2,16,"), gens[2])

	perf := readLines(t, filepath.Join(dir, "perf.csv"))
	require.Len(t, perf, 2)
	assert.Contains(t, perf[0], "mutate_pct")
}

func TestOutputManager_ConfigAndHallOfFame(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	require.NoError(t, err)
	defer om.Close()

	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	require.NoError(t, om.WriteConfig(cfg))

	loaded, err := config.Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, cfg.Grid, loaded.Grid)

	require.NoError(t, om.WriteHallOfFame(NewHallOfFame(2)))
	data, err := os.ReadFile(filepath.Join(dir, "hall_of_fame.json"))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestOutputManager_Plots(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	require.NoError(t, err)
	defer om.Close()

	history := []GenerationStats{
		{Generation: 1, FitnessMean: 100, FitnessMin: 100, FitnessMax: 100, ComplexityMean: 8},
		{Generation: 2, FitnessMean: 90, FitnessMin: 60, FitnessMax: 125, ComplexityMean: 11},
		{Generation: 3, FitnessMean: 85, FitnessMin: 40, FitnessMax: 125, ComplexityMean: 15},
	}
	require.NoError(t, om.WritePlots(history))

	for _, name := range []string{"fitness.png", "complexity.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}
}

func TestWritePlotEmptyHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fitness.png")
	require.NoError(t, WriteFitnessPlot(nil, path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
