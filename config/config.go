// Package config provides configuration loading and access for the
// evolution engine and its viewers.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Grid       GridConfig       `yaml:"grid"`
	Population PopulationConfig `yaml:"population"`
	Organism   OrganismConfig   `yaml:"organism"`
	Mutation   MutationConfig   `yaml:"mutation"`
	Render     RenderConfig     `yaml:"render"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Headless   HeadlessConfig   `yaml:"headless"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GridConfig holds the layout of display slots. Each child of a generation
// occupies one slot.
type GridConfig struct {
	Rows    int `yaml:"rows"`
	Columns int `yaml:"columns"`
}

// PopulationConfig holds selection parameters.
type PopulationConfig struct {
	Cap            int `yaml:"cap"`             // Parents kept after culling
	SpawnThreshold int `yaml:"spawn_threshold"` // Children needed before a parent may be culled
	Boost          int `yaml:"boost"`           // Fitness bonus granted by a user boost
}

// OrganismConfig holds organism shape parameters.
type OrganismConfig struct {
	ChannelMode string `yaml:"channel_mode"` // "reference" or "independent"
	Parameters  int    `yaml:"parameters"`   // Pixel arguments per evaluation
}

// MutationConfig holds expression mutation rates.
type MutationConfig struct {
	GrowthScale        float64 `yaml:"growth_scale"`
	GrowthRate         float64 `yaml:"growth_rate"`
	ModifierSwapRate   float64 `yaml:"modifier_swap_rate"`
	ConstantJitterRate float64 `yaml:"constant_jitter_rate"`
}

// RenderConfig holds pixel buffer settings.
type RenderConfig struct {
	Workers        int `yaml:"workers"`
	ExportWidth    int `yaml:"export_width"`
	ExportHeight   int `yaml:"export_height"`
	ThumbnailWidth int `yaml:"thumbnail_width"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	LogGenerations bool `yaml:"log_generations"`
	PerfWindow     int  `yaml:"perf_window"`
	Plot           bool `yaml:"plot"`
	HallOfFame     int  `yaml:"hall_of_fame"` // Entries kept in hall_of_fame.json
}

// HeadlessConfig drives the simulated user of headless runs.
type HeadlessConfig struct {
	Generations     int     `yaml:"generations"`
	EliminateChance float64 `yaml:"eliminate_chance"` // Per slot, per generation
	BoostChance     float64 `yaml:"boost_chance"`     // Per surviving slot, per generation
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	SlotCount  int   // Grid.Rows * Grid.Columns
	TileWidth  int32 // Screen.Width / Grid.Columns
	TileHeight int32 // Screen.Height / Grid.Rows
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return Parse(data)
}

// Parse merges the given YAML document over the embedded defaults.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Unmarshal into same struct - only overwrites fields present in data
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

// computeDerived clamps out-of-range values and calculates derived ones.
func (c *Config) computeDerived() {
	if c.Grid.Rows < 1 {
		c.Grid.Rows = 1
	}
	if c.Grid.Columns < 1 {
		c.Grid.Columns = 1
	}
	if c.Population.Cap < 2 {
		c.Population.Cap = 2
	}
	if c.Population.SpawnThreshold < 0 {
		c.Population.SpawnThreshold = 0
	}
	if c.Organism.Parameters < 0 {
		c.Organism.Parameters = 0
	}
	if c.Mutation.GrowthScale <= 0 {
		c.Mutation.GrowthScale = 150
	}
	if c.Telemetry.PerfWindow < 1 {
		c.Telemetry.PerfWindow = 20
	}
	if c.Telemetry.HallOfFame < 1 {
		c.Telemetry.HallOfFame = 1
	}

	c.Derived.SlotCount = c.Grid.Rows * c.Grid.Columns
	c.Derived.TileWidth = int32(c.Screen.Width / c.Grid.Columns)
	c.Derived.TileHeight = int32(c.Screen.Height / c.Grid.Rows)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
