// Package population owns the living generation of organisms: it breeds
// new children from the parents, applies user eliminations and boosts, and
// culls the least fit parents once the population grows past its cap.
package population

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/pthm-cable/genart/config"
	"github.com/pthm-cable/genart/expr"
	"github.com/pthm-cable/genart/organism"
)

var (
	// ErrPopulationTooSmall is returned when fewer than two parents are
	// available to breed a generation.
	ErrPopulationTooSmall = errors.New("population too small to breed")
	// ErrSlotOutOfRange is returned for a display slot outside the grid.
	ErrSlotOutOfRange = errors.New("slot out of range")
	// ErrSlotInactive is returned when a slot's child was already eliminated.
	ErrSlotInactive = errors.New("slot inactive")
)

// Phase names reported in GenerationReport.Phases.
const (
	PhaseCrossover = "crossover"
	PhaseMutate    = "mutate"
	PhaseSimplify  = "simplify"
	PhaseCull      = "cull"
)

// State is the manager's position in the generation cycle.
type State uint8

const (
	StateIdle State = iota
	StateAdvancing
)

func (s State) String() string {
	if s == StateAdvancing {
		return "advancing"
	}
	return "idle"
}

// Config holds the manager's parameters.
type Config struct {
	Rows, Columns  int
	Cap            int
	SpawnThreshold int
	BoostAmount    int
	Params         int // pixel arguments per evaluation
	Mode           organism.ChannelMode
	Mutation       expr.MutationParams
}

// DefaultConfig returns a 2x4 grid with the standard selection constants.
func DefaultConfig() Config {
	return Config{
		Rows:           2,
		Columns:        4,
		Cap:            30,
		SpawnThreshold: organism.DefaultSpawnThreshold,
		BoostAmount:    organism.DefaultBoost,
		Params:         2,
		Mode:           organism.ChannelsReference,
		Mutation:       expr.DefaultMutationParams(2),
	}
}

// FromConfig builds a manager Config from the loaded configuration.
func FromConfig(c *config.Config) (Config, error) {
	mode, err := organism.ParseChannelMode(c.Organism.ChannelMode)
	if err != nil {
		return Config{}, fmt.Errorf("organism.channel_mode: %w", err)
	}
	return Config{
		Rows:           c.Grid.Rows,
		Columns:        c.Grid.Columns,
		Cap:            c.Population.Cap,
		SpawnThreshold: c.Population.SpawnThreshold,
		BoostAmount:    c.Population.Boost,
		Params:         c.Organism.Parameters,
		Mode:           mode,
		Mutation: expr.MutationParams{
			GrowthScale:        c.Mutation.GrowthScale,
			GrowthRate:         c.Mutation.GrowthRate,
			ModifierSwapRate:   c.Mutation.ModifierSwapRate,
			ConstantJitterRate: c.Mutation.ConstantJitterRate,
			LeafParams:         c.Organism.Parameters,
		},
	}, nil
}

// GenerationReport describes one completed generation.
type GenerationReport struct {
	Generation int
	Parents    []*organism.Organism
	Children   []*organism.Organism
	Culled     []*organism.Organism
	Phases     map[string]time.Duration
}

// Observer is notified after every generation.
type Observer interface {
	OnGeneration(r GenerationReport)
}

// Manager owns the parents and the children shown in the display slots.
// It is not safe for concurrent use.
type Manager struct {
	cfg      Config
	rng      *rand.Rand
	observer Observer

	parents  []*organism.Organism
	children []*organism.Organism // indexed by slot; nil once eliminated

	state      State
	generation int
	nextID     uint64
}

// New creates a manager whose first generation is random. Grid dimensions
// are clamped to at least 1x1. All randomness is drawn from rng.
func New(cfg Config, rng *rand.Rand) *Manager {
	if cfg.Rows < 1 {
		cfg.Rows = 1
	}
	if cfg.Columns < 1 {
		cfg.Columns = 1
	}
	cfg.Mutation.LeafParams = cfg.Params

	m := &Manager{
		cfg:      cfg,
		rng:      rng,
		children: make([]*organism.Organism, cfg.Rows*cfg.Columns),
	}
	for i := range m.children {
		m.children[i] = organism.New(m.newID(), rng, cfg.Mode, cfg.Params)
	}
	return m
}

// SetObserver registers the generation observer; nil removes it.
func (m *Manager) SetObserver(o Observer) {
	m.observer = o
}

func (m *Manager) newID() uint64 {
	m.nextID++
	return m.nextID
}

// Config returns the manager's effective configuration.
func (m *Manager) Config() Config { return m.cfg }

// State returns the current state.
func (m *Manager) State() State { return m.state }

// Generation returns how many generations have been bred.
func (m *Manager) Generation() int { return m.generation }

// SlotCount returns rows x columns.
func (m *Manager) SlotCount() int { return len(m.children) }

// Children returns the current children indexed by slot. Eliminated slots
// hold nil. The returned slice must not be modified.
func (m *Manager) Children() []*organism.Organism { return m.children }

// Parents returns the breeding population. The returned slice must not be
// modified.
func (m *Manager) Parents() []*organism.Organism { return m.parents }

// Slot returns the child in slot i, or nil if it was eliminated.
func (m *Manager) Slot(i int) (*organism.Organism, error) {
	if i < 0 || i >= len(m.children) {
		return nil, fmt.Errorf("%w: %d of %d", ErrSlotOutOfRange, i, len(m.children))
	}
	return m.children[i], nil
}

// Active reports whether slot i still shows a child.
func (m *Manager) Active(i int) bool {
	return i >= 0 && i < len(m.children) && m.children[i] != nil
}

// Eliminate removes the child in slot i and records the elimination
// against its parents. The slot stays inactive until the next generation.
func (m *Manager) Eliminate(i int) error {
	child, err := m.Slot(i)
	if err != nil {
		return err
	}
	if child == nil {
		return fmt.Errorf("%w: %d", ErrSlotInactive, i)
	}
	m.children[i] = nil
	child.Kill()
	return nil
}

// Boost grants the child in slot i the configured fitness bonus.
func (m *Manager) Boost(i int) error {
	child, err := m.Slot(i)
	if err != nil {
		return err
	}
	if child == nil {
		return fmt.Errorf("%w: %d", ErrSlotInactive, i)
	}
	child.Boost(m.cfg.BoostAmount)
	return nil
}

// AdvanceGeneration matures the surviving children into parents, breeds a
// full set of new children, mutates and simplifies them, and culls the
// parents down to the cap. It returns the new children.
//
// With fewer than two parents it returns ErrPopulationTooSmall and leaves
// the population unchanged.
func (m *Manager) AdvanceGeneration() ([]*organism.Organism, error) {
	m.state = StateAdvancing
	defer func() { m.state = StateIdle }()

	matured := make([]*organism.Organism, 0, len(m.parents)+len(m.children))
	matured = append(matured, m.parents...)
	for _, child := range m.children {
		if child != nil {
			matured = append(matured, child)
		}
	}
	if len(matured) < 2 {
		return nil, fmt.Errorf("%w: %d parents", ErrPopulationTooSmall, len(matured))
	}
	m.parents = matured

	phases := make(map[string]time.Duration, 4)
	start := time.Now()

	children := make([]*organism.Organism, len(m.children))
	for i := range children {
		mother, father := m.pickPair()
		children[i] = mother.Crossover(father, m.newID(), m.rng)
	}
	phases[PhaseCrossover] = time.Since(start)

	for _, child := range children {
		t := time.Now()
		child.Mutate(m.rng, m.cfg.Mutation)
		phases[PhaseMutate] += time.Since(t)

		t = time.Now()
		child.Simplify()
		phases[PhaseSimplify] += time.Since(t)
	}
	m.children = children

	start = time.Now()
	culled := m.removeOverpopulation()
	phases[PhaseCull] = time.Since(start)

	m.generation++
	if m.observer != nil {
		m.observer.OnGeneration(GenerationReport{
			Generation: m.generation,
			Parents:    m.parents,
			Children:   m.children,
			Culled:     culled,
			Phases:     phases,
		})
	}
	return m.children, nil
}

// pickPair draws two distinct parents uniformly at random.
func (m *Manager) pickPair() (mother, father *organism.Organism) {
	n := len(m.parents)
	for {
		mi := m.rng.Intn(n)
		fi := m.rng.Intn(n)
		if mi != fi {
			return m.parents[mi], m.parents[fi]
		}
	}
}
