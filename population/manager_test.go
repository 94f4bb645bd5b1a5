package population

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/pthm-cable/genart/config"
	"github.com/pthm-cable/genart/organism"
)

func newTestManager(seed int64, rows, cols int) *Manager {
	cfg := DefaultConfig()
	cfg.Rows, cfg.Columns = rows, cols
	return New(cfg, rand.New(rand.NewSource(seed)))
}

func TestNewClampsGrid(t *testing.T) {
	m := newTestManager(1, 0, -2)
	if m.SlotCount() != 1 {
		t.Errorf("slot count = %d, want 1", m.SlotCount())
	}
	cfg := m.Config()
	if cfg.Rows != 1 || cfg.Columns != 1 {
		t.Errorf("grid = %dx%d, want 1x1", cfg.Rows, cfg.Columns)
	}
}

func TestNewSeedsRandomGeneration(t *testing.T) {
	m := newTestManager(1, 2, 4)
	if len(m.Children()) != 8 {
		t.Fatalf("children = %d, want 8", len(m.Children()))
	}
	seen := make(map[uint64]bool)
	for i, c := range m.Children() {
		if c == nil {
			t.Fatalf("slot %d empty", i)
		}
		if seen[c.ID] {
			t.Errorf("duplicate organism ID %d", c.ID)
		}
		seen[c.ID] = true
	}
	if len(m.Parents()) != 0 {
		t.Errorf("parents = %d, want 0", len(m.Parents()))
	}
	if m.State() != StateIdle {
		t.Errorf("state = %v, want idle", m.State())
	}
}

func TestAdvanceGeneration(t *testing.T) {
	m := newTestManager(2, 2, 4)
	first := append([]*organism.Organism(nil), m.Children()...)

	children, err := m.AdvanceGeneration()
	if err != nil {
		t.Fatalf("AdvanceGeneration: %v", err)
	}

	if len(children) != m.SlotCount() {
		t.Errorf("children = %d, want %d", len(children), m.SlotCount())
	}
	if len(m.Parents()) != len(first) {
		t.Errorf("parents = %d, want %d matured children", len(m.Parents()), len(first))
	}
	if m.Generation() != 1 {
		t.Errorf("generation = %d, want 1", m.Generation())
	}
	if m.State() != StateIdle {
		t.Errorf("state = %v after advance, want idle", m.State())
	}

	parents := make(map[*organism.Organism]bool)
	for _, p := range m.Parents() {
		parents[p] = true
	}
	for i, c := range children {
		if c == nil {
			t.Fatalf("slot %d empty after advance", i)
		}
		if c.Mother() == c.Father() {
			t.Errorf("slot %d bred from a single parent", i)
		}
		if !parents[c.Mother()] || !parents[c.Father()] {
			t.Errorf("slot %d parents not in the population", i)
		}
	}

	spawned := 0
	for _, p := range m.Parents() {
		spawned += p.ChildrenSpawned()
	}
	if spawned != 2*m.SlotCount() {
		t.Errorf("total spawned = %d, want %d", spawned, 2*m.SlotCount())
	}
}

func TestAdvanceGenerationTooSmall(t *testing.T) {
	m := newTestManager(3, 1, 1)
	only := m.Children()[0]

	_, err := m.AdvanceGeneration()
	if !errors.Is(err, ErrPopulationTooSmall) {
		t.Fatalf("err = %v, want ErrPopulationTooSmall", err)
	}
	if m.Generation() != 0 {
		t.Errorf("generation = %d, want 0", m.Generation())
	}
	if m.Children()[0] != only {
		t.Error("failed advance replaced the children")
	}
	if len(m.Parents()) != 0 {
		t.Errorf("failed advance left %d parents", len(m.Parents()))
	}
	if m.State() != StateIdle {
		t.Errorf("state = %v, want idle", m.State())
	}
}

func TestAdvanceAfterEliminatingAll(t *testing.T) {
	m := newTestManager(4, 1, 2)
	for i := 0; i < m.SlotCount(); i++ {
		if err := m.Eliminate(i); err != nil {
			t.Fatalf("Eliminate(%d): %v", i, err)
		}
	}
	if _, err := m.AdvanceGeneration(); !errors.Is(err, ErrPopulationTooSmall) {
		t.Errorf("err = %v, want ErrPopulationTooSmall", err)
	}
}

func TestEliminate(t *testing.T) {
	m := newTestManager(5, 2, 2)
	if _, err := m.AdvanceGeneration(); err != nil {
		t.Fatalf("AdvanceGeneration: %v", err)
	}

	victim := m.Children()[1]
	mother, father := victim.Mother(), victim.Father()
	motherKilled, fatherKilled := mother.ChildrenKilled(), father.ChildrenKilled()

	if err := m.Eliminate(1); err != nil {
		t.Fatalf("Eliminate: %v", err)
	}
	if m.Active(1) {
		t.Error("slot still active after elimination")
	}
	if m.Children()[1] != nil {
		t.Error("eliminated child still in children")
	}
	if len(m.Children()) != m.SlotCount() {
		t.Errorf("children length changed to %d", len(m.Children()))
	}
	if mother.ChildrenKilled() != motherKilled+1 || father.ChildrenKilled() != fatherKilled+1 {
		t.Error("elimination not recorded against parents")
	}

	if err := m.Eliminate(1); !errors.Is(err, ErrSlotInactive) {
		t.Errorf("second Eliminate err = %v, want ErrSlotInactive", err)
	}
	if err := m.Eliminate(4); !errors.Is(err, ErrSlotOutOfRange) {
		t.Errorf("Eliminate(4) err = %v, want ErrSlotOutOfRange", err)
	}
	if err := m.Eliminate(-1); !errors.Is(err, ErrSlotOutOfRange) {
		t.Errorf("Eliminate(-1) err = %v, want ErrSlotOutOfRange", err)
	}

	// The next generation brings every slot back.
	if _, err := m.AdvanceGeneration(); err != nil {
		t.Fatalf("AdvanceGeneration: %v", err)
	}
	for i := 0; i < m.SlotCount(); i++ {
		if !m.Active(i) {
			t.Errorf("slot %d inactive after new generation", i)
		}
	}
}

func TestBoost(t *testing.T) {
	m := newTestManager(6, 1, 3)
	if err := m.Boost(2); err != nil {
		t.Fatalf("Boost: %v", err)
	}
	if got := m.Children()[2].Fitness(); got != 125 {
		t.Errorf("boosted fitness = %d, want 125", got)
	}

	if err := m.Eliminate(0); err != nil {
		t.Fatalf("Eliminate: %v", err)
	}
	if err := m.Boost(0); !errors.Is(err, ErrSlotInactive) {
		t.Errorf("Boost on eliminated slot err = %v, want ErrSlotInactive", err)
	}
	if err := m.Boost(3); !errors.Is(err, ErrSlotOutOfRange) {
		t.Errorf("Boost(3) err = %v, want ErrSlotOutOfRange", err)
	}
}

func TestSeededManagersAreIdentical(t *testing.T) {
	for _, mode := range []organism.ChannelMode{organism.ChannelsReference, organism.ChannelsIndependent} {
		cfg := DefaultConfig()
		cfg.Mode = mode
		a := New(cfg, rand.New(rand.NewSource(42)))
		b := New(cfg, rand.New(rand.NewSource(42)))

		for gen := 0; gen < 3; gen++ {
			ca, errA := a.AdvanceGeneration()
			cb, errB := b.AdvanceGeneration()
			if errA != nil || errB != nil {
				t.Fatalf("AdvanceGeneration: %v / %v", errA, errB)
			}
			for i := range ca {
				if ca[i].ID != cb[i].ID || ca[i].Describe() != cb[i].Describe() {
					t.Fatalf("%v generation %d slot %d differs:\n%s\nvs\n%s",
						mode, gen+1, i, ca[i].Describe(), cb[i].Describe())
				}
			}
		}
	}
}

type recordingObserver struct {
	reports []GenerationReport
}

func (r *recordingObserver) OnGeneration(rep GenerationReport) {
	r.reports = append(r.reports, rep)
}

func TestObserverReceivesReport(t *testing.T) {
	m := newTestManager(7, 2, 3)
	obs := &recordingObserver{}
	m.SetObserver(obs)

	for i := 0; i < 2; i++ {
		if _, err := m.AdvanceGeneration(); err != nil {
			t.Fatalf("AdvanceGeneration: %v", err)
		}
	}

	if len(obs.reports) != 2 {
		t.Fatalf("reports = %d, want 2", len(obs.reports))
	}
	last := obs.reports[1]
	if last.Generation != 2 {
		t.Errorf("generation = %d, want 2", last.Generation)
	}
	if len(last.Children) != 6 {
		t.Errorf("report children = %d, want 6", len(last.Children))
	}
	for _, phase := range []string{PhaseCrossover, PhaseMutate, PhaseSimplify, PhaseCull} {
		if _, ok := last.Phases[phase]; !ok {
			t.Errorf("phase %q missing from report", phase)
		}
	}
}

func TestFromConfig(t *testing.T) {
	c, err := config.Parse([]byte("grid:\n  rows: 3\n  columns: 5\norganism:\n  channel_mode: independent\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cfg, err := FromConfig(c)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if cfg.Rows != 3 || cfg.Columns != 5 {
		t.Errorf("grid = %dx%d, want 3x5", cfg.Rows, cfg.Columns)
	}
	if cfg.Mode != organism.ChannelsIndependent {
		t.Errorf("mode = %v, want independent", cfg.Mode)
	}
	if cfg.Cap != 30 || cfg.SpawnThreshold != 5 || cfg.BoostAmount != 25 {
		t.Errorf("selection = %d/%d/%d, want 30/5/25", cfg.Cap, cfg.SpawnThreshold, cfg.BoostAmount)
	}

	c.Organism.ChannelMode = "hsv"
	if _, err := FromConfig(c); err == nil {
		t.Error("expected error for unknown channel mode")
	}
}
