package systems

import (
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/genart/components"
	"github.com/pthm-cable/genart/population"
)

func newSlots(t *testing.T, seed int64) (*SlotSystem, *population.Manager) {
	t.Helper()
	cfg := population.DefaultConfig()
	m := population.New(cfg, rand.New(rand.NewSource(seed)))
	s := NewSlotSystem(ecs.NewWorld(), components.Layout(1360, 768, cfg.Rows, cfg.Columns))
	return s, m
}

func TestSlotSystemSync(t *testing.T) {
	s, m := newSlots(t, 1)
	if s.Len() != m.SlotCount() {
		t.Fatalf("slots = %d, want %d", s.Len(), m.SlotCount())
	}

	s.Sync(m.Children())
	if s.Active() != m.SlotCount() {
		t.Errorf("active = %d, want %d", s.Active(), m.SlotCount())
	}
	for i, child := range m.Children() {
		_, slot := s.Get(i)
		if slot.OrganismID != child.ID || slot.Complexity != child.Complexity() {
			t.Errorf("slot %d = %+v, want organism %d", i, *slot, child.ID)
		}
	}

	dirty := s.TakeDirty()
	if len(dirty) != m.SlotCount() {
		t.Errorf("dirty = %v, want every slot", dirty)
	}
	if again := s.TakeDirty(); len(again) != 0 {
		t.Errorf("dirty flags not cleared: %v", again)
	}
}

func TestSlotSystemTracksEliminationAndBoost(t *testing.T) {
	s, m := newSlots(t, 2)
	s.Sync(m.Children())
	s.TakeDirty()

	if err := m.Eliminate(3); err != nil {
		t.Fatalf("Eliminate: %v", err)
	}
	if err := m.Boost(5); err != nil {
		t.Fatalf("Boost: %v", err)
	}
	s.Sync(m.Children())

	if _, slot := s.Get(3); slot.Active {
		t.Error("eliminated slot still active")
	}
	if _, slot := s.Get(5); !slot.Boosted {
		t.Error("boosted slot not marked")
	}
	if s.Active() != m.SlotCount()-1 {
		t.Errorf("active = %d, want %d", s.Active(), m.SlotCount()-1)
	}
	if dirty := s.TakeDirty(); len(dirty) != 0 {
		t.Errorf("elimination dirtied %v", dirty)
	}

	if _, err := m.AdvanceGeneration(); err != nil {
		t.Fatalf("AdvanceGeneration: %v", err)
	}
	s.Sync(m.Children())
	if s.Active() != m.SlotCount() {
		t.Errorf("active after advance = %d, want %d", s.Active(), m.SlotCount())
	}
	if _, slot := s.Get(5); slot.Boosted {
		t.Error("boost carried over to the new child")
	}
	if dirty := s.TakeDirty(); len(dirty) != m.SlotCount() {
		t.Errorf("dirty after advance = %v, want every slot", dirty)
	}
}

func TestSlotSystemSlotAt(t *testing.T) {
	s, _ := newSlots(t, 3)

	tests := []struct {
		x, y float32
		want int
		ok   bool
	}{
		{10, 10, 0, true},
		{345, 10, 1, true},
		{1359, 767, 7, true},
		{700, 400, 6, true},
		{1360, 10, -1, false},
		{-1, 10, -1, false},
	}
	for _, tt := range tests {
		got, ok := s.SlotAt(tt.x, tt.y)
		if got != tt.want || ok != tt.ok {
			t.Errorf("SlotAt(%v, %v) = %d, %v, want %d, %v", tt.x, tt.y, got, ok, tt.want, tt.ok)
		}
	}

	// A query closed early must leave the world usable.
	if s.Active() != 0 {
		t.Errorf("active = %d before sync, want 0", s.Active())
	}
}

func TestSlotSystemRelayout(t *testing.T) {
	s, m := newSlots(t, 4)
	s.Sync(m.Children())
	s.TakeDirty()

	s.Relayout(components.Layout(1360, 768, 2, 4))
	if dirty := s.TakeDirty(); len(dirty) != 0 {
		t.Errorf("unchanged layout dirtied %v", dirty)
	}

	s.Relayout(components.Layout(800, 600, 2, 4))
	if dirty := s.TakeDirty(); len(dirty) != s.Len() {
		t.Errorf("dirty = %v, want every slot", dirty)
	}
	if tile, _ := s.Get(7); tile.X != 600 || tile.Width != 200 || tile.Height != 300 {
		t.Errorf("tile 7 = %+v", *tile)
	}
}
