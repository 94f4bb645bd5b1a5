// Package systems holds the ECS systems that drive the display slots and
// the simulated user of headless runs.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/genart/components"
	"github.com/pthm-cable/genart/organism"
)

// SlotSystem keeps one entity per display slot in step with the
// population manager's children.
type SlotSystem struct {
	mapper   *ecs.Map2[components.Tile, components.Slot]
	filter   *ecs.Filter2[components.Tile, components.Slot]
	entities []ecs.Entity // indexed by slot
}

// NewSlotSystem creates one slot entity per tile.
func NewSlotSystem(w *ecs.World, tiles []components.Tile) *SlotSystem {
	s := &SlotSystem{
		mapper: ecs.NewMap2[components.Tile, components.Slot](w),
		filter: ecs.NewFilter2[components.Tile, components.Slot](w),
	}
	for i := range tiles {
		tile := tiles[i]
		slot := components.Slot{Index: i}
		s.entities = append(s.entities, s.mapper.NewEntity(&tile, &slot))
	}
	return s
}

// Len returns the number of slots.
func (s *SlotSystem) Len() int {
	return len(s.entities)
}

// Get returns the components of slot i.
func (s *SlotSystem) Get(i int) (*components.Tile, *components.Slot) {
	return s.mapper.Get(s.entities[i])
}

// Sync updates every slot from children, which is indexed by slot. A slot
// whose child changed is assigned and marked dirty; a nil child clears it.
func (s *SlotSystem) Sync(children []*organism.Organism) {
	query := s.filter.Query()
	for query.Next() {
		_, slot := query.Get()
		if slot.Index >= len(children) || children[slot.Index] == nil {
			if slot.Active {
				slot.Clear()
			}
			continue
		}

		child := children[slot.Index]
		if !slot.Active || slot.OrganismID != child.ID {
			slot.Assign(child.ID, child.Complexity())
		}
		slot.Boosted = child.Boosted()
	}
}

// Relayout moves the slots onto new tiles, e.g. after a window resize.
func (s *SlotSystem) Relayout(tiles []components.Tile) {
	for i, e := range s.entities {
		if i >= len(tiles) {
			break
		}
		tile, slot := s.mapper.Get(e)
		if *tile != tiles[i] {
			*tile = tiles[i]
			slot.Dirty = true
		}
	}
}

// SlotAt returns the slot whose tile contains the screen point.
func (s *SlotSystem) SlotAt(x, y float32) (int, bool) {
	query := s.filter.Query()
	for query.Next() {
		tile, slot := query.Get()
		if tile.Contains(x, y) {
			index := slot.Index
			query.Close()
			return index, true
		}
	}
	return -1, false
}

// TakeDirty returns the active slots needing a new texture, in slot order,
// and clears their dirty flags.
func (s *SlotSystem) TakeDirty() []int {
	var dirty []int
	for i, e := range s.entities {
		_, slot := s.mapper.Get(e)
		if slot.Dirty && slot.Active {
			dirty = append(dirty, i)
		}
		slot.Dirty = false
	}
	return dirty
}

// Active counts the slots still showing a child.
func (s *SlotSystem) Active() int {
	n := 0
	query := s.filter.Query()
	for query.Next() {
		_, slot := query.Get()
		if slot.Active {
			n++
		}
	}
	return n
}
