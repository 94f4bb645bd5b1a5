package components

// Slot ties a display tile to the child the population manager shows in it.
type Slot struct {
	Index      int    // Position in the manager's children
	OrganismID uint64 // Zero when the slot is empty
	Active     bool   // False once the child was eliminated
	Boosted    bool
	Complexity int
	Dirty      bool // Texture needs re-rendering
}

// Assign points the slot at a new child.
func (s *Slot) Assign(id uint64, complexity int) {
	s.OrganismID = id
	s.Active = true
	s.Boosted = false
	s.Complexity = complexity
	s.Dirty = true
}

// Clear marks the slot's child as eliminated.
func (s *Slot) Clear() {
	s.Active = false
	s.Boosted = false
}
