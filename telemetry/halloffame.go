package telemetry

import (
	"encoding/json"
	"sort"

	"github.com/pthm-cable/genart/expr"
	"github.com/pthm-cable/genart/organism"
)

// HallEntry records a proven organism and the expressions behind it.
type HallEntry struct {
	ID         uint64   `json:"id"`
	Generation int      `json:"generation"`
	Fitness    int      `json:"fitness"`
	Spawned    int      `json:"children_spawned"`
	Killed     int      `json:"children_killed"`
	Complexity int      `json:"complexity"`
	Reference  string   `json:"reference,omitempty"`
	Channels   []string `json:"channels"`
}

// HallOfFame keeps the fittest organisms ever judged, best first. An
// organism is judged once it may be culled; later generations update its
// entry as its record changes.
type HallOfFame struct {
	entries []HallEntry
	maxSize int
}

// NewHallOfFame creates a hall holding at most maxSize entries.
func NewHallOfFame(maxSize int) *HallOfFame {
	if maxSize < 1 {
		maxSize = 1
	}
	return &HallOfFame{
		entries: make([]HallEntry, 0, maxSize),
		maxSize: maxSize,
	}
}

// Consider evaluates an organism for entry. It returns true if the
// organism is in the hall afterwards.
func (hof *HallOfFame) Consider(o *organism.Organism, generation, spawnThreshold int) bool {
	if !o.CanDie(spawnThreshold) {
		return false
	}

	// Drop any previous entry so the updated record is re-ranked.
	for i := range hof.entries {
		if hof.entries[i].ID == o.ID {
			hof.entries = append(hof.entries[:i], hof.entries[i+1:]...)
			break
		}
	}

	entry := HallEntry{
		ID:         o.ID,
		Generation: generation,
		Fitness:    o.Fitness(),
		Spawned:    o.ChildrenSpawned(),
		Killed:     o.ChildrenKilled(),
		Complexity: o.Complexity(),
		Channels:   make([]string, 0, organism.NumChannels),
	}
	if o.Reference != nil {
		entry.Reference = expr.String(o.Reference)
	}
	for _, ch := range o.Channels {
		entry.Channels = append(entry.Channels, expr.String(ch))
	}

	var added bool
	hof.entries, added = hof.insertEntry(hof.entries, entry)
	return added
}

// insertEntry adds an entry to the hall, maintaining sorted order by fitness.
// If the hall is full, the lowest-fitness entry is removed.
func (hof *HallOfFame) insertEntry(hall []HallEntry, entry HallEntry) ([]HallEntry, bool) {
	// Find insertion point (sorted descending by fitness)
	idx := sort.Search(len(hall), func(i int) bool {
		return hall[i].Fitness < entry.Fitness
	})

	if len(hall) >= hof.maxSize && idx >= hof.maxSize {
		return hall, false
	}

	hall = append(hall, HallEntry{})
	copy(hall[idx+1:], hall[idx:])
	hall[idx] = entry

	if len(hall) > hof.maxSize {
		hall = hall[:hof.maxSize]
	}
	return hall, true
}

// Entries returns the hall, best first.
func (hof *HallOfFame) Entries() []HallEntry {
	return hof.entries
}

// Size returns the number of entries.
func (hof *HallOfFame) Size() int {
	return len(hof.entries)
}

// TopFitness returns the highest fitness in the hall, or 0 if it is empty.
func (hof *HallOfFame) TopFitness() int {
	if len(hof.entries) == 0 {
		return 0
	}
	return hof.entries[0].Fitness
}

// MarshalJSON serializes the hall of fame as a JSON array.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(hof.entries, "", "  ")
}
