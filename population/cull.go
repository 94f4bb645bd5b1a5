package population

import (
	"sort"

	"github.com/pthm-cable/genart/organism"
)

// removeOverpopulation removes the least fit eligible parents until the
// population is back at the cap, and returns the removed organisms.
//
// Only organisms that CanDie are candidates. The first killAmount
// candidates in population order seed the doomed set; after that a
// candidate replaces the fittest doomed organism only if it is strictly
// less fit, so ties favour the earlier organism. When too few candidates
// exist, fewer organisms are removed and the cap stays exceeded.
func (m *Manager) removeOverpopulation() []*organism.Organism {
	killAmount := len(m.parents) - m.cfg.Cap
	if killAmount <= 0 {
		return nil
	}

	doomed := make([]*organism.Organism, 0, killAmount)
	byFitness := func(i, j int) bool {
		return doomed[i].Fitness() < doomed[j].Fitness()
	}

	for _, o := range m.parents {
		if !o.CanDie(m.cfg.SpawnThreshold) {
			continue
		}
		if len(doomed) < killAmount {
			doomed = append(doomed, o)
			if len(doomed) == killAmount {
				sort.SliceStable(doomed, byFitness)
			}
			continue
		}
		if o.Fitness() < doomed[len(doomed)-1].Fitness() {
			doomed[len(doomed)-1] = o
			sort.SliceStable(doomed, byFitness)
		}
	}

	if len(doomed) == 0 {
		return nil
	}

	remove := make(map[*organism.Organism]struct{}, len(doomed))
	for _, o := range doomed {
		remove[o] = struct{}{}
	}
	kept := m.parents[:0]
	for _, o := range m.parents {
		if _, ok := remove[o]; !ok {
			kept = append(kept, o)
		}
	}
	// Clear the tail so removed organisms can be collected.
	for i := len(kept); i < len(m.parents); i++ {
		m.parents[i] = nil
	}
	m.parents = kept

	return doomed
}
