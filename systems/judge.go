package systems

import (
	"math/rand"

	"github.com/pthm-cable/genart/population"
)

// Judge stands in for the user during headless runs: each generation it
// eliminates and boosts random children.
type Judge struct {
	rng             *rand.Rand
	eliminateChance float64
	boostChance     float64
}

// NewJudge creates a judge. Each slot is eliminated with eliminateChance;
// survivors are boosted with boostChance.
func NewJudge(rng *rand.Rand, eliminateChance, boostChance float64) *Judge {
	return &Judge{rng: rng, eliminateChance: eliminateChance, boostChance: boostChance}
}

// Verdict counts one generation's decisions.
type Verdict struct {
	Eliminated int
	Boosted    int
}

// Judge applies eliminations and boosts to the manager's current children.
// While the manager has no parents yet, at least two children are spared
// so the next generation can breed.
func (j *Judge) Judge(m *population.Manager) (Verdict, error) {
	var v Verdict

	spare := 0
	if len(m.Parents()) < 2 {
		spare = 2 - len(m.Parents())
	}

	active := 0
	for i := 0; i < m.SlotCount(); i++ {
		if m.Active(i) {
			active++
		}
	}

	for i := 0; i < m.SlotCount(); i++ {
		if !m.Active(i) {
			continue
		}

		roll := j.rng.Float64()
		if roll < j.eliminateChance && active > spare {
			if err := m.Eliminate(i); err != nil {
				return v, err
			}
			active--
			v.Eliminated++
			continue
		}

		if j.rng.Float64() < j.boostChance {
			if err := m.Boost(i); err != nil {
				return v, err
			}
			v.Boosted++
		}
	}
	return v, nil
}
