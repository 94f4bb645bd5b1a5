package expr

import (
	"math"
	"math/rand"
)

var (
	niceConstants   = [...]float64{1, 0, 0.5, 1.5, math.Pi, math.E}
	niceMultipliers = [...]float64{-1, 100, 1, 10, -100, -10}
)

// RandomLeaf generates a simple leaf node. Half of the leaves are
// parameters indexing [0, params); the rest are constants, either a
// scaled random number or one of a few well-known values.
func RandomLeaf(rng *rand.Rand, params int) Node {
	if params > 0 && rng.Float64() < 0.5 {
		return &Parameter{
			Index: rng.Intn(params),
			Mod:   RandomModifier(rng),
		}
	}

	var v float64
	if rng.Float64() < 0.5 {
		v = rng.Float64() * niceMultipliers[rng.Intn(len(niceMultipliers))]
	} else {
		v = niceConstants[rng.Intn(len(niceConstants))]
	}
	return &Constant{Val: v, Mod: RandomModifier(rng)}
}
