package expr

import "math/rand"

// Crossover creates a child tree from mother and father. The operation is
// asymmetric and neither input is modified.
//
// A Binary mother may first pass the crossover down into one of her terms,
// with probability 1 - 1/Size(mother). The left term is chosen with
// probability (Size(right)+1)/Size(mother). The partially crossed copy then
// acts as the mother for the top-level step, which in equal shares returns
// a copy of the father, a copy of the mother wearing the father's modifier,
// or a new Binary joining both.
func Crossover(mother, father Node, rng *rand.Rand) Node {
	if b, ok := mother.(*Binary); ok {
		size := b.Size()
		if rng.Float64() < 1-1/float64(size) {
			child := &Binary{Left: b.Left, Right: b.Right, Op: b.Op, Mod: b.Mod}
			if rng.Float64() < float64(b.Right.Size()+1)/float64(size) {
				child.Left = Crossover(b.Left, father, rng)
			} else {
				child.Right = Crossover(b.Right, father, rng)
			}
			mother = child
		}
	}

	chosen := rng.Float64()
	switch {
	case chosen < 1.0/3:
		return father.Copy()
	case chosen < 2.0/3:
		child := mother.Copy()
		child.setModifier(father.Modifier())
		return child
	default:
		return &Binary{
			Left:  mother.Copy(),
			Right: father.Copy(),
			Op:    RandomOperator(rng),
			Mod:   RandomModifier(rng),
		}
	}
}
