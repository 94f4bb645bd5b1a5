package expr

import "math/rand"

// MutationParams holds the tunable rates of Mutate.
type MutationParams struct {
	// GrowthScale is the subtree size at which growth stops and pruning
	// becomes certain.
	GrowthScale float64
	// GrowthRate scales the chance of wrapping a node in a new Binary.
	GrowthRate float64
	// ModifierSwapRate is the chance of replacing a node's modifier.
	ModifierSwapRate float64
	// ConstantJitterRate is the chance a Constant nudges its value instead
	// of taking the generic mutation path.
	ConstantJitterRate float64
	// LeafParams is the number of parameters freshly generated leaves may
	// index.
	LeafParams int
}

// DefaultMutationParams returns the standard rates for trees evaluated on
// the given number of parameters.
func DefaultMutationParams(leafParams int) MutationParams {
	return MutationParams{
		GrowthScale:        150,
		GrowthRate:         0.3,
		ModifierSwapRate:   0.05,
		ConstantJitterRate: 0.5,
		LeafParams:         leafParams,
	}
}

// Mutate returns a mutated copy of n. The result may have a different root
// than n: growth wraps the node inside a new Binary, so callers must store
// the returned node as the new top of the tree.
func Mutate(n Node, rng *rand.Rand, p MutationParams) Node {
	switch v := n.(type) {
	case *Constant:
		if rng.Float64() < p.ConstantJitterRate {
			c := *v
			if rng.Float64() < 0.5 {
				c.Val = -c.Val
			} else {
				c.Val *= 0.75 + 0.5*rng.Float64()
			}
			return &c
		}
		return mutateNode(v.Copy(), rng, p)

	case *Binary:
		b := &Binary{Left: v.Left, Right: v.Right, Op: v.Op, Mod: v.Mod}
		var top Node = b

		if rng.Float64() < float64(v.Size())/p.GrowthScale {
			// Prune: one term collapses into a fresh leaf.
			if rng.Float64() < 0.5 {
				b.Left = RandomLeaf(rng, p.LeafParams)
			} else {
				b.Right = RandomLeaf(rng, p.LeafParams)
			}
		} else {
			top = mutateNode(b, rng, p)
		}

		// Mutate returns fresh trees, so b no longer shares terms with v.
		b.Left = Mutate(b.Left, rng, p)
		b.Right = Mutate(b.Right, rng, p)
		return top

	default:
		return mutateNode(n.Copy(), rng, p)
	}
}

// mutateNode applies the mutation shared by all node kinds to n, which the
// caller must own. Light nodes may grow a new sibling leaf; otherwise the
// modifier occasionally changes.
func mutateNode(n Node, rng *rand.Rand, p MutationParams) Node {
	if rng.Float64() < (1-float64(n.Size())/p.GrowthScale)*p.GrowthRate {
		return &Binary{
			Left:  n,
			Right: RandomLeaf(rng, p.LeafParams),
			Op:    RandomOperator(rng),
			Mod:   RandomModifier(rng),
		}
	}
	if rng.Float64() < p.ModifierSwapRate {
		n.setModifier(RandomModifier(rng))
	}
	return n
}
