// Package expr implements the evolvable expression trees that map pixel
// coordinates to channel values.
//
// A tree is built from three node kinds: Constant, Parameter and Binary.
// Nodes carry no parent pointers. Every structural operation (Mutate,
// Crossover, Simplify) returns a new root and leaves its inputs untouched,
// so a tree is only ever reachable from the channel that owns it.
package expr

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// Node is an expression tree node. The set of implementations is closed:
// *Constant, *Parameter and *Binary.
type Node interface {
	// Evaluate returns the raw value of the node, before its modifier.
	Evaluate(args []float64) float64
	// Value returns the modified value of the node.
	Value(args []float64) float64
	// Modifier returns the node's modifier.
	Modifier() Modifier
	// DependsOnParameters reports whether any leaf below reads args.
	DependsOnParameters() bool
	// Size counts the nodes held below this one; leaves are 0 and each
	// Binary adds 2 for its terms.
	Size() int
	// Copy returns a deep copy.
	Copy() Node

	setModifier(m Modifier)
}

// Constant is a leaf holding a fixed value.
type Constant struct {
	Val float64
	Mod Modifier
}

// Parameter is a leaf reading args[Index].
type Parameter struct {
	Index int
	Mod   Modifier
}

// Binary combines two subtrees with an operator.
type Binary struct {
	Left, Right Node
	Op          Operator
	Mod         Modifier
}

func (c *Constant) Evaluate([]float64) float64 { return c.Val }
func (c *Constant) Value([]float64) float64 { return c.Mod.Apply(c.Val) }
func (c *Constant) Modifier() Modifier { return c.Mod }
func (c *Constant) DependsOnParameters() bool { return false }
func (c *Constant) Size() int { return 0 }
func (c *Constant) Copy() Node {
	cp := *c
	return &cp
}

func (c *Constant) setModifier(m Modifier) { c.Mod = m }

var (
	// outOfRange counts reads past the end of the argument list.
	outOfRange atomic.Int64
	// warnedIndices holds the parameter indices already reported.
	warnedIndices sync.Map
)

// OutOfRangeReads returns how many Parameter reads have fallen outside the
// supplied argument list since the process started.
func OutOfRangeReads() int64 {
	return outOfRange.Load()
}

// Evaluate returns args[Index]. A missing argument is a configuration error:
// it is reported once per index and read as 0 so a single pixel never
// aborts a render.
func (p *Parameter) Evaluate(args []float64) float64 {
	if p.Index < 0 || p.Index >= len(args) {
		outOfRange.Add(1)
		if _, seen := warnedIndices.LoadOrStore(p.Index, struct{}{}); !seen {
			slog.Warn("parameter index out of range",
				"index", p.Index,
				"args", len(args),
			)
		}
		return 0
	}
	return args[p.Index]
}

func (p *Parameter) Value(args []float64) float64 { return p.Mod.Apply(p.Evaluate(args)) }
func (p *Parameter) Modifier() Modifier { return p.Mod }
func (p *Parameter) DependsOnParameters() bool { return true }
func (p *Parameter) Size() int { return 0 }
func (p *Parameter) Copy() Node {
	cp := *p
	return &cp
}

func (p *Parameter) setModifier(m Modifier) { p.Mod = m }

func (b *Binary) Evaluate(args []float64) float64 {
	return b.Op.Apply(b.Left.Value(args), b.Right.Value(args))
}

func (b *Binary) Value(args []float64) float64 { return b.Mod.Apply(b.Evaluate(args)) }
func (b *Binary) Modifier() Modifier { return b.Mod }

func (b *Binary) DependsOnParameters() bool {
	return b.Left.DependsOnParameters() || b.Right.DependsOnParameters()
}

func (b *Binary) Size() int {
	return 2 + b.Left.Size() + b.Right.Size()
}

func (b *Binary) Copy() Node {
	return &Binary{
		Left:  b.Left.Copy(),
		Right: b.Right.Copy(),
		Op:    b.Op,
		Mod:   b.Mod,
	}
}

func (b *Binary) setModifier(m Modifier) { b.Mod = m }

// Simplify returns a copy of n in which every subtree that does not depend
// on parameters is folded into a Constant holding its raw value. The folded
// subtree's modifier is kept on the Constant.
func Simplify(n Node) Node {
	if !n.DependsOnParameters() {
		return &Constant{Val: n.Evaluate(nil), Mod: n.Modifier()}
	}
	b, ok := n.(*Binary)
	if !ok {
		return n.Copy()
	}
	return &Binary{
		Left:  Simplify(b.Left),
		Right: Simplify(b.Right),
		Op:    b.Op,
		Mod:   b.Mod,
	}
}
