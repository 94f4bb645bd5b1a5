// Package organism defines the evolvable image: a set of expression trees
// producing one colour per pixel, plus the lineage and fitness bookkeeping
// that drives selection.
package organism

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"strings"

	"github.com/pthm-cable/genart/expr"
)

// NumChannels is the number of colour channels (R, G, B).
const NumChannels = 3

// Fitness constants.
const (
	BaseFitness           = 100
	DefaultBoost          = 25
	DefaultSpawnThreshold = 5
)

// Crossover probabilities for colour channels.
const (
	channelCopyRate  = 0.2 // channel copied from the mother without mating
	channelCrossRate = 0.4 // father channel picked at random instead of the same colour
	channelSwapRate  = 0.2 // expression-level roles swapped between the parents
)

// ChannelMode selects how colour channels see the pixel.
type ChannelMode uint8

const (
	// ChannelsReference evaluates a reference channel first and appends its
	// value to the arguments of every colour channel.
	ChannelsReference ChannelMode = iota
	// ChannelsIndependent evaluates each colour channel on the raw pixel
	// arguments. The organism has no reference channel.
	ChannelsIndependent
)

// ParseChannelMode parses "reference" or "independent".
func ParseChannelMode(s string) (ChannelMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reference":
		return ChannelsReference, nil
	case "independent":
		return ChannelsIndependent, nil
	default:
		return 0, fmt.Errorf("unknown channel mode %q", s)
	}
}

func (m ChannelMode) String() string {
	if m == ChannelsIndependent {
		return "independent"
	}
	return "reference"
}

// Organism is one evolvable image.
type Organism struct {
	ID uint64

	// Reference is nil in ChannelsIndependent mode.
	Reference expr.Node
	Channels  [NumChannels]expr.Node

	// Lineage, for fitness bookkeeping only. Cleared by Kill.
	mother, father *Organism

	childrenSpawned int
	childrenKilled  int
	fitnessBoost    int
}

// New creates an organism of simple random leaves evaluated on params
// pixel arguments.
func New(id uint64, rng *rand.Rand, mode ChannelMode, params int) *Organism {
	o := &Organism{ID: id}
	colourParams := params
	if mode == ChannelsReference {
		o.Reference = expr.RandomLeaf(rng, params)
		colourParams++
	}
	for i := range o.Channels {
		o.Channels[i] = expr.RandomLeaf(rng, colourParams)
	}
	return o
}

// Mode reports whether the organism uses a reference channel.
func (o *Organism) Mode() ChannelMode {
	if o.Reference == nil {
		return ChannelsIndependent
	}
	return ChannelsReference
}

// EvaluatePixel computes the colour of the pixel described by args. It
// never modifies the organism and is safe for concurrent use.
func (o *Organism) EvaluatePixel(args []float64) color.RGBA {
	channelArgs := args
	if o.Reference != nil {
		channelArgs = make([]float64, len(args)+1)
		copy(channelArgs, args)
		channelArgs[len(args)] = wrap255(o.Reference.Value(args))
	}

	var rgb [NumChannels]uint8
	for i, ch := range o.Channels {
		rgb[i] = channelByte(ch.Value(channelArgs))
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
}

// wrap255 reduces v into [0, 255). NaN and infinities pass through.
func wrap255(v float64) float64 {
	r := math.Mod(v, 255)
	if r < 0 {
		r += 255
		// Tiny negatives round up to the modulus itself.
		if r >= 255 {
			r = 0
		}
	}
	return r
}

// channelByte truncates v and reduces it into [0, 255). Values that are not
// finite collapse to 0.
func channelByte(v float64) uint8 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	r := math.Mod(math.Trunc(v), 255)
	if r < 0 {
		r += 255
	}
	return uint8(r)
}

// Boost sets the fitness bonus. Repeated boosts do not stack.
func (o *Organism) Boost(amount int) {
	o.fitnessBoost = amount
}

// Boosted reports whether a fitness bonus is set.
func (o *Organism) Boosted() bool {
	return o.fitnessBoost != 0
}

// Fitness is the percentage of this organism's children that survived
// selection, plus any boost. Organisms without children have full fitness.
func (o *Organism) Fitness() int {
	if o.childrenSpawned == 0 {
		return BaseFitness + o.fitnessBoost
	}
	return BaseFitness - BaseFitness*o.childrenKilled/o.childrenSpawned + o.fitnessBoost
}

// CanDie reports whether the organism has spawned enough children to be
// judged by their survival.
func (o *Organism) CanDie(threshold int) bool {
	return o.childrenSpawned >= threshold
}

// Kill records this organism's elimination against its parents. Only the
// first call has an effect.
func (o *Organism) Kill() {
	if o.mother != nil {
		o.mother.childrenKilled++
	}
	if o.father != nil {
		o.father.childrenKilled++
	}
	o.mother = nil
	o.father = nil
}

// Mother returns the organism's mother, or nil.
func (o *Organism) Mother() *Organism { return o.mother }

// Father returns the organism's father, or nil.
func (o *Organism) Father() *Organism { return o.father }

// ChildrenSpawned returns how many children this organism has produced.
func (o *Organism) ChildrenSpawned() int { return o.childrenSpawned }

// ChildrenKilled returns how many of this organism's children were eliminated.
func (o *Organism) ChildrenKilled() int { return o.childrenKilled }

// Crossover creates a child with o as mother. Both parents count the child
// as spawned whether or not any channel actually mated.
func (o *Organism) Crossover(father *Organism, id uint64, rng *rand.Rand) *Organism {
	child := &Organism{ID: id, mother: o, father: father}

	switch {
	case o.Reference != nil && father.Reference != nil:
		child.Reference = expr.Crossover(o.Reference, father.Reference, rng)
	case o.Reference != nil:
		child.Reference = o.Reference.Copy()
	}

	for i := range child.Channels {
		if rng.Float64() < channelCopyRate {
			child.Channels[i] = o.Channels[i].Copy()
			continue
		}

		// Usually mates with the same colour of the father.
		fatherChannel := i
		if rng.Float64() < channelCrossRate {
			fatherChannel = rng.Intn(NumChannels)
		}

		mother, dad := o.Channels[i], father.Channels[fatherChannel]
		if rng.Float64() < channelSwapRate {
			mother, dad = father.Channels[i], o.Channels[fatherChannel]
		}
		child.Channels[i] = expr.Crossover(mother, dad, rng)
	}

	o.childrenSpawned++
	father.childrenSpawned++
	return child
}

// Mutate mutates every channel and re-roots each at its new top node.
// params.LeafParams is the number of pixel arguments; colour channels of a
// reference-mode organism may also read the reference value.
func (o *Organism) Mutate(rng *rand.Rand, params expr.MutationParams) {
	colourParams := params
	if o.Reference != nil {
		o.Reference = expr.Mutate(o.Reference, rng, params)
		colourParams.LeafParams++
	}
	for i, ch := range o.Channels {
		o.Channels[i] = expr.Mutate(ch, rng, colourParams)
	}
}

// Simplify folds the constant parts of every channel.
func (o *Organism) Simplify() {
	if o.Reference != nil {
		o.Reference = expr.Simplify(o.Reference)
	}
	for i, ch := range o.Channels {
		o.Channels[i] = expr.Simplify(ch)
	}
}

// Complexity counts the organism's channels and every node below them.
func (o *Organism) Complexity() int {
	complexity := NumChannels
	if o.Reference != nil {
		complexity += 1 + o.Reference.Size()
	}
	for _, ch := range o.Channels {
		complexity += ch.Size()
	}
	return complexity
}

// Copy returns an organism with deep copies of every channel. Lineage is
// kept; child counters and boost start from zero.
func (o *Organism) Copy() *Organism {
	cp := &Organism{ID: o.ID, mother: o.mother, father: o.father}
	if o.Reference != nil {
		cp.Reference = o.Reference.Copy()
	}
	for i, ch := range o.Channels {
		cp.Channels[i] = ch.Copy()
	}
	return cp
}

// Describe renders every channel, one per line.
func (o *Organism) Describe() string {
	var sb strings.Builder
	if o.Reference != nil {
		fmt.Fprintf(&sb, "ref = %s\n", expr.String(o.Reference))
	}
	for i, name := range [NumChannels]string{"r", "g", "b"} {
		fmt.Fprintf(&sb, "%s   = %s\n", name, expr.String(o.Channels[i]))
	}
	return sb.String()
}
