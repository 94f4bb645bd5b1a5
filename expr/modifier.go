package expr

import (
	"math"
	"math/rand"
)

// Modifier is a unary transform applied to a node's raw value.
type Modifier uint8

const (
	ModNone Modifier = iota
	ModSin
	ModCos
	ModTan
	ModAsin
	ModAcos
	ModAtan
	ModSqrt
	ModCbrt

	numModifiers
)

var modifierNames = [numModifiers]string{
	ModNone: "",
	ModSin:  "sin",
	ModCos:  "cos",
	ModTan:  "tan",
	ModAsin: "asin",
	ModAcos: "acos",
	ModAtan: "atan",
	ModSqrt: "sqrt",
	ModCbrt: "cbrt",
}

// Apply transforms x. Out-of-domain inputs (asin(2), sqrt(-1), ...) yield NaN.
func (m Modifier) Apply(x float64) float64 {
	switch m {
	case ModSin:
		return math.Sin(x)
	case ModCos:
		return math.Cos(x)
	case ModTan:
		return math.Tan(x)
	case ModAsin:
		return math.Asin(x)
	case ModAcos:
		return math.Acos(x)
	case ModAtan:
		return math.Atan(x)
	case ModSqrt:
		return math.Sqrt(x)
	case ModCbrt:
		return math.Cbrt(x)
	default:
		return x
	}
}

// String returns the function name, or "" for ModNone.
func (m Modifier) String() string {
	if m >= numModifiers {
		return "?"
	}
	return modifierNames[m]
}

// RandomModifier returns ModNone half of the time and otherwise picks
// uniformly among all modifiers, ModNone included.
func RandomModifier(rng *rand.Rand) Modifier {
	if rng.Float64() < 0.5 {
		return ModNone
	}
	return Modifier(rng.Intn(int(numModifiers)))
}
