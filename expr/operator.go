package expr

import (
	"math"
	"math/rand"
)

// Operator combines the values of two sub-expressions.
type Operator uint8

const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv
	OpPow
	OpMod

	numOperators
)

var operatorSymbols = [numOperators]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpPow: "^",
	OpMod: "%",
}

// Apply combines a and b. Division and modulo by zero follow IEEE 754.
func (o Operator) Apply(a, b float64) float64 {
	switch o {
	case OpAdd:
		return a + b
	case OpSub:
		return a + -1*b
	case OpMul:
		return a * b
	case OpDiv:
		return a / b
	case OpPow:
		return math.Pow(a, b)
	case OpMod:
		return math.Mod(a, b)
	default:
		return math.NaN()
	}
}

// String returns the infix symbol.
func (o Operator) String() string {
	if o >= numOperators {
		return "?"
	}
	return operatorSymbols[o]
}

// RandomOperator picks uniformly among the six operators.
func RandomOperator(rng *rand.Rand) Operator {
	return Operator(rng.Intn(int(numOperators)))
}
