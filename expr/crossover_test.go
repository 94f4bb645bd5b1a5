package expr

import (
	"math/rand"
	"testing"
)

func TestCrossoverLeavesParentsUntouched(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	for i := 0; i < 200; i++ {
		mother := randomTree(rng, 6)
		father := randomTree(rng, 6)
		m, f := String(mother), String(father)

		child := Crossover(mother, father, rng)
		if child == mother || child == father {
			t.Fatal("Crossover returned a parent instead of a new tree")
		}
		if String(mother) != m || String(father) != f {
			t.Fatal("Crossover modified a parent")
		}
	}
}

func TestCrossoverLeafOutcomes(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	mother := &Constant{Val: 1, Mod: ModNone}
	father := &Parameter{Index: 0, Mod: ModSin}

	var copies, swaps, joins int
	const n = 3000
	for i := 0; i < n; i++ {
		switch c := Crossover(mother, father, rng).(type) {
		case *Parameter:
			copies++
		case *Constant:
			if c.Mod != ModSin || c.Val != 1 {
				t.Fatalf("modifier swap produced %s", String(c))
			}
			swaps++
		case *Binary:
			if String(c.Left) != "1" || String(c.Right) != "sin(x0)" {
				t.Fatalf("join produced %s", String(c))
			}
			joins++
		}
	}

	for name, got := range map[string]int{"copy": copies, "swap": swaps, "join": joins} {
		if got < n/4 || got > n*5/12 {
			t.Errorf("%s outcome count = %d of %d, want about a third", name, got, n)
		}
	}
}

func TestCrossoverDescendsIntoBinaryMother(t *testing.T) {
	rng := rand.New(rand.NewSource(29))
	mother := &Binary{
		Left:  &Binary{Left: &Constant{Val: 1}, Right: &Constant{Val: 2}, Op: OpAdd},
		Right: &Binary{Left: &Constant{Val: 3}, Right: &Constant{Val: 4}, Op: OpAdd},
		Op:    OpMul,
	}
	father := &Parameter{Index: 0}

	// With size 6 the crossover descends 5/6 of the time, so some children
	// keep the mother's root operator with a father-derived term inside.
	var descended int
	for i := 0; i < 500; i++ {
		child, ok := Crossover(mother, father, rng).(*Binary)
		if !ok || child.Op != OpMul {
			continue
		}
		if child.DependsOnParameters() && String(child.Left) != "x0" && String(child.Right) != "x0" {
			descended++
		}
	}
	if descended == 0 {
		t.Error("crossover never reached into the mother's terms")
	}
}
