package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/genart/population"
)

func TestJudgeSparesBreedersInFirstGeneration(t *testing.T) {
	m := population.New(population.DefaultConfig(), rand.New(rand.NewSource(1)))
	j := NewJudge(rand.New(rand.NewSource(2)), 1, 0)

	v, err := j.Judge(m)
	if err != nil {
		t.Fatalf("Judge: %v", err)
	}
	if v.Eliminated != m.SlotCount()-2 {
		t.Errorf("eliminated = %d, want %d", v.Eliminated, m.SlotCount()-2)
	}
	if _, err := m.AdvanceGeneration(); err != nil {
		t.Errorf("AdvanceGeneration after judging: %v", err)
	}
}

func TestJudgeEliminatesAllOnceParentsExist(t *testing.T) {
	m := population.New(population.DefaultConfig(), rand.New(rand.NewSource(3)))
	if _, err := m.AdvanceGeneration(); err != nil {
		t.Fatalf("AdvanceGeneration: %v", err)
	}

	v, err := NewJudge(rand.New(rand.NewSource(4)), 1, 0).Judge(m)
	if err != nil {
		t.Fatalf("Judge: %v", err)
	}
	if v.Eliminated != m.SlotCount() {
		t.Errorf("eliminated = %d, want %d", v.Eliminated, m.SlotCount())
	}
}

func TestJudgeBoosts(t *testing.T) {
	m := population.New(population.DefaultConfig(), rand.New(rand.NewSource(5)))

	v, err := NewJudge(rand.New(rand.NewSource(6)), 0, 1).Judge(m)
	if err != nil {
		t.Fatalf("Judge: %v", err)
	}
	if v.Eliminated != 0 || v.Boosted != m.SlotCount() {
		t.Errorf("verdict = %+v, want all boosted", v)
	}
	for i, c := range m.Children() {
		if !c.Boosted() {
			t.Errorf("slot %d not boosted", i)
		}
	}
}

func TestJudgeIsDeterministic(t *testing.T) {
	run := func() []int {
		m := population.New(population.DefaultConfig(), rand.New(rand.NewSource(7)))
		j := NewJudge(rand.New(rand.NewSource(8)), 0.5, 0.2)
		var trace []int
		for g := 0; g < 5; g++ {
			v, err := j.Judge(m)
			if err != nil {
				t.Fatalf("Judge: %v", err)
			}
			trace = append(trace, v.Eliminated, v.Boosted)
			if _, err := m.AdvanceGeneration(); err != nil {
				t.Fatalf("AdvanceGeneration: %v", err)
			}
		}
		for _, c := range m.Children() {
			trace = append(trace, int(c.ID))
		}
		return trace
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("trace lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("runs diverge at %d: %v vs %v", i, a, b)
		}
	}
}
