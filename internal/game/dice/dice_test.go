package dice_test

import (
	"testing"

	"github.com/ltroylove/CrimsionMud3-sub001/internal/game/dice"
)

// fixedSource always returns the same value, for deterministic rolls.
type fixedSource struct{ v int }

func (f fixedSource) Intn(n int) int {
	if f.v >= n {
		return n - 1
	}
	return f.v
}

func TestParse_Forms(t *testing.T) {
	cases := []struct {
		expr  string
		count int
		sides int
		mod   int
	}{
		{"d8", 1, 8, 0},
		{"2d6", 2, 6, 0},
		{"2d6+1", 2, 6, 1},
		{"3d4-2", 3, 4, -2},
		{"1D10+5", 1, 10, 5},
	}
	for _, c := range cases {
		e, err := dice.Parse(c.expr)
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error: %v", c.expr, err)
		}
		if e.Count != c.count || e.Sides != c.sides || e.Modifier != c.mod {
			t.Errorf("Parse(%q) = %d/%d/%+d, want %d/%d/%+d",
				c.expr, e.Count, e.Sides, e.Modifier, c.count, c.sides, c.mod)
		}
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, expr := range []string{"", "6", "0d6", "2d1", "2dx", "2d6+x"} {
		if _, err := dice.Parse(expr); err == nil {
			t.Errorf("Parse(%q): expected error", expr)
		}
	}
}

func TestExpression_Average(t *testing.T) {
	if got := dice.MustParse("2d6+1").Average(); got != 8 {
		t.Errorf("got average %d, want 8", got)
	}
}

func TestRoll_Deterministic(t *testing.T) {
	e := dice.MustParse("2d6+1")
	r := dice.Roll(e, fixedSource{v: 2}) // every die rolls 3
	if len(r.Dice) != 2 {
		t.Fatalf("got %d dice, want 2", len(r.Dice))
	}
	if r.Total() != 7 {
		t.Errorf("got total %d, want 7", r.Total())
	}
}

func TestRollExpr_BoundsWithCryptoSource(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 50; i++ {
		r, err := dice.RollExpr("3d6", src)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Total() < 3 || r.Total() > 18 {
			t.Fatalf("total %d out of [3,18]", r.Total())
		}
	}
}
