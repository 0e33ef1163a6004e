package stats_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/ltroylove/CrimsionMud3-sub001/internal/game/stats"
)

func TestLedger_Apply_AccumulatesTotals(t *testing.T) {
	l := stats.NewLedger()
	l.Apply([]stats.Modifier{
		{Kind: stats.KindStrength, Value: 2},
		{Kind: stats.KindArmorClass, Value: -6},
	})
	l.Apply([]stats.Modifier{
		{Kind: stats.KindStrength, Value: 1},
	})

	if got := l.Total(stats.KindStrength); got != 3 {
		t.Errorf("got strength total %d, want 3", got)
	}
	if got := l.Total(stats.KindArmorClass); got != -6 {
		t.Errorf("got armor_class total %d, want -6", got)
	}
	if got := l.Total(stats.KindMana); got != 0 {
		t.Errorf("got mana total %d, want 0", got)
	}
}

func TestLedger_Reverse_RestoresExactPriorValues(t *testing.T) {
	l := stats.NewLedger()
	base := []stats.Modifier{
		{Kind: stats.KindHitroll, Value: 2},
		{Kind: stats.KindDamroll, Value: 1},
	}
	l.Apply(base)

	ring := []stats.Modifier{
		{Kind: stats.KindHitroll, Value: -1},
		{Kind: stats.KindWisdom, Value: 3},
	}
	l.Apply(ring)
	l.Reverse(ring)

	if got := l.Total(stats.KindHitroll); got != 2 {
		t.Errorf("got hitroll total %d, want 2", got)
	}
	if got := l.Total(stats.KindWisdom); got != 0 {
		t.Errorf("got wisdom total %d, want 0", got)
	}
	if got := len(l.Totals()); got != 2 {
		t.Errorf("got %d non-zero totals, want 2", got)
	}
}

func TestLedger_NegativeTotalsPermitted(t *testing.T) {
	l := stats.NewLedger()
	l.Apply([]stats.Modifier{{Kind: stats.KindHitroll, Value: -4}})
	if got := l.Total(stats.KindHitroll); got != -4 {
		t.Errorf("got hitroll total %d, want -4", got)
	}
}

func TestLedger_Restore_RoundTrip(t *testing.T) {
	l := stats.NewLedger()
	l.Apply([]stats.Modifier{
		{Kind: stats.KindStrength, Value: -3},
		{Kind: stats.KindHitPoints, Value: 25},
	})
	snapshot := l.Totals()

	restored := stats.NewLedger()
	restored.Restore(snapshot)
	if got := restored.Total(stats.KindStrength); got != -3 {
		t.Errorf("got strength total %d, want -3", got)
	}
	if got := restored.Total(stats.KindHitPoints); got != 25 {
		t.Errorf("got hit_points total %d, want 25", got)
	}
}

func TestLedgerSet_PerCharacterIsolation(t *testing.T) {
	set := stats.NewLedgerSet()
	set.Ledger("alice").Apply([]stats.Modifier{{Kind: stats.KindMana, Value: 50}})

	if got := set.Ledger("bob").Total(stats.KindMana); got != 0 {
		t.Errorf("got mana total %d for bob, want 0", got)
	}
	if got := set.Ledger("alice").Total(stats.KindMana); got != 50 {
		t.Errorf("got mana total %d for alice, want 50", got)
	}
}

func TestParseKind(t *testing.T) {
	if _, err := stats.ParseKind("strength"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := stats.ParseKind("luck"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

// kindGen draws one of the valid modifier kinds.
func kindGen() *rapid.Generator[stats.Kind] {
	return rapid.SampledFrom([]stats.Kind{
		stats.KindStrength, stats.KindDexterity, stats.KindConstitution,
		stats.KindIntelligence, stats.KindWisdom, stats.KindCharisma,
		stats.KindHitroll, stats.KindDamroll, stats.KindArmorClass,
		stats.KindHitPoints, stats.KindMana,
	})
}

func TestProperty_Ledger_ApplyReverseIsIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := stats.NewLedger()

		// Pre-existing state from other equipped items.
		preMods := rapid.SliceOfN(rapid.Custom(func(t *rapid.T) stats.Modifier {
			return stats.Modifier{
				Kind:  kindGen().Draw(t, "preKind"),
				Value: rapid.IntRange(-10, 10).Draw(t, "preValue"),
			}
		}), 0, 8).Draw(t, "preMods")
		l.Apply(preMods)
		before := l.Totals()

		mods := rapid.SliceOfN(rapid.Custom(func(t *rapid.T) stats.Modifier {
			return stats.Modifier{
				Kind:  kindGen().Draw(t, "kind"),
				Value: rapid.IntRange(-25, 25).Draw(t, "value"),
			}
		}), 0, 10).Draw(t, "mods")

		cycles := rapid.IntRange(1, 15).Draw(t, "cycles")
		for i := 0; i < cycles; i++ {
			l.Apply(mods)
			l.Reverse(mods)
		}

		after := l.Totals()
		if len(after) != len(before) {
			t.Fatalf("totals drifted: %v != %v", after, before)
		}
		for k, v := range before {
			if after[k] != v {
				t.Fatalf("total for %s drifted: %d != %d", k, after[k], v)
			}
		}
	})
}
