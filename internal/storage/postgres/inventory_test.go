package postgres

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/ltroylove/CrimsionMud3-sub001/internal/game/inventory"
)

// TestProperty_LocationCodec_RoundTrips verifies that every location kind
// survives the flatten-to-row and decode cycle unchanged. This property test
// does not require a DB connection.
func TestProperty_LocationCodec_RoundTrips(t *testing.T) {
	tmpl := &inventory.Template{
		ID: "misc-token", Name: "a token", Category: "misc", Wear: inventory.WearTake,
	}

	rapid.Check(t, func(rt *rapid.T) {
		id := rapid.StringMatching(`[a-f0-9]{8}`).Draw(rt, "id")
		var loc inventory.Location
		switch rapid.IntRange(0, 3).Draw(rt, "kind") {
		case 0:
			loc = inventory.PackLocation(fmt.Sprintf("char-%s", id))
		case 1:
			slot := inventory.SlotOrder[rapid.IntRange(0, len(inventory.SlotOrder)-1).Draw(rt, "slot")]
			loc = inventory.SlotLocation(fmt.Sprintf("char-%s", id), slot)
		case 2:
			loc = inventory.ContainerLocation(fmt.Sprintf("cont-%s", id))
		default:
			loc = inventory.RoomLocation(fmt.Sprintf("room-%s", id))
		}

		inst := &inventory.Instance{
			ID:       id,
			Template: tmpl,
			Gold:     rapid.IntRange(0, 10000).Draw(rt, "gold"),
			Closed:   rapid.Bool().Draw(rt, "closed"),
		}
		row, err := encodeRow(inventory.InstanceLocation{Instance: inst, Location: loc})
		if err != nil {
			rt.Fatalf("encodeRow: %v", err)
		}
		got, err := decodeLocation(row)
		if err != nil {
			rt.Fatalf("decodeLocation: %v", err)
		}
		if got != loc {
			rt.Fatalf("round trip changed location: %s -> %s", loc, got)
		}
		if row.gold != inst.Gold || row.closed != inst.Closed {
			rt.Fatalf("row state = (%d, %v), want (%d, %v)", row.gold, row.closed, inst.Gold, inst.Closed)
		}
	})
}

func TestEncodeRow_RejectsInvalidKind(t *testing.T) {
	inst := &inventory.Instance{
		ID:       "inst-1",
		Template: &inventory.Template{ID: "misc-token", Name: "a token", Category: "misc"},
	}
	_, err := encodeRow(inventory.InstanceLocation{Instance: inst, Location: inventory.Location{}})
	if err == nil {
		t.Fatal("expected an error for a zero-valued location")
	}
}
