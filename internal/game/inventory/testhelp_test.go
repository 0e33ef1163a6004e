package inventory

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/ltroylove/CrimsionMud3-sub001/internal/game/character"
	"github.com/ltroylove/CrimsionMud3-sub001/internal/game/dice"
	"github.com/ltroylove/CrimsionMud3-sub001/internal/game/stats"
)

// testCapacityEntries returns the breakpoint lists shared by the plain and
// property-based fixtures.
func testCapacityEntries() (weight, count []stats.CapacityEntry) {
	weight = []stats.CapacityEntry{
		{Score: 1, Value: 25},
		{Score: 16, Value: 50},
		{Score: 17, Value: 55},
		{Score: 18, Value: 200},
		{Score: 19, Value: 300},
	}
	count = []stats.CapacityEntry{
		{Score: 1, Value: 3},
		{Score: 10, Value: 6},
		{Score: 16, Value: 10},
		{Score: 18, Value: 20},
	}
	return weight, count
}

// testCapacityTable builds the progression tables the engine tests run
// against: strength 16 carries 50 weight, strength 18 carries 200.
func testCapacityTable(t *testing.T) *stats.CapacityTable {
	t.Helper()
	weight, count := testCapacityEntries()
	table, err := stats.NewCapacityTable(weight, count)
	if err != nil {
		t.Fatalf("NewCapacityTable: %v", err)
	}
	return table
}

type fixture struct {
	reg     *Registry
	caps    *stats.CapacityTable
	ledgers *stats.LedgerSet
	equip   *EquipmentManager
	inv     *InventoryManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		reg:     NewRegistry(),
		caps:    testCapacityTable(t),
		ledgers: stats.NewLedgerSet(),
	}
	f.equip = NewEquipmentManager(f.reg, f.caps, f.ledgers, nil)
	f.inv = NewInventoryManager(f.reg, f.caps, f.ledgers, goldTemplate(), nil)
	return f
}

// newFixtureRapid builds the same fixture inside a rapid property.
func newFixtureRapid(rt *rapid.T) *fixture {
	weight, count := testCapacityEntries()
	caps, err := stats.NewCapacityTable(weight, count)
	if err != nil {
		rt.Fatalf("NewCapacityTable: %v", err)
	}
	f := &fixture{
		reg:     NewRegistry(),
		caps:    caps,
		ledgers: stats.NewLedgerSet(),
	}
	f.equip = NewEquipmentManager(f.reg, f.caps, f.ledgers, nil)
	f.inv = NewInventoryManager(f.reg, f.caps, f.ledgers, goldTemplate(), nil)
	return f
}

// spawn places a fresh instance of tmpl at loc, failing the test on error.
func (f *fixture) spawn(t *testing.T, tmpl *Template, loc Location) *Instance {
	t.Helper()
	inst, err := f.reg.Spawn(tmpl, loc)
	if err != nil {
		t.Fatalf("Spawn(%s, %s): %v", tmpl.ID, loc, err)
	}
	return inst
}

func testSheet(id string) *character.Sheet {
	return &character.Sheet{
		ID:        id,
		Name:      "Tharn",
		Class:     "warrior",
		Level:     10,
		Alignment: character.AlignmentNeutral,
		Abilities: character.Abilities{
			Strength: 16, Dexterity: 16, Constitution: 14,
			Intelligence: 10, Wisdom: 10, Charisma: 12,
		},
		Gold:        100,
		MaxHP:       100,
		CurrentHP:   100,
		MaxMana:     50,
		CurrentMana: 50,
	}
}

func swordTemplate() *Template {
	return &Template{
		ID: "sword-iron", Name: "an iron sword", Aliases: []string{"sword", "iron"},
		Category: CategoryWeapon, Weight: 8,
		Wear:   WearTake | WearWield,
		Weapon: &WeaponInfo{Damage: dice.MustParse("1d8")},
	}
}

func claymoreTemplate() *Template {
	return &Template{
		ID: "sword-claymore", Name: "a massive claymore", Aliases: []string{"claymore", "sword"},
		Category: CategoryWeapon, Weight: 15,
		Wear:   WearTake | WearWield | WearTwoHanded,
		Weapon: &WeaponInfo{Damage: dice.MustParse("2d6+1")},
	}
}

func shieldTemplate() *Template {
	return &Template{
		ID: "shield-wooden", Name: "a wooden shield", Aliases: []string{"shield"},
		Category: CategoryArmor, Weight: 10,
		Wear:       WearTake | WearShield,
		ArmorBonus: 2,
		Modifiers:  []stats.Modifier{{Kind: stats.KindArmorClass, Value: 10}},
	}
}

func plateTemplate() *Template {
	return &Template{
		ID: "armor-plate", Name: "a suit of plate mail", Aliases: []string{"plate", "mail"},
		Category: CategoryArmor, Weight: 45,
		Wear:       WearTake | WearBody,
		ArmorBonus: 8,
		Modifiers:  []stats.Modifier{{Kind: stats.KindArmorClass, Value: 30}},
	}
}

func helmTemplate() *Template {
	return &Template{
		ID: "armor-helm", Name: "a steel helm", Aliases: []string{"helm"},
		Category: CategoryArmor, Weight: 5,
		Wear:      WearTake | WearHead,
		Modifiers: []stats.Modifier{{Kind: stats.KindArmorClass, Value: 3}, {Kind: stats.KindHitPoints, Value: 10}},
	}
}

func girdleTemplate() *Template {
	return &Template{
		ID: "worn-girdle", Name: "a girdle of giant strength", Aliases: []string{"girdle"},
		Category: CategoryWorn, Weight: 1,
		Wear:      WearTake | WearWaist,
		Modifiers: []stats.Modifier{{Kind: stats.KindStrength, Value: 2}},
	}
}

func ringTemplate(id, name string, mods ...stats.Modifier) *Template {
	return &Template{
		ID: id, Name: name, Aliases: []string{"ring"},
		Category: CategoryWorn, Weight: 1,
		Wear:      WearTake | WearFinger,
		Modifiers: mods,
	}
}

func bagTemplate() *Template {
	return &Template{
		ID: "container-bag", Name: "a leather bag", Aliases: []string{"bag"},
		Category: CategoryContainer, Weight: 2,
		Wear:      WearTake,
		Container: &ContainerInfo{Capacity: 50},
	}
}

func pouchTemplate() *Template {
	return &Template{
		ID: "container-pouch", Name: "a small pouch", Aliases: []string{"pouch"},
		Category: CategoryContainer, Weight: 1,
		Wear:      WearTake,
		Container: &ContainerInfo{Capacity: 10},
	}
}

func chestTemplate() *Template {
	return &Template{
		ID: "container-chest", Name: "an oak chest", Aliases: []string{"chest"},
		Category: CategoryContainer, Weight: 30,
		Container: &ContainerInfo{Capacity: 100, Closable: true, StartsClosed: true},
	}
}

func cursedTemplate() *Template {
	return &Template{
		ID: "misc-cursed-idol", Name: "a cursed idol", Aliases: []string{"idol"},
		Category: CategoryMisc, Weight: 2,
		Wear:     WearTake,
		Restrict: Restrictions{NoDrop: true},
	}
}

func goldTemplate() *Template {
	return &Template{
		ID: "currency-gold", Name: "a pile of gold coins", Aliases: []string{"gold", "coins", "pile"},
		Category: CategoryCurrency, Weight: 0,
		Wear: WearTake,
	}
}
