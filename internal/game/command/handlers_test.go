package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ltroylove/CrimsionMud3-sub001/internal/game/character"
	"github.com/ltroylove/CrimsionMud3-sub001/internal/game/dice"
	"github.com/ltroylove/CrimsionMud3-sub001/internal/game/inventory"
	"github.com/ltroylove/CrimsionMud3-sub001/internal/game/stats"
)

// handlerFixture wires a full engine stack behind an Executor so tests can
// drive it through raw input lines.
type handlerFixture struct {
	reg   *inventory.Registry
	exec  *Executor
	h     *Handlers
	sheet *character.Sheet
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	caps, err := stats.NewCapacityTable(
		[]stats.CapacityEntry{{Score: 1, Value: 25}, {Score: 16, Value: 50}, {Score: 18, Value: 200}},
		[]stats.CapacityEntry{{Score: 1, Value: 3}, {Score: 10, Value: 6}, {Score: 16, Value: 10}},
	)
	require.NoError(t, err)

	reg := inventory.NewRegistry()
	ledgers := stats.NewLedgerSet()
	equip := inventory.NewEquipmentManager(reg, caps, ledgers, nil)
	inv := inventory.NewInventoryManager(reg, caps, ledgers, goldTmpl(), nil)
	h := NewHandlers(reg, equip, inv)

	return &handlerFixture{
		reg:  reg,
		exec: NewExecutor(h),
		h:    h,
		sheet: &character.Sheet{
			ID: "char-1", Name: "Tharn", Class: "warrior", Level: 10,
			Alignment: character.AlignmentNeutral,
			Abilities: character.Abilities{
				Strength: 16, Dexterity: 16, Constitution: 14,
				Intelligence: 10, Wisdom: 10, Charisma: 12,
			},
			Gold:  100,
			MaxHP: 100, CurrentHP: 100, MaxMana: 50, CurrentMana: 50,
		},
	}
}

// run executes one input line for the fixture character in room-1.
func (f *handlerFixture) run(line string) string {
	return f.exec.Execute(f.sheet, "room-1", line)
}

func (f *handlerFixture) spawn(t *testing.T, tmpl *inventory.Template, loc inventory.Location) *inventory.Instance {
	t.Helper()
	inst, err := f.reg.Spawn(tmpl, loc)
	require.NoError(t, err)
	return inst
}

func (f *handlerFixture) pack() inventory.Location {
	return inventory.PackLocation(f.sheet.ID)
}

func helmTmpl() *inventory.Template {
	return &inventory.Template{
		ID: "armor-helm", Name: "a steel helm", Aliases: []string{"helm"},
		Category: inventory.CategoryArmor, Weight: 5,
		Wear:      inventory.WearTake | inventory.WearHead,
		Modifiers: []stats.Modifier{{Kind: stats.KindArmorClass, Value: 3}},
	}
}

func swordTmpl() *inventory.Template {
	return &inventory.Template{
		ID: "sword-iron", Name: "an iron sword", Aliases: []string{"sword"},
		Category: inventory.CategoryWeapon, Weight: 8,
		Wear:   inventory.WearTake | inventory.WearWield,
		Weapon: &inventory.WeaponInfo{Damage: dice.MustParse("1d8")},
	}
}

func ringTmpl(id string) *inventory.Template {
	return &inventory.Template{
		ID: id, Name: "a copper ring", Aliases: []string{"ring"},
		Category: inventory.CategoryWorn, Weight: 1,
		Wear: inventory.WearTake | inventory.WearFinger,
	}
}

func bagTmpl() *inventory.Template {
	return &inventory.Template{
		ID: "container-bag", Name: "a leather bag", Aliases: []string{"bag"},
		Category: inventory.CategoryContainer, Weight: 2,
		Wear:      inventory.WearTake,
		Container: &inventory.ContainerInfo{Capacity: 50},
	}
}

func chestTmpl() *inventory.Template {
	return &inventory.Template{
		ID: "container-chest", Name: "an oak chest", Aliases: []string{"chest"},
		Category: inventory.CategoryContainer, Weight: 30,
		Container: &inventory.ContainerInfo{Capacity: 100, Closable: true, StartsClosed: true},
	}
}

func goldTmpl() *inventory.Template {
	return &inventory.Template{
		ID: "currency-gold", Name: "a pile of gold coins", Aliases: []string{"gold", "coins", "pile"},
		Category: inventory.CategoryCurrency, Weight: 0,
		Wear: inventory.WearTake,
	}
}

func TestExecute_UnknownCommand(t *testing.T) {
	f := newHandlerFixture(t)
	assert.Equal(t, "Huh?", f.run("teleport"))
}

func TestExecute_EmptyLine(t *testing.T) {
	f := newHandlerFixture(t)
	assert.Equal(t, "", f.run("   "))
}

func TestWear_AutoSlot(t *testing.T) {
	f := newHandlerFixture(t)
	f.spawn(t, helmTmpl(), f.pack())

	assert.Equal(t, "You wear a steel helm on your head.", f.run("wear helm"))
	_, ok := f.reg.EquippedItem(f.sheet.ID, inventory.SlotHead)
	assert.True(t, ok)
}

func TestWear_ExplicitSlotFillsPairInOrder(t *testing.T) {
	f := newHandlerFixture(t)
	f.spawn(t, ringTmpl("ring-1"), f.pack())
	f.spawn(t, ringTmpl("ring-2"), f.pack())

	assert.Equal(t, "You wear a copper ring on your right finger.", f.run("wear ring finger"))
	assert.Equal(t, "You wear a copper ring on your left finger.", f.run("wear ring finger"))
}

func TestWear_NoArgs(t *testing.T) {
	f := newHandlerFixture(t)
	assert.Equal(t, "Wear what?", f.run("wear"))
}

func TestWear_NotCarried(t *testing.T) {
	f := newHandlerFixture(t)
	assert.Equal(t, "You don't seem to have that.", f.run("wear helm"))
}

func TestWear_UnknownSlotWord(t *testing.T) {
	f := newHandlerFixture(t)
	f.spawn(t, helmTmpl(), f.pack())
	assert.Equal(t, `"elbow" is not a place you can wear things.`, f.run("wear helm elbow"))
}

func TestWear_IncompatibleSlot(t *testing.T) {
	f := newHandlerFixture(t)
	f.spawn(t, helmTmpl(), f.pack())
	assert.Equal(t, "You can't wear a steel helm there.", f.run("wear helm feet"))
}

func TestWield(t *testing.T) {
	f := newHandlerFixture(t)
	f.spawn(t, swordTmpl(), f.pack())

	assert.Equal(t, "You wield an iron sword.", f.run("wield sword"))
	_, ok := f.reg.EquippedItem(f.sheet.ID, inventory.SlotWield)
	assert.True(t, ok)
}

func TestRemove_BySlotName(t *testing.T) {
	f := newHandlerFixture(t)
	f.spawn(t, helmTmpl(), f.pack())
	f.run("wear helm")

	assert.Equal(t, "You stop using a steel helm.", f.run("remove head"))
	_, ok := f.reg.EquippedItem(f.sheet.ID, inventory.SlotHead)
	assert.False(t, ok)
}

func TestRemove_ByItemKeyword(t *testing.T) {
	f := newHandlerFixture(t)
	f.spawn(t, helmTmpl(), f.pack())
	f.run("wear helm")

	assert.Equal(t, "You stop using a steel helm.", f.run("remove helm"))
}

func TestRemove_EmptySlot(t *testing.T) {
	f := newHandlerFixture(t)
	assert.Equal(t, "You aren't using anything there.", f.run("remove head"))
}

func TestRemove_NotEquipped(t *testing.T) {
	f := newHandlerFixture(t)
	f.spawn(t, helmTmpl(), f.pack())
	assert.Equal(t, "You aren't using that.", f.run("remove helm"))
}

func TestEquipmentList(t *testing.T) {
	f := newHandlerFixture(t)
	assert.Equal(t, "You aren't using anything.", f.run("equipment"))

	f.spawn(t, helmTmpl(), f.pack())
	f.run("wear helm")
	assert.Equal(t, "You are using:\n<on your head> a steel helm", f.run("eq"))
}

func TestInventoryList(t *testing.T) {
	f := newHandlerFixture(t)
	assert.Equal(t, "You aren't carrying anything.\nYou have 100 gold coins.", f.run("i"))

	f.spawn(t, helmTmpl(), f.pack())
	assert.Equal(t, "You are carrying:\n  a steel helm\nYou have 100 gold coins.", f.run("inventory"))
}

func TestBalance(t *testing.T) {
	f := newHandlerFixture(t)
	assert.Equal(t, "You have 100 gold coins.", f.run("balance"))
}

func TestGet_FromRoom(t *testing.T) {
	f := newHandlerFixture(t)
	f.spawn(t, helmTmpl(), inventory.RoomLocation("room-1"))

	assert.Equal(t, "You get a steel helm.", f.run("get helm"))
	assert.Len(t, f.h.inv.Carried(f.sheet.ID), 1)
}

func TestGet_NotInRoom(t *testing.T) {
	f := newHandlerFixture(t)
	assert.Equal(t, "You don't see that here.", f.run("get helm"))
}

func TestDropAndGetGold(t *testing.T) {
	f := newHandlerFixture(t)

	assert.Equal(t, "You drop 40 gold coins.", f.run("drop 40 gold"))
	assert.Equal(t, 60, f.sheet.Gold)

	assert.Equal(t, "There were 40 gold coins.", f.run("get gold"))
	assert.Equal(t, 100, f.sheet.Gold)
}

func TestDrop_BadGoldAmount(t *testing.T) {
	f := newHandlerFixture(t)
	assert.Equal(t, "Drop how much gold?", f.run("drop lots gold"))
}

func TestDrop_Item(t *testing.T) {
	f := newHandlerFixture(t)
	f.spawn(t, helmTmpl(), f.pack())

	assert.Equal(t, "You drop a steel helm.", f.run("drop helm"))
	assert.Empty(t, f.h.inv.Carried(f.sheet.ID))
}

func TestPutAndGetFromContainer(t *testing.T) {
	f := newHandlerFixture(t)
	f.spawn(t, bagTmpl(), f.pack())
	f.spawn(t, helmTmpl(), f.pack())

	assert.Equal(t, "You put a steel helm in a leather bag.", f.run("put helm bag"))
	assert.Equal(t, "You get a steel helm from a leather bag.", f.run("get helm bag"))
}

func TestPut_MissingContainer(t *testing.T) {
	f := newHandlerFixture(t)
	f.spawn(t, helmTmpl(), f.pack())
	assert.Equal(t, "You don't see that container here.", f.run("put helm bag"))
}

func TestOpenCloseChest(t *testing.T) {
	f := newHandlerFixture(t)
	chest := f.spawn(t, chestTmpl(), inventory.RoomLocation("room-1"))
	require.True(t, chest.Closed)
	f.spawn(t, helmTmpl(), f.pack())

	assert.Equal(t, "an oak chest is closed.", f.run("put helm chest"))
	assert.Equal(t, "You open an oak chest.", f.run("open chest"))
	assert.Equal(t, "You put a steel helm in an oak chest.", f.run("put helm chest"))
	assert.Equal(t, "You close an oak chest.", f.run("close chest"))
	assert.Equal(t, "an oak chest is closed.", f.run("get helm chest"))
}

func TestGive(t *testing.T) {
	f := newHandlerFixture(t)
	f.spawn(t, helmTmpl(), f.pack())

	assert.Equal(t, "There is nobody here by that name.", f.run("give helm borin"))

	borin := &character.Sheet{
		ID: "char-2", Name: "Borin", Class: "cleric", Level: 5,
		Alignment: character.AlignmentGood,
		Abilities: character.Abilities{
			Strength: 14, Dexterity: 12, Constitution: 14,
			Intelligence: 14, Wisdom: 16, Charisma: 12,
		},
		MaxHP: 60, CurrentHP: 60, MaxMana: 80, CurrentMana: 80,
	}
	f.h.LookupCharacter = func(name string) (*character.Sheet, bool) {
		if name == "borin" {
			return borin, true
		}
		return nil, false
	}

	assert.Equal(t, "You give a steel helm to Borin.", f.run("give helm borin"))
	assert.Len(t, f.h.inv.Carried(borin.ID), 1)
	assert.Empty(t, f.h.inv.Carried(f.sheet.ID))
}

func TestHelp_ListsCommands(t *testing.T) {
	f := newHandlerFixture(t)
	out := f.run("help")
	assert.Contains(t, out, "Available commands:")
	assert.Contains(t, out, "[equipment]")
	assert.Contains(t, out, "wear")
	assert.Contains(t, out, "inventory")
}
