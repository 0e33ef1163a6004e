package inventory

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ltroylove/CrimsionMud3-sub001/internal/game/character"
	"github.com/ltroylove/CrimsionMud3-sub001/internal/game/stats"
)

// EquipmentManager orchestrates equip and unequip against the location
// registry, slot validator, capacity tables, and modifier ledger. It owns
// the only two transitions an equipment slot has: Empty -> Occupied via
// Equip (or Occupied -> Occupied via replace) and Occupied -> Empty via
// Unequip.
type EquipmentManager struct {
	reg     *Registry
	caps    *stats.CapacityTable
	ledgers *stats.LedgerSet
	log     *zap.Logger
}

// NewEquipmentManager creates an EquipmentManager over shared engine state.
//
// Precondition: reg, caps, and ledgers must be non-nil; log may be nil for
// no logging.
func NewEquipmentManager(reg *Registry, caps *stats.CapacityTable, ledgers *stats.LedgerSet, log *zap.Logger) *EquipmentManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &EquipmentManager{reg: reg, caps: caps, ledgers: ledgers, log: log}
}

// wearMessage returns the player-facing success message for occupying slot.
func wearMessage(name string, slot Slot) string {
	switch slot {
	case SlotWield:
		return fmt.Sprintf("You wield %s.", name)
	case SlotHold:
		return fmt.Sprintf("You grab hold of %s.", name)
	case SlotLight:
		return fmt.Sprintf("You light %s and hold it.", name)
	case SlotShield:
		return fmt.Sprintf("You start using %s as a shield.", name)
	default:
		return fmt.Sprintf("You wear %s %s.", name, slot.DisplayName())
	}
}

// checkRestrictions validates level, class, and alignment against the
// template's restriction set.
func checkRestrictions(sheet *character.Sheet, tmpl *Template) (Result, bool) {
	if tmpl.Restrict.MinLevel > 0 && sheet.Level < tmpl.Restrict.MinLevel {
		return failure(ReasonRestriction, "You are not experienced enough to use %s.", tmpl.Name), false
	}
	if tmpl.Restrict.ForbidsClass(sheet.Class) {
		return failure(ReasonRestriction, "Your class is forbidden from using %s.", tmpl.Name), false
	}
	if tmpl.Restrict.ForbidsAlignment(sheet.Alignment) {
		return failure(ReasonRestriction, "You are zapped by %s the moment you touch it.", tmpl.Name), false
	}
	return Result{}, true
}

// Equip moves a carried item into an equipment slot.
//
// Preconditions: the item is in the character's pack; the template may
// occupy the slot; restrictions pass; carried weight stays within the
// strength limit. A two-handed weapon automatically displaces an equipped
// shield; equipping a shield against a wielded two-handed weapon is
// rejected.
//
// Replace semantics: equipping into an occupied slot unequips the previous
// item and equips the new one as one atomic call. If validation fails the
// previous item remains equipped and no state changes.
func (m *EquipmentManager) Equip(sheet *character.Sheet, inst *Instance, slot Slot) Result {
	tmpl := inst.Template
	led := m.ledgers.Ledger(sheet.ID)

	loc, ok := m.reg.Location(inst.ID)
	if !ok || loc.Kind != InPack || loc.CharacterID != sheet.ID {
		return failure(ReasonItemNotFound, "You don't seem to have %s.", tmpl.Name)
	}

	if !CanOccupy(tmpl, slot) {
		return failure(ReasonSlotIncompatible, "You can't wear %s there.", tmpl.Name)
	}

	if res, ok := checkRestrictions(sheet, tmpl); !ok {
		return res
	}

	// Two-handed weapons claim the shield position; the reverse direction
	// is rejected rather than auto-removed, matching legacy behavior.
	var displacedShield *Instance
	if slot == SlotWield && tmpl.TwoHanded() {
		if shield, occupied := m.reg.EquippedItem(sheet.ID, SlotShield); occupied {
			displacedShield = shield
		}
	}
	if slot == SlotShield {
		if weapon, occupied := m.reg.EquippedItem(sheet.ID, SlotWield); occupied && weapon.Template.TwoHanded() {
			return failure(ReasonSlotConflict, "Your hands are too full with %s to use a shield.", weapon.Template.Name)
		}
	}

	eff := sheet.EffectiveAbilities(led)
	if m.reg.CarriedWeight(sheet.ID) > m.caps.MaxWeight(eff.Strength) {
		return failure(ReasonOverCapacity, "You can't carry that much weight.")
	}

	replaced, _ := m.reg.EquippedItem(sheet.ID, slot)

	// Validation is complete; apply all transitions. Registry moves below
	// cannot fail, so the operation is atomic from the caller's view.
	var parts []string
	var displaced []*Instance

	for _, out := range []*Instance{displacedShield, replaced} {
		if out == nil {
			continue
		}
		led.Reverse(out.Template.Modifiers)
		m.mustMove(out, PackLocation(sheet.ID))
		displaced = append(displaced, out)
		parts = append(parts, fmt.Sprintf("You stop using %s.", out.Template.Name))
	}

	m.mustMove(inst, SlotLocation(sheet.ID, slot))
	led.Apply(tmpl.Modifiers)
	sheet.ClampVitals(led)

	parts = append(parts, wearMessage(tmpl.Name, slot))
	m.log.Debug("equipped item",
		zap.String("character", sheet.ID),
		zap.String("item", inst.ID),
		zap.String("slot", string(slot)))

	res := success("%s", strings.Join(parts, " "))
	res.Item = inst
	res.Slot = slot
	res.Displaced = displaced
	return res
}

// Unequip moves the item in the given slot back into the character's pack
// and reverses its modifiers.
//
// Precondition: the slot is occupied; an empty slot is rejected with no
// state change.
func (m *EquipmentManager) Unequip(sheet *character.Sheet, slot Slot) Result {
	inst, ok := m.reg.EquippedItem(sheet.ID, slot)
	if !ok {
		return failure(ReasonEmptySlot, "You aren't using anything there.")
	}

	led := m.ledgers.Ledger(sheet.ID)
	led.Reverse(inst.Template.Modifiers)
	m.mustMove(inst, PackLocation(sheet.ID))
	sheet.ClampVitals(led)

	m.log.Debug("unequipped item",
		zap.String("character", sheet.ID),
		zap.String("item", inst.ID),
		zap.String("slot", string(slot)))

	res := success("You stop using %s.", inst.Template.Name)
	res.Item = inst
	res.Slot = slot
	return res
}

// WieldedWeapon returns the character's currently wielded weapon, if any.
// Read by the combat collaborator; it never mutates the registry.
func (m *EquipmentManager) WieldedWeapon(characterID string) (*Instance, bool) {
	return m.reg.EquippedItem(characterID, SlotWield)
}

// Ledger exposes the character's modifier ledger for read-only collaborators
// (combat, spells, movement).
func (m *EquipmentManager) Ledger(characterID string) *stats.Ledger {
	return m.ledgers.Ledger(characterID)
}

// mustMove performs a registry move that prior validation has guaranteed to
// succeed; a failure here is a broken invariant.
func (m *EquipmentManager) mustMove(inst *Instance, loc Location) {
	if err := m.reg.Move(inst, loc); err != nil {
		panic(fmt.Sprintf("inventory: validated move failed: %v", err))
	}
}
