package inventory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ltroylove/CrimsionMud3-sub001/internal/game/character"
	"github.com/ltroylove/CrimsionMud3-sub001/internal/game/stats"
)

// InventoryManager orchestrates pack, container, and room movement against
// the location registry and capacity tables. Every operation validates all
// preconditions before mutating, so a rejected operation never leaves a
// partial state change.
type InventoryManager struct {
	reg     *Registry
	caps    *stats.CapacityTable
	ledgers *stats.LedgerSet
	gold    *Template
	log     *zap.Logger
}

// NewInventoryManager creates an InventoryManager over shared engine state.
//
// Precondition: reg, caps, and ledgers must be non-nil; goldTmpl must be a
// currency-category template used to materialize dropped gold; log may be
// nil for no logging.
func NewInventoryManager(reg *Registry, caps *stats.CapacityTable, ledgers *stats.LedgerSet, goldTmpl *Template, log *zap.Logger) *InventoryManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &InventoryManager{reg: reg, caps: caps, ledgers: ledgers, gold: goldTmpl, log: log}
}

// canCarry checks the weight and item-count limits for taking inst into the
// character's pack. Limits derive from the effective (ledger-adjusted)
// strength and dexterity, recomputed on every call.
func (m *InventoryManager) canCarry(sheet *character.Sheet, inst *Instance) (Result, bool) {
	eff := sheet.EffectiveAbilities(m.ledgers.Ledger(sheet.ID))
	if m.reg.CarriedWeight(sheet.ID)+inst.TotalWeight() > m.caps.MaxWeight(eff.Strength) {
		return failure(ReasonOverCapacity, "%s is too heavy for you to carry.", inst.Template.Name), false
	}
	if m.reg.CarriedCount(sheet.ID)+1 > m.caps.MaxItemCount(eff.Dexterity) {
		return failure(ReasonOverCapacity, "You can't carry that many items."), false
	}
	return Result{}, true
}

// AddItem places an item into the character's pack from wherever it
// currently is.
//
// Precondition: the item is registered and not already in this character's
// pack; the capacity limits admit it.
func (m *InventoryManager) AddItem(sheet *character.Sheet, inst *Instance) Result {
	loc, ok := m.reg.Location(inst.ID)
	if !ok {
		return failure(ReasonItemNotFound, "%s is nowhere to be found.", inst.Template.Name)
	}
	if loc.Kind == InPack && loc.CharacterID == sheet.ID {
		return failure(ReasonItemNotFound, "You are already carrying %s.", inst.Template.Name)
	}
	if res, ok := m.canCarry(sheet, inst); !ok {
		return res
	}

	m.mustMove(inst, PackLocation(sheet.ID))
	res := success("You now carry %s.", inst.Template.Name)
	res.Item = inst
	return res
}

// RemoveItem takes an item out of the character's pack and destroys its
// registration: the engine stops tracking it. Used when an item is consumed
// or handed to an external collaborator. The no-drop restriction does not
// apply to this internal transfer.
//
// Precondition: the item is in the character's pack.
func (m *InventoryManager) RemoveItem(sheet *character.Sheet, inst *Instance) Result {
	loc, ok := m.reg.Location(inst.ID)
	if !ok || loc.Kind != InPack || loc.CharacterID != sheet.ID {
		return failure(ReasonItemNotFound, "You don't seem to have %s.", inst.Template.Name)
	}

	if err := m.reg.Extract(inst); err != nil {
		panic(fmt.Sprintf("inventory: validated extract failed: %v", err))
	}
	res := success("You no longer carry %s.", inst.Template.Name)
	res.Item = inst
	return res
}

// GiveItem transfers an item from one character's pack to another's. The
// transfer is two serialized single-character operations, validated up
// front so the item never leaves the source on failure. No-drop items may
// be given; only room drops are restricted.
//
// Precondition: the item is in the giver's pack; the receiver's capacity
// limits admit it.
func (m *InventoryManager) GiveItem(from, to *character.Sheet, inst *Instance) Result {
	loc, ok := m.reg.Location(inst.ID)
	if !ok || loc.Kind != InPack || loc.CharacterID != from.ID {
		return failure(ReasonItemNotFound, "You don't seem to have %s.", inst.Template.Name)
	}
	if res, ok := m.canCarry(to, inst); !ok {
		return res
	}

	m.mustMove(inst, PackLocation(to.ID))
	m.log.Debug("item given",
		zap.String("from", from.ID),
		zap.String("to", to.ID),
		zap.String("item", inst.ID))

	res := success("You give %s to %s.", inst.Template.Name, to.Name)
	res.Item = inst
	return res
}

// DropItemInRoom moves an item from the character's pack onto a room's
// floor. Items flagged no-drop reject this specific operation.
//
// Precondition: the item is in the character's pack.
func (m *InventoryManager) DropItemInRoom(sheet *character.Sheet, inst *Instance, roomID string) Result {
	loc, ok := m.reg.Location(inst.ID)
	if !ok || loc.Kind != InPack || loc.CharacterID != sheet.ID {
		return failure(ReasonItemNotFound, "You don't seem to have %s.", inst.Template.Name)
	}
	if inst.Template.Restrict.NoDrop {
		return failure(ReasonNoDrop, "You can't let go of %s, it must be CURSED!", inst.Template.Name)
	}

	release := m.reg.lockResources(roomResource(roomID))
	defer release()

	m.mustMove(inst, RoomLocation(roomID))
	res := success("You drop %s.", inst.Template.Name)
	res.Item = inst
	return res
}

// GetItemFromRoom picks an item up off a room's floor into the character's
// pack.
//
// Precondition: the item is in the given room, can be taken at all, and the
// capacity limits admit it. Validation runs under the room's resource lock,
// so of two characters reaching for the same item exactly one succeeds; the
// other is told the item is gone.
func (m *InventoryManager) GetItemFromRoom(sheet *character.Sheet, inst *Instance, roomID string) Result {
	release := m.reg.lockResources(roomResource(roomID))
	defer release()

	loc, ok := m.reg.Location(inst.ID)
	if !ok || loc.Kind != InRoom || loc.RoomID != roomID {
		return failure(ReasonItemNotFound, "You don't see %s here.", inst.Template.Name)
	}
	if !inst.Template.HasWear(WearTake) {
		return failure(ReasonRestriction, "You can't take %s.", inst.Template.Name)
	}
	if res, ok := m.canCarry(sheet, inst); !ok {
		return res
	}

	m.mustMove(inst, PackLocation(sheet.ID))
	res := success("You get %s.", inst.Template.Name)
	res.Item = inst
	return res
}

// PutItemInContainer moves an item into a container instance. The free
// capacity check and the transfer run together under the container's
// resource lock, so two concurrent puts cannot both pass the check and
// overfill the container.
//
// Preconditions: cont is an open container; the item fits in the remaining
// free capacity; the move keeps the containment graph acyclic.
func (m *InventoryManager) PutItemInContainer(inst, cont *Instance) Result {
	if cont.Template.Category != CategoryContainer || cont.Template.Container == nil {
		return failure(ReasonNotAContainer, "%s is not a container.", cont.Template.Name)
	}

	release := m.reg.lockResources(containerResource(cont.ID))
	defer release()

	if _, ok := m.reg.Location(inst.ID); !ok {
		return failure(ReasonItemNotFound, "%s is nowhere to be found.", inst.Template.Name)
	}
	if _, ok := m.reg.Location(cont.ID); !ok {
		return failure(ReasonItemNotFound, "%s is nowhere to be found.", cont.Template.Name)
	}
	if cont.Closed {
		return failure(ReasonContainerClosed, "%s is closed.", cont.Template.Name)
	}
	if inst == cont {
		return failure(ReasonCycle, "You can't put %s inside itself.", inst.Template.Name)
	}
	if m.isInside(cont, inst) {
		return failure(ReasonCycle, "%s would fold in on itself.", inst.Template.Name)
	}
	if !CanContain(cont.Template, inst.Template, cont.ContentWeight()) ||
		inst.TotalWeight() > cont.Template.Container.Capacity-cont.ContentWeight() {
		return failure(ReasonContainerFull, "%s won't fit in %s.", inst.Template.Name, cont.Template.Name)
	}

	m.mustMove(inst, ContainerLocation(cont.ID))
	res := success("You put %s in %s.", inst.Template.Name, cont.Template.Name)
	res.Item = inst
	return res
}

// GetItemFromContainer moves an item out of a container into the
// character's pack.
//
// Preconditions: the item is inside cont; cont is open; the capacity limits
// admit the item. Validation runs under the container's resource lock, so of
// two characters reaching into the same container for the same item exactly
// one succeeds.
func (m *InventoryManager) GetItemFromContainer(sheet *character.Sheet, inst, cont *Instance) Result {
	release := m.reg.lockResources(containerResource(cont.ID))
	defer release()

	loc, ok := m.reg.Location(inst.ID)
	if !ok || loc.Kind != InContainer || loc.ContainerID != cont.ID {
		return failure(ReasonItemNotFound, "%s is not in %s.", inst.Template.Name, cont.Template.Name)
	}
	if cont.Closed {
		return failure(ReasonContainerClosed, "%s is closed.", cont.Template.Name)
	}
	if res, ok := m.canCarry(sheet, inst); !ok {
		return res
	}

	m.mustMove(inst, PackLocation(sheet.ID))
	res := success("You get %s from %s.", inst.Template.Name, cont.Template.Name)
	res.Item = inst
	return res
}

// isInside reports whether inst is (transitively) contained within outer.
func (m *InventoryManager) isInside(inst, outer *Instance) bool {
	loc, ok := m.reg.Location(inst.ID)
	for ok && loc.Kind == InContainer {
		if loc.ContainerID == outer.ID {
			return true
		}
		loc, ok = m.reg.Location(loc.ContainerID)
	}
	return false
}

// OpenContainer opens a closable container.
func (m *InventoryManager) OpenContainer(cont *Instance) Result {
	if cont.Template.Category != CategoryContainer || !containerClosable(cont) {
		return failure(ReasonNotAContainer, "You can't open %s.", cont.Template.Name)
	}
	if !cont.Closed {
		return failure(ReasonContainerClosed, "%s is already open.", cont.Template.Name)
	}
	cont.Closed = false
	res := success("You open %s.", cont.Template.Name)
	res.Item = cont
	return res
}

// CloseContainer closes a closable container. Closed containers still move
// with their contents as a unit.
func (m *InventoryManager) CloseContainer(cont *Instance) Result {
	if cont.Template.Category != CategoryContainer || !containerClosable(cont) {
		return failure(ReasonNotAContainer, "You can't close %s.", cont.Template.Name)
	}
	if cont.Closed {
		return failure(ReasonContainerClosed, "%s is already closed.", cont.Template.Name)
	}
	cont.Closed = true
	res := success("You close %s.", cont.Template.Name)
	res.Item = cont
	return res
}

// DropGold converts part of the character's gold balance into a currency
// pile on the room floor.
//
// Precondition: 0 < amount <= the character's balance.
func (m *InventoryManager) DropGold(sheet *character.Sheet, amount int, roomID string) Result {
	if amount <= 0 {
		return failure(ReasonInsufficientGold, "Drop how much gold?")
	}
	if sheet.Gold < amount {
		return failure(ReasonInsufficientGold, "You don't have that much gold.")
	}

	release := m.reg.lockResources(roomResource(roomID))
	defer release()

	pile, err := m.reg.SpawnCurrency(m.gold, amount, RoomLocation(roomID))
	if err != nil {
		panic(fmt.Sprintf("inventory: validated gold spawn failed: %v", err))
	}
	sheet.Gold -= amount

	res := success("You drop %s.", FormatGold(amount))
	res.Item = pile
	return res
}

// PickupGold converts a currency pile back into the character's balance and
// destroys the pile instance.
//
// Precondition: pile is a currency instance on the given room's floor.
// Validation runs under the room's resource lock, so a pile is only ever
// collected once.
func (m *InventoryManager) PickupGold(sheet *character.Sheet, pile *Instance, roomID string) Result {
	release := m.reg.lockResources(roomResource(roomID))
	defer release()

	loc, ok := m.reg.Location(pile.ID)
	if !ok || loc.Kind != InRoom || loc.RoomID != roomID {
		return failure(ReasonItemNotFound, "You don't see that here.")
	}
	if pile.Template.Category != CategoryCurrency {
		return failure(ReasonItemNotFound, "That isn't money.")
	}

	amount := pile.Gold
	if err := m.reg.Extract(pile); err != nil {
		panic(fmt.Sprintf("inventory: validated extract failed: %v", err))
	}
	sheet.Gold += amount

	return success("There were %s.", FormatGold(amount))
}

// Carried returns the character's pack contents in insertion order.
func (m *InventoryManager) Carried(characterID string) []*Instance {
	return m.reg.CarriedItems(characterID)
}

// containerClosable reports whether cont's template allows open/close.
func containerClosable(cont *Instance) bool {
	return cont.Template.Container != nil && cont.Template.Container.Closable
}

// roomResource and containerResource build the stable lock-ordering keys
// for shared resources.
func roomResource(roomID string) string      { return "room:" + roomID }
func containerResource(contID string) string { return "container:" + contID }

// mustMove performs a registry move that prior validation has guaranteed to
// succeed; a failure here is a broken invariant.
func (m *InventoryManager) mustMove(inst *Instance, loc Location) {
	if err := m.reg.Move(inst, loc); err != nil {
		panic(fmt.Sprintf("inventory: validated move failed: %v", err))
	}
}
