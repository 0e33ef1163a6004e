package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ltroylove/CrimsionMud3-sub001/internal/game/character"
	"github.com/ltroylove/CrimsionMud3-sub001/internal/game/inventory"
)

// Handlers binds player commands to the equipment and inventory engine.
// Every method returns the player-facing message; engine failures surface
// their Result message verbatim.
type Handlers struct {
	reg   *inventory.Registry
	equip *inventory.EquipmentManager
	inv   *inventory.InventoryManager

	// LookupCharacter resolves a visible character by name for give.
	// Nil disables character-to-character transfers.
	LookupCharacter func(name string) (*character.Sheet, bool)
}

// NewHandlers creates the command handler set over shared engine state.
//
// Precondition: reg, equip, and inv must be non-nil.
func NewHandlers(reg *inventory.Registry, equip *inventory.EquipmentManager, inv *inventory.InventoryManager) *Handlers {
	return &Handlers{reg: reg, equip: equip, inv: inv}
}

// wearSlots lists the positions the wear command may target: everything
// except the wield and hold hands, which have their own commands.
var wearSlots = func() []inventory.Slot {
	out := make([]inventory.Slot, 0, len(inventory.SlotOrder))
	for _, s := range inventory.SlotOrder {
		if s == inventory.SlotWield || s == inventory.SlotHold {
			continue
		}
		out = append(out, s)
	}
	return out
}()

// slotAliases maps player slot words to the candidate slots they address.
// Paired positions resolve right before left, first before second.
var slotAliases = map[string][]inventory.Slot{
	"finger": {inventory.SlotFingerRight, inventory.SlotFingerLeft},
	"neck":   {inventory.SlotNeck1, inventory.SlotNeck2},
	"wrist":  {inventory.SlotWristRight, inventory.SlotWristLeft},
}

// parseSlot resolves a player slot word into candidate slots.
func parseSlot(name string) ([]inventory.Slot, bool) {
	name = strings.ToLower(name)
	if slots, ok := slotAliases[name]; ok {
		return slots, true
	}
	for _, s := range inventory.SlotOrder {
		if string(s) == name {
			return []inventory.Slot{s}, true
		}
	}
	return nil, false
}

// chooseSlot picks the slot to equip into: the first compatible empty slot,
// or the first compatible occupied one so replace semantics apply.
func (h *Handlers) chooseSlot(sheet *character.Sheet, tmpl *inventory.Template, candidates []inventory.Slot) (inventory.Slot, bool) {
	var fallback inventory.Slot
	found := false
	for _, s := range candidates {
		if !inventory.CanOccupy(tmpl, s) {
			continue
		}
		if _, occupied := h.reg.EquippedItem(sheet.ID, s); !occupied {
			return s, true
		}
		if !found {
			fallback = s
			found = true
		}
	}
	return fallback, found
}

// Wear handles "wear <item> [slot]".
func (h *Handlers) Wear(sheet *character.Sheet, args []string) string {
	if len(args) < 1 {
		return "Wear what?"
	}
	inst, ok := h.inv.FindItem(sheet.ID, args[0])
	if !ok {
		return "You don't seem to have that."
	}

	candidates := wearSlots
	if len(args) >= 2 {
		parsed, ok := parseSlot(args[1])
		if !ok {
			return fmt.Sprintf("%q is not a place you can wear things.", args[1])
		}
		candidates = parsed
	}

	slot, ok := h.chooseSlot(sheet, inst.Template, candidates)
	if !ok {
		return fmt.Sprintf("You can't wear %s there.", inst.Template.Name)
	}
	return h.equip.Equip(sheet, inst, slot).Message
}

// Wield handles "wield <weapon>".
func (h *Handlers) Wield(sheet *character.Sheet, args []string) string {
	if len(args) < 1 {
		return "Wield what?"
	}
	inst, ok := h.inv.FindItem(sheet.ID, args[0])
	if !ok {
		return "You don't seem to have that."
	}
	return h.equip.Equip(sheet, inst, inventory.SlotWield).Message
}

// Hold handles "hold <item>".
func (h *Handlers) Hold(sheet *character.Sheet, args []string) string {
	if len(args) < 1 {
		return "Hold what?"
	}
	inst, ok := h.inv.FindItem(sheet.ID, args[0])
	if !ok {
		return "You don't seem to have that."
	}
	return h.equip.Equip(sheet, inst, inventory.SlotHold).Message
}

// Remove handles "remove <item|slot>": the argument names either an
// equipped item or an equipment position.
func (h *Handlers) Remove(sheet *character.Sheet, args []string) string {
	if len(args) < 1 {
		return "Remove what?"
	}
	if candidates, ok := parseSlot(args[0]); ok {
		for _, s := range candidates {
			if _, occupied := h.reg.EquippedItem(sheet.ID, s); occupied {
				return h.equip.Unequip(sheet, s).Message
			}
		}
		return "You aren't using anything there."
	}
	if _, slot, ok := h.inv.FindEquippedItem(sheet.ID, args[0]); ok {
		return h.equip.Unequip(sheet, slot).Message
	}
	return "You aren't using that."
}

// EquipmentList handles "equipment".
func (h *Handlers) EquipmentList(sheet *character.Sheet) string {
	entries := h.reg.EquippedItems(sheet.ID)
	if len(entries) == 0 {
		return "You aren't using anything."
	}
	var b strings.Builder
	b.WriteString("You are using:")
	for _, e := range entries {
		fmt.Fprintf(&b, "\n<%s> %s", e.Slot.DisplayName(), e.Item.Template.Name)
	}
	return b.String()
}

// InventoryList handles "inventory".
func (h *Handlers) InventoryList(sheet *character.Sheet) string {
	items := h.inv.Carried(sheet.ID)
	var b strings.Builder
	if len(items) == 0 {
		b.WriteString("You aren't carrying anything.")
	} else {
		b.WriteString("You are carrying:")
		for _, inst := range items {
			fmt.Fprintf(&b, "\n  %s", inst.Template.Name)
		}
	}
	fmt.Fprintf(&b, "\nYou have %s.", inventory.FormatGold(sheet.Gold))
	return b.String()
}

// Balance handles "balance".
func (h *Handlers) Balance(sheet *character.Sheet) string {
	return fmt.Sprintf("You have %s.", inventory.FormatGold(sheet.Gold))
}

// findContainer resolves a container keyword against the pack first, then
// the room floor.
func (h *Handlers) findContainer(sheet *character.Sheet, roomID, query string) (*inventory.Instance, bool) {
	if inst, ok := h.inv.FindItem(sheet.ID, query); ok {
		return inst, true
	}
	return h.inv.FindItemInRoom(roomID, query)
}

// Get handles "get <item>" from the room floor and "get <item> <container>".
// Picking up a currency pile folds it into the gold balance.
func (h *Handlers) Get(sheet *character.Sheet, roomID string, args []string) string {
	switch len(args) {
	case 0:
		return "Get what?"
	case 1:
		inst, ok := h.inv.FindItemInRoom(roomID, args[0])
		if !ok {
			return "You don't see that here."
		}
		if inst.Template.Category == inventory.CategoryCurrency {
			return h.inv.PickupGold(sheet, inst, roomID).Message
		}
		return h.inv.GetItemFromRoom(sheet, inst, roomID).Message
	default:
		cont, ok := h.findContainer(sheet, roomID, args[1])
		if !ok {
			return "You don't see that container here."
		}
		inst, ok := h.inv.FindItemInContainer(cont, args[0])
		if !ok {
			return fmt.Sprintf("You don't see that in %s.", cont.Template.Name)
		}
		return h.inv.GetItemFromContainer(sheet, inst, cont).Message
	}
}

// Drop handles "drop <item>" and "drop <amount> gold".
func (h *Handlers) Drop(sheet *character.Sheet, roomID string, args []string) string {
	if len(args) < 1 {
		return "Drop what?"
	}
	if len(args) >= 2 && isGoldWord(args[1]) {
		amount, err := strconv.Atoi(args[0])
		if err != nil {
			return "Drop how much gold?"
		}
		return h.inv.DropGold(sheet, amount, roomID).Message
	}
	inst, ok := h.inv.FindItem(sheet.ID, args[0])
	if !ok {
		return "You don't seem to have that."
	}
	return h.inv.DropItemInRoom(sheet, inst, roomID).Message
}

func isGoldWord(w string) bool {
	w = strings.ToLower(w)
	return w == "gold" || w == "coin" || w == "coins"
}

// Put handles "put <item> <container>".
func (h *Handlers) Put(sheet *character.Sheet, roomID string, args []string) string {
	if len(args) < 2 {
		return "Put what where?"
	}
	inst, ok := h.inv.FindItem(sheet.ID, args[0])
	if !ok {
		return "You don't seem to have that."
	}
	cont, ok := h.findContainer(sheet, roomID, args[1])
	if !ok {
		return "You don't see that container here."
	}
	return h.inv.PutItemInContainer(inst, cont).Message
}

// Give handles "give <item> <character>".
func (h *Handlers) Give(sheet *character.Sheet, args []string) string {
	if len(args) < 2 {
		return "Give what to whom?"
	}
	inst, ok := h.inv.FindItem(sheet.ID, args[0])
	if !ok {
		return "You don't seem to have that."
	}
	if h.LookupCharacter == nil {
		return "There is nobody here by that name."
	}
	target, ok := h.LookupCharacter(args[1])
	if !ok {
		return "There is nobody here by that name."
	}
	return h.inv.GiveItem(sheet, target, inst).Message
}

// Open handles "open <container>".
func (h *Handlers) Open(sheet *character.Sheet, roomID string, args []string) string {
	if len(args) < 1 {
		return "Open what?"
	}
	cont, ok := h.findContainer(sheet, roomID, args[0])
	if !ok {
		return "You don't see that here."
	}
	return h.inv.OpenContainer(cont).Message
}

// Close handles "close <container>".
func (h *Handlers) Close(sheet *character.Sheet, roomID string, args []string) string {
	if len(args) < 1 {
		return "Close what?"
	}
	cont, ok := h.findContainer(sheet, roomID, args[0])
	if !ok {
		return "You don't see that here."
	}
	return h.inv.CloseContainer(cont).Message
}
