package inventory

import (
	"strconv"
	"strings"
)

// ParseKeyword splits a player query into an ordinal and a keyword. The
// form "2.sword" addresses the second matching item; a bare keyword means
// the first match. A malformed or non-positive ordinal prefix is treated
// as part of the keyword, which then matches nothing by construction.
func ParseKeyword(query string) (ordinal int, keyword string) {
	before, after, found := strings.Cut(query, ".")
	if !found {
		return 1, query
	}
	n, err := strconv.Atoi(before)
	if err != nil || n < 1 {
		return 1, query
	}
	return n, after
}

// findNth returns the ordinal-th keyword match from items, counted in the
// order given.
func findNth(items []*Instance, ordinal int, keyword string) (*Instance, bool) {
	if keyword == "" || ordinal < 1 {
		return nil, false
	}
	seen := 0
	for _, inst := range items {
		if !inst.MatchesKeyword(keyword) {
			continue
		}
		seen++
		if seen == ordinal {
			return inst, true
		}
	}
	return nil, false
}

// FindItem resolves a player query like "sword" or "2.sword" against the
// character's pack, in insertion order.
func (m *InventoryManager) FindItem(characterID, query string) (*Instance, bool) {
	ord, kw := ParseKeyword(query)
	return findNth(m.reg.CarriedItems(characterID), ord, kw)
}

// FindEquippedItem resolves a query against the character's equipped items,
// in slot order.
func (m *InventoryManager) FindEquippedItem(characterID, query string) (*Instance, Slot, bool) {
	ord, kw := ParseKeyword(query)
	if kw == "" || ord < 1 {
		return nil, "", false
	}
	seen := 0
	for _, entry := range m.reg.EquippedItems(characterID) {
		if !entry.Item.MatchesKeyword(kw) {
			continue
		}
		seen++
		if seen == ord {
			return entry.Item, entry.Slot, true
		}
	}
	return nil, "", false
}

// FindItemInRoom resolves a query against a room's floor, in insertion
// order.
func (m *InventoryManager) FindItemInRoom(roomID, query string) (*Instance, bool) {
	ord, kw := ParseKeyword(query)
	return findNth(m.reg.RoomItems(roomID), ord, kw)
}

// FindItemInContainer resolves a query against a container's contents, in
// insertion order.
func (m *InventoryManager) FindItemInContainer(cont *Instance, query string) (*Instance, bool) {
	ord, kw := ParseKeyword(query)
	return findNth(cont.Contents(), ord, kw)
}
