package inventory

import "fmt"

// FailureReason classifies why an engine operation was rejected. All
// reasons are recoverable and reported in the Result; none are fatal.
type FailureReason int

const (
	// ReasonNone means the operation succeeded.
	ReasonNone FailureReason = iota
	// ReasonSlotIncompatible: the template cannot occupy the requested slot.
	ReasonSlotIncompatible
	// ReasonRestriction: level, class, or alignment restriction failed.
	ReasonRestriction
	// ReasonOverCapacity: weight or item-count limit would be exceeded.
	ReasonOverCapacity
	// ReasonSlotConflict: two-handed weapon and shield cannot coexist.
	ReasonSlotConflict
	// ReasonItemNotFound: the operation target is not in the expected location.
	ReasonItemNotFound
	// ReasonNotAContainer: the put/get target is not a container.
	ReasonNotAContainer
	// ReasonContainerFull: the candidate exceeds the container's free capacity.
	ReasonContainerFull
	// ReasonContainerClosed: the container must be opened first.
	ReasonContainerClosed
	// ReasonNoDrop: the item carries the no-drop restriction.
	ReasonNoDrop
	// ReasonCycle: the move would make a container contain itself.
	ReasonCycle
	// ReasonEmptySlot: unequip was requested on an empty slot.
	ReasonEmptySlot
	// ReasonInsufficientGold: the character's balance is too small.
	ReasonInsufficientGold
)

// String returns the stable identifier for the reason.
func (fr FailureReason) String() string {
	switch fr {
	case ReasonNone:
		return "none"
	case ReasonSlotIncompatible:
		return "slot_incompatible"
	case ReasonRestriction:
		return "restriction_violation"
	case ReasonOverCapacity:
		return "over_capacity"
	case ReasonSlotConflict:
		return "slot_occupied_conflict"
	case ReasonItemNotFound:
		return "item_not_found"
	case ReasonNotAContainer:
		return "not_a_container"
	case ReasonContainerFull:
		return "container_over_capacity"
	case ReasonContainerClosed:
		return "container_closed"
	case ReasonNoDrop:
		return "no_drop"
	case ReasonCycle:
		return "acyclic_violation"
	case ReasonEmptySlot:
		return "empty_slot"
	case ReasonInsufficientGold:
		return "insufficient_gold"
	default:
		return fmt.Sprintf("unknown(%d)", int(fr))
	}
}

// Result is the outcome of every public engine operation. Message is the
// player-facing text, surfaced verbatim. On success, Item and Slot identify
// the affected references for event notification, and Displaced lists items
// the operation moved back to the pack (replaced gear, auto-removed shield).
type Result struct {
	OK      bool
	Reason  FailureReason
	Message string

	Item      *Instance
	Slot      Slot
	Displaced []*Instance
}

// success builds a successful Result with a formatted message.
func success(format string, args ...any) Result {
	return Result{OK: true, Message: fmt.Sprintf(format, args...)}
}

// failure builds a rejected Result with a formatted message.
//
// Postcondition: the engine has made no state change when failure is returned.
func failure(reason FailureReason, format string, args ...any) Result {
	return Result{OK: false, Reason: reason, Message: fmt.Sprintf(format, args...)}
}
