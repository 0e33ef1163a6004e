package inventory

import "fmt"

// Slot identifies one of the 18 fixed equipment positions.
type Slot string

const (
	SlotLight       Slot = "light"
	SlotFingerRight Slot = "finger_right"
	SlotFingerLeft  Slot = "finger_left"
	SlotNeck1       Slot = "neck_1"
	SlotNeck2       Slot = "neck_2"
	SlotBody        Slot = "body"
	SlotHead        Slot = "head"
	SlotLegs        Slot = "legs"
	SlotFeet        Slot = "feet"
	SlotHands       Slot = "hands"
	SlotArms        Slot = "arms"
	SlotShield      Slot = "shield"
	SlotAbout       Slot = "about"
	SlotWaist       Slot = "waist"
	SlotWristRight  Slot = "wrist_right"
	SlotWristLeft   Slot = "wrist_left"
	SlotWield       Slot = "wield"
	SlotHold        Slot = "hold"
)

// SlotOrder lists all equipment slots in display order. The paired finger,
// neck, and wrist positions are independent slots, not one slot with count 2.
var SlotOrder = []Slot{
	SlotLight,
	SlotFingerRight, SlotFingerLeft,
	SlotNeck1, SlotNeck2,
	SlotBody, SlotHead, SlotLegs, SlotFeet,
	SlotHands, SlotArms,
	SlotShield, SlotAbout, SlotWaist,
	SlotWristRight, SlotWristLeft,
	SlotWield, SlotHold,
}

// slotDisplayNames maps every slot to its human-readable wear location.
var slotDisplayNames = map[Slot]string{
	SlotLight:       "as a light",
	SlotFingerRight: "on your right finger",
	SlotFingerLeft:  "on your left finger",
	SlotNeck1:       "around your neck",
	SlotNeck2:       "around your neck",
	SlotBody:        "on your body",
	SlotHead:        "on your head",
	SlotLegs:        "on your legs",
	SlotFeet:        "on your feet",
	SlotHands:       "on your hands",
	SlotArms:        "on your arms",
	SlotShield:      "as a shield",
	SlotAbout:       "about your body",
	SlotWaist:       "around your waist",
	SlotWristRight:  "around your right wrist",
	SlotWristLeft:   "around your left wrist",
	SlotWield:       "wielded",
	SlotHold:        "held",
}

// DisplayName returns the human-readable wear location for the slot.
//
// Postcondition: returns the registered label, or the slot id itself if not found.
func (s Slot) DisplayName() string {
	if label, ok := slotDisplayNames[s]; ok {
		return label
	}
	return string(s)
}

// WearFlag is the slot-compatibility bitset on an item template.
type WearFlag uint32

const (
	// WearTake marks an item that can be picked up at all.
	WearTake WearFlag = 1 << iota
	WearFinger
	WearNeck
	WearBody
	WearHead
	WearLegs
	WearFeet
	WearHands
	WearArms
	WearShield
	WearAbout
	WearWaist
	WearWrist
	WearWield
	WearHold
	WearLight
	// WearTwoHanded marks a weapon that needs both the wield and shield
	// positions free.
	WearTwoHanded
)

// wearFlagNames maps content-data flag names to bits.
var wearFlagNames = map[string]WearFlag{
	"take":       WearTake,
	"finger":     WearFinger,
	"neck":       WearNeck,
	"body":       WearBody,
	"head":       WearHead,
	"legs":       WearLegs,
	"feet":       WearFeet,
	"hands":      WearHands,
	"arms":       WearArms,
	"shield":     WearShield,
	"about":      WearAbout,
	"waist":      WearWaist,
	"wrist":      WearWrist,
	"wield":      WearWield,
	"hold":       WearHold,
	"light":      WearLight,
	"two_handed": WearTwoHanded,
}

// ParseWearFlag converts a content-data flag name to its bit.
//
// Postcondition: Returns a single-bit WearFlag or a descriptive error.
func ParseWearFlag(name string) (WearFlag, error) {
	f, ok := wearFlagNames[name]
	if !ok {
		return 0, fmt.Errorf("inventory: unknown wear flag %q", name)
	}
	return f, nil
}

// slotFlags maps each equipment slot to the wear bit that admits it.
// The paired finger/neck/wrist slots share one bit; the caller chooses
// which of the pair to attempt.
var slotFlags = map[Slot]WearFlag{
	SlotLight:       WearLight,
	SlotFingerRight: WearFinger,
	SlotFingerLeft:  WearFinger,
	SlotNeck1:       WearNeck,
	SlotNeck2:       WearNeck,
	SlotBody:        WearBody,
	SlotHead:        WearHead,
	SlotLegs:        WearLegs,
	SlotFeet:        WearFeet,
	SlotHands:       WearHands,
	SlotArms:        WearArms,
	SlotShield:      WearShield,
	SlotAbout:       WearAbout,
	SlotWaist:       WearWaist,
	SlotWristRight:  WearWrist,
	SlotWristLeft:   WearWrist,
	SlotWield:       WearWield,
	SlotHold:        WearHold,
}

// CanOccupy reports whether a template may occupy the given equipment slot.
// Pure: no character context, no side effects.
//
// Weapons are wieldable only in the wield slot; no other category may
// occupy it. All other positions are admitted solely by the template's
// wear bitset.
func CanOccupy(t *Template, slot Slot) bool {
	flag, ok := slotFlags[slot]
	if !ok {
		return false
	}
	if !t.HasWear(flag) {
		return false
	}
	if slot == SlotWield {
		return t.Category == CategoryWeapon
	}
	if t.Category == CategoryWeapon {
		// A weapon's only equipment position is the wield slot.
		return false
	}
	return true
}

// CanContain reports whether a candidate template fits into a container
// template given the container's current content weight. Pure.
//
// Postcondition: false when container is not a container category, or when
// the candidate's weight exceeds the remaining free capacity.
func CanContain(container, candidate *Template, usedCapacity int) bool {
	if container.Category != CategoryContainer || container.Container == nil {
		return false
	}
	return candidate.Weight <= container.Container.Capacity-usedCapacity
}
