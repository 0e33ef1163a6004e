// Package stats provides the modifier ledger and carrying-capacity tables
// that back every equipment and inventory calculation.
package stats

import (
	"fmt"
	"sync"
)

// Kind identifies a numeric effect an item can grant while worn.
type Kind string

const (
	// KindStrength through KindCharisma modify the six core attributes.
	KindStrength     Kind = "strength"
	KindDexterity    Kind = "dexterity"
	KindConstitution Kind = "constitution"
	KindIntelligence Kind = "intelligence"
	KindWisdom       Kind = "wisdom"
	KindCharisma     Kind = "charisma"
	// KindHitroll and KindDamroll modify attack and damage rolls.
	KindHitroll Kind = "hitroll"
	KindDamroll Kind = "damroll"
	// KindArmorClass modifies armor class; negative totals are meaningful.
	KindArmorClass Kind = "armor_class"
	// KindHitPoints and KindMana modify the maximum hit point and mana pools.
	KindHitPoints Kind = "hit_points"
	KindMana      Kind = "mana"
)

// validKinds is the set of recognised modifier kinds.
var validKinds = map[Kind]bool{
	KindStrength: true, KindDexterity: true, KindConstitution: true,
	KindIntelligence: true, KindWisdom: true, KindCharisma: true,
	KindHitroll: true, KindDamroll: true, KindArmorClass: true,
	KindHitPoints: true, KindMana: true,
}

// attributeKinds is the subset of kinds whose effective totals are clamped
// to a minimum of 1 when read.
var attributeKinds = map[Kind]bool{
	KindStrength: true, KindDexterity: true, KindConstitution: true,
	KindIntelligence: true, KindWisdom: true, KindCharisma: true,
}

// IsAttribute reports whether k is one of the six core attributes.
func (k Kind) IsAttribute() bool {
	return attributeKinds[k]
}

// ParseKind validates a modifier kind string loaded from content data.
//
// Postcondition: Returns a valid Kind or a descriptive error.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !validKinds[k] {
		return "", fmt.Errorf("stats: unknown modifier kind %q", s)
	}
	return k, nil
}

// Modifier is a single (kind, magnitude) effect pair on an item template.
type Modifier struct {
	Kind  Kind
	Value int
}

// Ledger tracks the running total of every modifier kind currently granted
// to one character by equipped items.
//
// Totals are stored raw (unclamped, possibly negative); attribute clamping
// is applied by readers so that Apply followed by Reverse always restores
// every entry to its exact prior value.
type Ledger struct {
	totals map[Kind]int
}

// NewLedger returns an empty Ledger.
//
// Postcondition: Total returns 0 for every kind.
func NewLedger() *Ledger {
	return &Ledger{totals: make(map[Kind]int)}
}

// Apply adds every modifier pair to the running totals.
//
// Precondition: mods come from a single template and Apply is called exactly
// once per equip of that template.
func (l *Ledger) Apply(mods []Modifier) {
	for _, m := range mods {
		l.totals[m.Kind] += m.Value
	}
}

// Reverse subtracts every modifier pair from the running totals.
//
// Precondition: the same mods were previously passed to Apply.
// Postcondition: Apply followed by Reverse leaves every total unchanged.
func (l *Ledger) Reverse(mods []Modifier) {
	for _, m := range mods {
		l.totals[m.Kind] -= m.Value
		if l.totals[m.Kind] == 0 {
			delete(l.totals, m.Kind)
		}
	}
}

// Total returns the raw running total for the given kind.
func (l *Ledger) Total(k Kind) int {
	return l.totals[k]
}

// Totals returns a snapshot copy of all non-zero totals.
//
// Postcondition: mutations of the returned map do not affect the ledger.
func (l *Ledger) Totals() map[Kind]int {
	out := make(map[Kind]int, len(l.totals))
	for k, v := range l.totals {
		out[k] = v
	}
	return out
}

// Restore overwrites the ledger with previously persisted totals.
//
// Precondition: totals were produced by Totals on an equivalent ledger.
func (l *Ledger) Restore(totals map[Kind]int) {
	l.totals = make(map[Kind]int, len(totals))
	for k, v := range totals {
		if v != 0 {
			l.totals[k] = v
		}
	}
}

// LedgerSet holds one Ledger per character, keyed by character ID.
// It is safe for concurrent use by operations on different characters.
type LedgerSet struct {
	mu      sync.Mutex
	ledgers map[string]*Ledger
}

// NewLedgerSet returns an empty LedgerSet.
func NewLedgerSet() *LedgerSet {
	return &LedgerSet{ledgers: make(map[string]*Ledger)}
}

// Ledger returns the ledger for the given character, creating it on first use.
//
// Precondition: characterID is non-empty.
func (s *LedgerSet) Ledger(characterID string) *Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.ledgers[characterID]
	if !ok {
		l = NewLedger()
		s.ledgers[characterID] = l
	}
	return l
}
