// Package character defines the character sheet consumed by the equipment
// and inventory engine on every validation call. The engine does not own
// character identity; the session layer supplies a Sheet per operation.
package character

import "github.com/ltroylove/CrimsionMud3-sub001/internal/game/stats"

// Alignment is a character's moral alignment.
type Alignment string

const (
	// AlignmentGood, AlignmentNeutral, and AlignmentEvil are the three
	// alignments item restrictions can name.
	AlignmentGood    Alignment = "good"
	AlignmentNeutral Alignment = "neutral"
	AlignmentEvil    Alignment = "evil"
)

// Abilities holds the six core attribute scores.
type Abilities struct {
	Strength     int
	Dexterity    int
	Constitution int
	Intelligence int
	Wisdom       int
	Charisma     int
}

// Sheet is a character's state as seen by the engine: base attributes,
// restriction inputs, the gold balance, and the vital pools.
//
// Base values never include equipment effects; effective values are derived
// by combining the base with the character's modifier ledger.
type Sheet struct {
	ID        string
	Name      string
	Class     string
	Level     int
	Alignment Alignment

	Abilities Abilities
	Gold      int

	MaxHP       int
	CurrentHP   int
	MaxMana     int
	CurrentMana int
}

// clampAttribute floors an effective attribute score at 1.
func clampAttribute(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

// EffectiveAbilities returns the attribute scores with all equipped-item
// modifiers applied, each clamped to a minimum of 1.
//
// Precondition: led must be the ledger for this character.
// Postcondition: every returned score is >= 1.
func (s *Sheet) EffectiveAbilities(led *stats.Ledger) Abilities {
	return Abilities{
		Strength:     clampAttribute(s.Abilities.Strength + led.Total(stats.KindStrength)),
		Dexterity:    clampAttribute(s.Abilities.Dexterity + led.Total(stats.KindDexterity)),
		Constitution: clampAttribute(s.Abilities.Constitution + led.Total(stats.KindConstitution)),
		Intelligence: clampAttribute(s.Abilities.Intelligence + led.Total(stats.KindIntelligence)),
		Wisdom:       clampAttribute(s.Abilities.Wisdom + led.Total(stats.KindWisdom)),
		Charisma:     clampAttribute(s.Abilities.Charisma + led.Total(stats.KindCharisma)),
	}
}

// EffectiveMaxHP returns the hit point maximum including equipment effects.
// Negative totals may drive it below the base; it is never reported below 1.
func (s *Sheet) EffectiveMaxHP(led *stats.Ledger) int {
	max := s.MaxHP + led.Total(stats.KindHitPoints)
	if max < 1 {
		return 1
	}
	return max
}

// EffectiveMaxMana returns the mana maximum including equipment effects,
// floored at 0.
func (s *Sheet) EffectiveMaxMana(led *stats.Ledger) int {
	max := s.MaxMana + led.Total(stats.KindMana)
	if max < 0 {
		return 0
	}
	return max
}

// EffectiveArmorClass returns base armor class 100 adjusted by the ledger's
// armor_class total. Lower is better; negative ledger totals raise it.
func (s *Sheet) EffectiveArmorClass(led *stats.Ledger) int {
	return 100 - led.Total(stats.KindArmorClass)
}

// ClampVitals pulls current HP and mana down to the new effective maxima
// after an equipment change. Current HP is clamped down but never below 1:
// removing max-HP gear cannot kill the character.
//
// Precondition: led must be the ledger for this character.
func (s *Sheet) ClampVitals(led *stats.Ledger) {
	if maxHP := s.EffectiveMaxHP(led); s.CurrentHP > maxHP {
		s.CurrentHP = maxHP
	}
	if s.CurrentHP < 1 {
		s.CurrentHP = 1
	}
	if maxMana := s.EffectiveMaxMana(led); s.CurrentMana > maxMana {
		s.CurrentMana = maxMana
	}
	if s.CurrentMana < 0 {
		s.CurrentMana = 0
	}
}
