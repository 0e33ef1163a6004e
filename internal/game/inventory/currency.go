package inventory

import "fmt"

// FormatGold renders a coin amount as player-facing text.
//
// Precondition: amount >= 0.
func FormatGold(amount int) string {
	if amount == 1 {
		return "1 gold coin"
	}
	return fmt.Sprintf("%d gold coins", amount)
}

// PileName returns the room-floor description for a currency pile of the
// given amount. Larger amounts get larger piles so the floor text hints at
// the value without revealing it.
func PileName(amount int) string {
	switch {
	case amount <= 1:
		return "a gold coin"
	case amount <= 9:
		return "a tiny pile of gold coins"
	case amount <= 99:
		return "a small pile of gold coins"
	case amount <= 999:
		return "a pile of gold coins"
	case amount <= 9999:
		return "a large heap of gold coins"
	default:
		return "a mountain of gold coins"
	}
}
