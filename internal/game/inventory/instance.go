package inventory

import "strings"

// Instance is a concrete placed copy of a Template. Every instance is
// exclusively owned by exactly one location at all times; the Registry is
// the single authority on where it is.
type Instance struct {
	// ID is the unique instance identifier.
	ID string
	// Template is the shared immutable definition; never nil.
	Template *Template

	// Gold is the coin amount carried by a currency pile instance.
	Gold int
	// Closed is the open/closed state for closable containers.
	Closed bool

	// contents holds contained instances in insertion order. Only the
	// Registry mutates it.
	contents []*Instance
}

// Contents returns a snapshot copy of the container's contents in
// insertion order.
//
// Postcondition: mutations of the returned slice do not affect the instance.
func (i *Instance) Contents() []*Instance {
	out := make([]*Instance, len(i.contents))
	copy(out, i.contents)
	return out
}

// ContentWeight returns the recursive weight of everything inside the
// container, excluding the container's own weight.
//
// Postcondition: result >= 0.
func (i *Instance) ContentWeight() int {
	total := 0
	for _, in := range i.contents {
		total += in.TotalWeight()
	}
	return total
}

// TotalWeight returns the instance's own weight plus, recursively, the
// weight of its contents. A container's own weight counts once and its
// contents count once; nesting recurses to arbitrary depth.
func (i *Instance) TotalWeight() int {
	return i.Template.Weight + i.ContentWeight()
}

// MatchesKeyword reports whether the keyword matches the instance's name or
// one of its aliases. Matching is case-insensitive substring-or-prefix.
//
// Precondition: keyword is non-empty.
func (i *Instance) MatchesKeyword(keyword string) bool {
	kw := strings.ToLower(keyword)
	if strings.Contains(strings.ToLower(i.Template.Name), kw) {
		return true
	}
	for _, a := range i.Template.Aliases {
		if strings.Contains(strings.ToLower(a), kw) {
			return true
		}
	}
	return false
}
