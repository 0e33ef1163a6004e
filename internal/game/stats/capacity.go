package stats

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// CapacityEntry is one breakpoint in a progression table: characters with an
// attribute score of at least Score (and below the next breakpoint) get Value.
type CapacityEntry struct {
	Score int `yaml:"score"`
	Value int `yaml:"value"`
}

// CapacityTable holds the legacy progression tables that derive carrying
// limits from attribute scores. Both tables are monotone step functions,
// total over the valid score range (1 and up).
type CapacityTable struct {
	weight []CapacityEntry // keyed by strength
	count  []CapacityEntry // keyed by dexterity
}

// NewCapacityTable builds a table from breakpoint lists.
//
// Precondition: both lists are non-empty.
// Postcondition: entries are sorted by score, cover score 1, and values are
// non-decreasing, or a descriptive error is returned.
func NewCapacityTable(weight, count []CapacityEntry) (*CapacityTable, error) {
	w, err := normalizeEntries("max_weight", weight)
	if err != nil {
		return nil, err
	}
	c, err := normalizeEntries("max_items", count)
	if err != nil {
		return nil, err
	}
	return &CapacityTable{weight: w, count: c}, nil
}

func normalizeEntries(name string, entries []CapacityEntry) ([]CapacityEntry, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("stats: %s table must not be empty", name)
	}
	out := make([]CapacityEntry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Score < out[j].Score })

	if out[0].Score > 1 {
		return nil, fmt.Errorf("stats: %s table must cover score 1, first breakpoint is %d", name, out[0].Score)
	}
	for i := 1; i < len(out); i++ {
		if out[i].Score == out[i-1].Score {
			return nil, fmt.Errorf("stats: %s table has duplicate breakpoint at score %d", name, out[i].Score)
		}
		if out[i].Value < out[i-1].Value {
			return nil, fmt.Errorf("stats: %s table is not monotone: value drops from %d to %d at score %d",
				name, out[i-1].Value, out[i].Value, out[i].Score)
		}
	}
	return out, nil
}

// lookup returns the value of the highest breakpoint with Score <= score.
// Scores below the first breakpoint take the first breakpoint's value.
func lookup(entries []CapacityEntry, score int) int {
	value := entries[0].Value
	for _, e := range entries {
		if e.Score > score {
			break
		}
		value = e.Value
	}
	return value
}

// MaxWeight returns the maximum total carried weight for a strength score.
//
// Postcondition: MaxWeight(s1) <= MaxWeight(s2) whenever s1 <= s2.
func (t *CapacityTable) MaxWeight(strength int) int {
	return lookup(t.weight, strength)
}

// MaxItemCount returns the maximum number of directly carried items for a
// dexterity score.
//
// Postcondition: MaxItemCount(d1) <= MaxItemCount(d2) whenever d1 <= d2.
func (t *CapacityTable) MaxItemCount(dexterity int) int {
	return lookup(t.count, dexterity)
}

// capacityFile is the YAML document shape for a capacity table.
type capacityFile struct {
	MaxWeight []CapacityEntry `yaml:"max_weight"`
	MaxItems  []CapacityEntry `yaml:"max_items"`
}

// LoadCapacityTable reads and validates a progression table from a YAML file.
//
// Precondition: path must be a readable YAML file.
// Postcondition: Returns a validated CapacityTable or a non-nil error.
func LoadCapacityTable(path string) (*CapacityTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("stats: cannot read capacity table %q: %w", path, err)
	}
	var f capacityFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("stats: cannot parse capacity table %q: %w", path, err)
	}
	t, err := NewCapacityTable(f.MaxWeight, f.MaxItems)
	if err != nil {
		return nil, fmt.Errorf("stats: invalid capacity table %q: %w", path, err)
	}
	return t, nil
}
