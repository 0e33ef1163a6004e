// Package inventory implements the equipment and inventory engine: the item
// catalog, the location registry that owns every item instance, slot and
// container validation, and the equip/carry operation managers.
package inventory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ltroylove/CrimsionMud3-sub001/internal/game/character"
	"github.com/ltroylove/CrimsionMud3-sub001/internal/game/dice"
	"github.com/ltroylove/CrimsionMud3-sub001/internal/game/stats"
)

// Category constants for Template.Category.
const (
	CategoryWeapon     = "weapon"
	CategoryArmor      = "armor"
	CategoryWorn       = "worn"
	CategoryContainer  = "container"
	CategoryConsumable = "consumable"
	CategoryCurrency   = "currency"
	CategoryMisc       = "misc"
)

// validCategories is the set of valid Template categories.
var validCategories = map[string]bool{
	CategoryWeapon:     true,
	CategoryArmor:      true,
	CategoryWorn:       true,
	CategoryContainer:  true,
	CategoryConsumable: true,
	CategoryCurrency:   true,
	CategoryMisc:       true,
}

// WeaponInfo is the weapon-specific payload of a Template.
type WeaponInfo struct {
	// Damage is the parsed damage dice expression, e.g. 2d6+1.
	Damage dice.Expression
	// HitBonus is the flat to-hit bonus granted while wielded.
	HitBonus int
}

// ContainerInfo is the container-specific payload of a Template.
type ContainerInfo struct {
	// Capacity is the total content weight the container can hold.
	Capacity int
	// Closable indicates the container can be opened and closed.
	Closable bool
	// StartsClosed indicates new instances spawn in the closed state.
	StartsClosed bool
}

// Restrictions limit who may use an item and how it may be moved.
type Restrictions struct {
	// MinLevel is the minimum character level required; 0 means none.
	MinLevel int
	// Classes lists class IDs forbidden from using the item.
	Classes []string
	// Alignments lists alignments forbidden from using the item.
	Alignments []character.Alignment
	// NoDrop marks items that cannot be dropped into a room.
	NoDrop bool
}

// ForbidsClass reports whether the given class ID is forbidden.
func (r Restrictions) ForbidsClass(class string) bool {
	for _, c := range r.Classes {
		if strings.EqualFold(c, class) {
			return true
		}
	}
	return false
}

// ForbidsAlignment reports whether the given alignment is forbidden.
func (r Restrictions) ForbidsAlignment(a character.Alignment) bool {
	for _, fa := range r.Alignments {
		if fa == a {
			return true
		}
	}
	return false
}

// Template defines the immutable shared properties of an item kind.
// Templates are created once at world-data load time and never mutated;
// all instances of a kind share one Template by reference.
type Template struct {
	ID      string
	Name    string
	Aliases []string

	Category string
	Weight   int
	Wear     WearFlag

	Modifiers []stats.Modifier
	Restrict  Restrictions

	// Category-specific payloads; nil/zero when not applicable.
	Weapon     *WeaponInfo
	ArmorBonus int
	Container  *ContainerInfo
	Charges    int
}

// HasWear reports whether every bit in f is set on the template.
func (t *Template) HasWear(f WearFlag) bool {
	return t.Wear&f == f
}

// TwoHanded reports whether the template is a flagged two-handed weapon.
func (t *Template) TwoHanded() bool {
	return t.Category == CategoryWeapon && t.HasWear(WearTwoHanded)
}

// Validate checks that the Template satisfies its invariants.
//
// Precondition: t is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (t *Template) Validate() error {
	var errs []error
	if t.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if t.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if !validCategories[t.Category] {
		errs = append(errs, fmt.Errorf("Category must be one of weapon, armor, worn, container, consumable, currency, misc; got %q", t.Category))
	}
	if t.Weight < 0 {
		errs = append(errs, errors.New("Weight must be >= 0"))
	}
	if t.Category == CategoryWeapon {
		if t.Weapon == nil {
			errs = append(errs, errors.New("weapon payload is required when Category is weapon"))
		}
		if !t.HasWear(WearWield) {
			errs = append(errs, errors.New("weapons must carry the wield wear flag"))
		}
	}
	if t.Category == CategoryContainer {
		if t.Container == nil {
			errs = append(errs, errors.New("container payload is required when Category is container"))
		} else if t.Container.Capacity <= 0 {
			errs = append(errs, errors.New("container capacity must be > 0"))
		}
	}
	if t.Category != CategoryWeapon && t.HasWear(WearTwoHanded) {
		errs = append(errs, errors.New("only weapons may carry the two_handed flag"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item template validation failed: %v", errs)
	}
	return nil
}

// templateYAML is the on-disk document shape for a Template.
type templateYAML struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Aliases   []string `yaml:"aliases"`
	Category  string   `yaml:"category"`
	Weight    int      `yaml:"weight"`
	Wear      []string `yaml:"wear"`
	Modifiers []struct {
		Kind  string `yaml:"kind"`
		Value int    `yaml:"value"`
	} `yaml:"modifiers"`
	Restrict struct {
		MinLevel   int      `yaml:"min_level"`
		Classes    []string `yaml:"forbidden_classes"`
		Alignments []string `yaml:"forbidden_alignments"`
		NoDrop     bool     `yaml:"no_drop"`
	} `yaml:"restrictions"`
	Weapon *struct {
		Damage   string `yaml:"damage"`
		HitBonus int    `yaml:"hit_bonus"`
	} `yaml:"weapon"`
	ArmorBonus int `yaml:"armor_bonus"`
	Container  *struct {
		Capacity     int  `yaml:"capacity"`
		Closable     bool `yaml:"closable"`
		StartsClosed bool `yaml:"starts_closed"`
	} `yaml:"container"`
	Charges int `yaml:"charges"`
}

// toTemplate converts the YAML document into a validated Template.
func (d templateYAML) toTemplate() (*Template, error) {
	t := &Template{
		ID:         d.ID,
		Name:       d.Name,
		Aliases:    d.Aliases,
		Category:   d.Category,
		Weight:     d.Weight,
		ArmorBonus: d.ArmorBonus,
		Charges:    d.Charges,
	}

	for _, w := range d.Wear {
		f, err := ParseWearFlag(w)
		if err != nil {
			return nil, err
		}
		t.Wear |= f
	}

	for _, m := range d.Modifiers {
		kind, err := stats.ParseKind(m.Kind)
		if err != nil {
			return nil, err
		}
		t.Modifiers = append(t.Modifiers, stats.Modifier{Kind: kind, Value: m.Value})
	}

	t.Restrict.MinLevel = d.Restrict.MinLevel
	t.Restrict.Classes = d.Restrict.Classes
	t.Restrict.NoDrop = d.Restrict.NoDrop
	for _, a := range d.Restrict.Alignments {
		switch character.Alignment(a) {
		case character.AlignmentGood, character.AlignmentNeutral, character.AlignmentEvil:
			t.Restrict.Alignments = append(t.Restrict.Alignments, character.Alignment(a))
		default:
			return nil, fmt.Errorf("unknown alignment %q", a)
		}
	}

	if d.Weapon != nil {
		expr, err := dice.Parse(d.Weapon.Damage)
		if err != nil {
			return nil, fmt.Errorf("weapon damage: %w", err)
		}
		t.Weapon = &WeaponInfo{Damage: expr, HitBonus: d.Weapon.HitBonus}
	}
	if d.Container != nil {
		t.Container = &ContainerInfo{
			Capacity:     d.Container.Capacity,
			Closable:     d.Container.Closable,
			StartsClosed: d.Container.StartsClosed,
		}
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadTemplates reads all *.yaml and *.yml files from dir, parses each as a
// Template, validates it, and returns the collected slice.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid Templates or the first encountered error.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadTemplates: cannot read directory %q: %w", dir, err)
	}

	var templates []*Template
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadTemplates: cannot read file %q: %w", path, err)
		}
		var d templateYAML
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("LoadTemplates: cannot parse file %q: %w", path, err)
		}
		t, err := d.toTemplate()
		if err != nil {
			return nil, fmt.Errorf("LoadTemplates: invalid template in %q: %w", path, err)
		}
		templates = append(templates, t)
	}
	return templates, nil
}
