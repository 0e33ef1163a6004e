package inventory

import "fmt"

// Catalog holds all loaded item templates indexed by ID.
type Catalog struct {
	templates map[string]*Template
}

// NewCatalog returns an empty Catalog.
//
// Postcondition: the internal index is initialised.
func NewCatalog() *Catalog {
	return &Catalog{templates: make(map[string]*Template)}
}

// Register adds t to the catalog.
//
// Precondition:  t must not be nil and must have passed Validate.
// Postcondition: Template(t.ID) returns (t, true); returns error if t.ID is
// already registered.
func (c *Catalog) Register(t *Template) error {
	if _, exists := c.templates[t.ID]; exists {
		return fmt.Errorf("inventory: Catalog.Register: template ID %q already registered", t.ID)
	}
	c.templates[t.ID] = t
	return nil
}

// Template returns the Template for the given id and whether it was found.
//
// Postcondition: ok is true iff the id is registered.
func (c *Catalog) Template(id string) (*Template, bool) {
	t, ok := c.templates[id]
	return t, ok
}

// All returns all registered Templates in unspecified order.
//
// Postcondition: len(result) == number of registered templates.
func (c *Catalog) All() []*Template {
	out := make([]*Template, 0, len(c.templates))
	for _, t := range c.templates {
		out = append(out, t)
	}
	return out
}

// LoadCatalog loads every template from dir into a fresh Catalog.
//
// Precondition: dir is a readable directory of template YAML files.
// Postcondition: Returns a Catalog with all templates registered, or the
// first load/duplicate error.
func LoadCatalog(dir string) (*Catalog, error) {
	templates, err := LoadTemplates(dir)
	if err != nil {
		return nil, err
	}
	c := NewCatalog()
	for _, t := range templates {
		if err := c.Register(t); err != nil {
			return nil, err
		}
	}
	return c, nil
}
