// Package gear implements the shared gear checklist editor and its
// built-in template catalog.
package gear

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/pkordes/trip-planner/internal/domain"
)

//go:embed templates.yaml
var templatesYAML []byte

// Catalog is a fixed, read-only set of templates keyed by template key.
type Catalog struct {
	order     []string
	templates map[string]domain.GearTemplate
}

// ParseCatalog decodes a YAML list of templates. Keys must be unique.
func ParseCatalog(data []byte) (*Catalog, error) {
	var list []domain.GearTemplate
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("gear.ParseCatalog: %w", err)
	}
	c := &Catalog{templates: make(map[string]domain.GearTemplate, len(list))}
	for _, t := range list {
		if t.Key == "" {
			return nil, fmt.Errorf("gear.ParseCatalog: template %q has no key", t.Label)
		}
		if _, dup := c.templates[t.Key]; dup {
			return nil, fmt.Errorf("gear.ParseCatalog: duplicate template key %q", t.Key)
		}
		c.order = append(c.order, t.Key)
		c.templates[t.Key] = t
	}
	return c, nil
}

// DefaultCatalog returns the built-in templates embedded in the binary.
// It panics if the embedded file is malformed, which the tests rule out.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(templatesYAML)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns a deep copy of the template with the given key.
func (c *Catalog) Lookup(key string) (domain.GearTemplate, bool) {
	t, ok := c.templates[key]
	if !ok {
		return domain.GearTemplate{}, false
	}
	t.Categories = cloneCategories(t.Categories)
	return t, true
}

// List returns all templates in catalog order.
func (c *Catalog) List() []domain.GearTemplate {
	out := make([]domain.GearTemplate, 0, len(c.order))
	for _, k := range c.order {
		t, _ := c.Lookup(k)
		out = append(out, t)
	}
	return out
}
