package capability

import (
	"fmt"
	"strings"
	"sync"
)

// Catalog holds the capabilities available for one run, in the order the
// server listed them. Lookup is by name; iteration order is stable.
type Catalog struct {
	mu      sync.RWMutex
	ordered []Descriptor
	index   map[string]int
}

// NewCatalog builds a catalog from an ordered descriptor list. A later
// descriptor with a duplicate name does not displace an earlier one.
func NewCatalog(descs []Descriptor) *Catalog {
	c := &Catalog{
		ordered: append([]Descriptor{}, descs...),
		index:   make(map[string]int, len(descs)),
	}
	for i, d := range c.ordered {
		if _, exists := c.index[d.Name]; !exists && d.Name != "" {
			c.index[d.Name] = i
		}
	}
	return c
}

// Get retrieves a descriptor by name.
func (c *Catalog) Get(name string) (Descriptor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[name]
	if !ok {
		return Descriptor{}, false
	}
	return c.ordered[i], true
}

// Has checks if a capability exists in the catalog.
func (c *Catalog) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.index[name]
	return ok
}

// List returns all descriptors in listing order.
func (c *Catalog) List() []Descriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Descriptor{}, c.ordered...)
}

// Names returns the capability names in listing order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.ordered))
	for _, d := range c.ordered {
		names = append(names, d.Name)
	}
	return names
}

// Count returns the number of capabilities in the catalog.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.ordered)
}

// Describe renders the catalog as a human-readable block for prompt
// injection, one capability per line:
//
//	1. add(a: integer, b: integer) - Add two numbers
//	2. ping() - no parameters
//
// A missing name or description gets placeholder text, and an entry whose
// schema could not be read becomes an error line; a single bad capability
// never aborts the whole listing.
func (c *Catalog) Describe() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	lines := make([]string, 0, len(c.ordered))
	for i, d := range c.ordered {
		if d.SchemaErr != nil {
			lines = append(lines, fmt.Sprintf("%d. Error processing capability", i+1))
			continue
		}

		name := d.Name
		if name == "" {
			name = fmt.Sprintf("capability_%d", i)
		}
		desc := d.Description
		if desc == "" {
			desc = "No description available"
		}

		if len(d.Params) == 0 {
			lines = append(lines, fmt.Sprintf("%d. %s() - no parameters", i+1, name))
			continue
		}

		parts := make([]string, len(d.Params))
		for j, p := range d.Params {
			parts[j] = fmt.Sprintf("%s: %s", p.Name, p.Kind)
		}
		lines = append(lines, fmt.Sprintf("%d. %s(%s) - %s", i+1, name, strings.Join(parts, ", "), desc))
	}
	return strings.Join(lines, "\n")
}
