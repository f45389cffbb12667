package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// ErrTemplateNotFound is returned by Lookup for unknown template names.
var ErrTemplateNotFound = errors.New("template not found")

// Template is one named SQL statement with the keywords that must all
// appear in a query for it to be selected.
type Template struct {
	Name     string   `json:"name"`
	SQL      string   `json:"sql"`
	Keywords []string `json:"keywords"`
}

var placeholderPattern = regexp.MustCompile(`::?[A-Za-z_][A-Za-z0-9_]*`)

// Placeholders returns the named :placeholders referenced by the template's
// SQL text, in first-appearance order. Postgres ::type casts are skipped.
func (t Template) Placeholders() []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range placeholderPattern.FindAllString(t.SQL, -1) {
		if strings.HasPrefix(m, "::") {
			continue
		}
		name := m[1:]
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// Catalog holds the template definitions in load order. It is immutable
// after New returns, so concurrent lookups need no locking.
type Catalog struct {
	templates []Template
	byName    map[string]int
}

// Load reads a catalog file (a JSON array of templates; array order is the
// resolution order) and validates it.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var templates []Template
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	return New(templates)
}

// New builds a catalog from already-parsed definitions, preserving their order.
func New(templates []Template) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]int, len(templates))}

	for i, t := range templates {
		if strings.TrimSpace(t.Name) == "" {
			return nil, fmt.Errorf("catalog entry %d has no name", i)
		}
		if strings.TrimSpace(t.SQL) == "" {
			return nil, fmt.Errorf("template %q has no sql", t.Name)
		}
		if len(t.Keywords) == 0 {
			return nil, fmt.Errorf("template %q has an empty keyword list", t.Name)
		}
		if _, dup := c.byName[t.Name]; dup {
			return nil, fmt.Errorf("duplicate template name %q", t.Name)
		}
		c.byName[t.Name] = len(c.templates)
		c.templates = append(c.templates, t)
	}

	return c, nil
}

func (c *Catalog) Lookup(name string) (Template, error) {
	i, ok := c.byName[name]
	if !ok {
		return Template{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return c.templates[i], nil
}

// Templates returns the definitions in load order. Callers must not mutate
// the returned slice.
func (c *Catalog) Templates() []Template {
	return c.templates
}

func (c *Catalog) Len() int {
	return len(c.templates)
}
