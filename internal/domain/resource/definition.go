package resource

import (
	"fmt"
	"strings"
)

// Definition describes one served resource: its URL segment, the fields a
// record must carry, and the fields the substring filter searches.
type Definition struct {
	// Name is the URL segment and the collection key, e.g. "items".
	Name string `json:"name" mapstructure:"name"`
	// Title is the human-readable singular used in CLI output and API docs.
	Title string `json:"title" mapstructure:"title"`
	// Required fields must be present and non-blank on create and may not
	// be blanked by an update merge.
	Required []string `json:"required,omitempty" mapstructure:"required"`
	// TextFields are searched by the case-insensitive substring filter.
	// Empty means every string-valued field is searched.
	TextFields []string `json:"text_fields,omitempty" mapstructure:"text_fields"`
}

// Validate rejects definitions that cannot be routed or filtered.
func (d Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("resource definition: name is required")
	}
	for _, r := range d.Name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' && r != '_' {
			return fmt.Errorf("resource definition %q: name must be lowercase [a-z0-9_-]", d.Name)
		}
	}
	return nil
}

// Defaults returns the built-in resource set served when no configuration
// overrides it: the inventory/notes/tasks archetypes.
func Defaults() []Definition {
	return []Definition{
		{
			Name:       "items",
			Title:      "Item",
			Required:   []string{"name"},
			TextFields: []string{"name", "description"},
		},
		{
			Name:       "notes",
			Title:      "Note",
			Required:   []string{"title"},
			TextFields: []string{"title", "body"},
		},
		{
			Name:       "tasks",
			Title:      "Task",
			Required:   []string{"title"},
			TextFields: []string{"title"},
		},
	}
}

// Registry is the ordered set of resource definitions a server exposes.
type Registry struct {
	defs  []Definition
	index map[string]int
}

// NewRegistry builds a registry from the given definitions. Order is
// preserved; duplicate or invalid names are rejected.
func NewRegistry(defs []Definition) (*Registry, error) {
	r := &Registry{index: make(map[string]int, len(defs))}
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if def.Title == "" {
			def.Title = defaultTitle(def.Name)
		}
		if _, dup := r.index[def.Name]; dup {
			return nil, fmt.Errorf("resource definition %q: duplicate name", def.Name)
		}
		r.index[def.Name] = len(r.defs)
		r.defs = append(r.defs, def)
	}
	return r, nil
}

// Lookup returns the definition for name, or ErrUnknownResource.
func (r *Registry) Lookup(name string) (Definition, error) {
	i, ok := r.index[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %s", ErrUnknownResource, name)
	}
	return r.defs[i], nil
}

// All returns the definitions in registration order.
func (r *Registry) All() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// defaultTitle derives a display title from a resource name: "items" gives "Item".
func defaultTitle(name string) string {
	name = strings.TrimSuffix(name, "s")
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
