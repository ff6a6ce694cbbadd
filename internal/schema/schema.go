package schema

import (
	"fmt"
	"go/token"
	"os"
	"slices"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Schema describes one aggregate: its component stores, the disjoint borrow
// views it can be split into, and the entity bundles inserted into it.
type Schema struct {
	Package  string      `yaml:"package"`
	Imports  []string    `yaml:"imports"`
	World    WorldDef    `yaml:"world"`
	Entities []EntityDef `yaml:"entities"`
}

type WorldDef struct {
	Name     string     `yaml:"name"`
	Capacity int        `yaml:"capacity"`
	Borrows  []string   `yaml:"borrows"`
	Stores   []StoreDef `yaml:"stores"`
}

// StoreDef is one component store. NotIn lists the borrow views that leave
// this store out; splitting into such a view hands the store back separately.
type StoreDef struct {
	Name  string   `yaml:"name"`
	Type  string   `yaml:"type"`
	NotIn []string `yaml:"not_in"`
}

// EntityDef is a bundle of components. Fields name stores of the world;
// Borrow lists the views the bundle can also be borrowed from.
type EntityDef struct {
	Name   string   `yaml:"name"`
	Fields []string `yaml:"fields"`
	Borrow []string `yaml:"borrow"`
}

// Load reads and validates a schema file.
func Load(path string) (*Schema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read schema %s", path)
	}
	s, err := Parse(raw)
	if err != nil {
		return nil, eris.Wrapf(err, "schema %s", path)
	}
	return s, nil
}

func Parse(raw []byte) (*Schema, error) {
	s := &Schema{}
	if err := yaml.Unmarshal(raw, s); err != nil {
		return nil, eris.Wrap(err, "parse schema")
	}
	if s.World.Capacity <= 0 {
		s.World.Capacity = 64
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks names are Go identifiers, references resolve, every borrow
// view leaves out at least one store, and every entity borrow view keeps all
// of that entity's stores.
func (s *Schema) Validate() error {
	if !token.IsIdentifier(s.Package) {
		return eris.Errorf("package %q is not an identifier", s.Package)
	}
	if !token.IsIdentifier(s.World.Name) {
		return eris.Errorf("world name %q is not an identifier", s.World.Name)
	}
	if len(s.World.Stores) == 0 {
		return eris.New("world declares no stores")
	}

	seen := make(map[string]bool)
	for _, b := range s.World.Borrows {
		if !token.IsIdentifier(b) {
			return eris.Errorf("borrow %q is not an identifier", b)
		}
		if seen[b] {
			return eris.Errorf("borrow %q declared twice", b)
		}
		seen[b] = true
	}

	stores := make(map[string]bool)
	for _, st := range s.World.Stores {
		if !token.IsIdentifier(st.Name) {
			return eris.Errorf("store %q is not an identifier", st.Name)
		}
		if stores[st.Name] {
			return eris.Errorf("store %q declared twice", st.Name)
		}
		stores[st.Name] = true
		if st.Type == "" {
			return eris.Errorf("store %q has no type", st.Name)
		}
		for _, b := range st.NotIn {
			if !seen[b] {
				return eris.Errorf("store %q is not_in undeclared borrow %q", st.Name, b)
			}
		}
	}
	for _, b := range s.World.Borrows {
		if len(s.Excluded(b)) == 0 {
			return eris.Errorf("borrow %q leaves out no store", b)
		}
	}

	entities := make(map[string]bool)
	for _, e := range s.Entities {
		if !token.IsIdentifier(e.Name) {
			return eris.Errorf("entity %q is not an identifier", e.Name)
		}
		if entities[e.Name] {
			return eris.Errorf("entity %q declared twice", e.Name)
		}
		entities[e.Name] = true
		if len(e.Fields) == 0 {
			return eris.Errorf("entity %q has no fields", e.Name)
		}
		for _, f := range e.Fields {
			if !stores[f] {
				return eris.Errorf("entity %q field %q is not a store", e.Name, f)
			}
		}
		for _, b := range e.Borrow {
			if !seen[b] {
				return eris.Errorf("entity %q borrows from undeclared %q", e.Name, b)
			}
			for _, f := range e.Fields {
				if st, _ := s.Store(f); slices.Contains(st.NotIn, b) {
					return eris.Errorf("entity %q field %q is not in borrow %q", e.Name, f, b)
				}
			}
		}
	}
	return s.checkDeclarations()
}

// checkDeclarations rejects schemas whose generated package-level names
// collide: the world, its constructor, borrow views, entity bundles and their
// Borrow types and functions all share one namespace.
func (s *Schema) checkDeclarations() error {
	owner := make(map[string]string)
	declare := func(name, what string) error {
		if prev, dup := owner[name]; dup {
			return eris.Errorf("%s and %s both declare %s", prev, what, name)
		}
		owner[name] = what
		return nil
	}

	w := s.World.Name
	decls := [][2]string{
		{w, fmt.Sprintf("world %q", w)},
		{"New" + w, fmt.Sprintf("world %q", w)},
	}
	for _, b := range s.World.Borrows {
		decls = append(decls, [2]string{b, fmt.Sprintf("borrow %q", b)})
	}
	for _, e := range s.Entities {
		what := fmt.Sprintf("entity %q", e.Name)
		decls = append(decls,
			[2]string{e.Name, what},
			[2]string{e.Name + "Borrow", what},
			[2]string{"Borrow" + e.Name, what},
			[2]string{"MustBorrow" + e.Name, what},
		)
		for _, b := range e.Borrow {
			decls = append(decls,
				[2]string{"Borrow" + e.Name + "From" + b, what},
				[2]string{"MustBorrow" + e.Name + "From" + b, what},
			)
		}
	}
	for _, d := range decls {
		if err := declare(d[0], d[1]); err != nil {
			return err
		}
	}
	return nil
}

// Store looks up a store by name.
func (s *Schema) Store(name string) (StoreDef, bool) {
	for _, st := range s.World.Stores {
		if st.Name == name {
			return st, true
		}
	}
	return StoreDef{}, false
}

// Excluded returns the stores borrow view b leaves out, in declaration order.
func (s *Schema) Excluded(b string) []StoreDef {
	var out []StoreDef
	for _, st := range s.World.Stores {
		if slices.Contains(st.NotIn, b) {
			out = append(out, st)
		}
	}
	return out
}

// Included returns the stores borrow view b keeps, in declaration order.
func (s *Schema) Included(b string) []StoreDef {
	var out []StoreDef
	for _, st := range s.World.Stores {
		if !slices.Contains(st.NotIn, b) {
			out = append(out, st)
		}
	}
	return out
}
