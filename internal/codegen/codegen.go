package codegen

import (
	"bytes"
	_ "embed"
	"go/format"
	"reflect"
	"slices"
	"strings"
	"text/template"

	"github.com/rotisserie/eris"

	"github.com/l1jgo/vecs/internal/core/ecs"
	"github.com/l1jgo/vecs/internal/schema"
)

const ecsImport = "github.com/l1jgo/vecs/internal/core/ecs"

//go:embed aggregate.go.tmpl
var aggregateTmpl string

var tmpl = template.Must(template.New("aggregate").Parse(aggregateTmpl))

// reserved are member names the generated aggregate already has: every
// method promoted from the embedded *ecs.World plus the ones the template adds.
var reserved = func() map[string]bool {
	names := map[string]bool{"World": true, "Insert": true}
	t := reflect.TypeOf(&ecs.World{})
	for i := range t.NumMethod() {
		names[t.Method(i).Name] = true
	}
	return names
}()

type storeView struct {
	Field string
	Type  string
}

type borrowView struct {
	Name     string
	Excluded []storeView
	Included []storeView
}

// ExcludedList names the left-out stores for doc comments.
func (b borrowView) ExcludedList() string {
	names := make([]string, len(b.Excluded))
	for i, s := range b.Excluded {
		names[i] = s.Field
	}
	return strings.Join(names, ", ")
}

// source is an aggregate an entity can be borrowed from.
type source struct {
	Suffix string
	Type   string
}

type entityView struct {
	Name    string
	Fields  []storeView
	Sources []source
}

type fileView struct {
	Source   string
	Package  string
	Imports  []string
	World    string
	Capacity int
	Stores   []storeView
	Borrows  []borrowView
	Entities []entityView
}

// Generate renders the aggregate described by s as gofmt'ed Go source.
// sourceName is recorded in the generated header.
func Generate(s *schema.Schema, sourceName string) ([]byte, error) {
	v, err := buildView(s, sourceName)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, v); err != nil {
		return nil, eris.Wrap(err, "execute template")
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, eris.Wrap(err, "format generated source")
	}
	return out, nil
}

func isSplit(s *schema.Schema, field string) bool {
	for _, b := range s.World.Borrows {
		if field == "Split"+b {
			return true
		}
	}
	return false
}

func buildView(s *schema.Schema, sourceName string) (*fileView, error) {
	v := &fileView{
		Source:   sourceName,
		Package:  s.Package,
		World:    s.World.Name,
		Capacity: s.World.Capacity,
	}

	imports := append([]string{ecsImport}, s.Imports...)
	slices.Sort(imports)
	v.Imports = slices.Compact(imports)

	fields := make(map[string]string)
	for _, st := range s.World.Stores {
		f := exportName(st.Name)
		if prev, dup := fields[f]; dup {
			return nil, eris.Errorf("stores %q and %q both become field %s", prev, st.Name, f)
		}
		if reserved[f] || isSplit(s, f) {
			return nil, eris.Errorf("store %q collides with generated member %s", st.Name, f)
		}
		fields[f] = st.Name
		v.Stores = append(v.Stores, storeView{Field: f, Type: st.Type})
	}

	toViews := func(defs []schema.StoreDef) []storeView {
		out := make([]storeView, len(defs))
		for i, d := range defs {
			out[i] = storeView{Field: exportName(d.Name), Type: d.Type}
		}
		return out
	}
	for _, b := range s.World.Borrows {
		v.Borrows = append(v.Borrows, borrowView{
			Name:     b,
			Excluded: toViews(s.Excluded(b)),
			Included: toViews(s.Included(b)),
		})
	}

	for _, e := range s.Entities {
		ev := entityView{Name: e.Name}
		for _, f := range e.Fields {
			st, _ := s.Store(f)
			ev.Fields = append(ev.Fields, storeView{Field: exportName(st.Name), Type: st.Type})
		}
		ev.Sources = append(ev.Sources, source{Type: s.World.Name})
		for _, b := range e.Borrow {
			ev.Sources = append(ev.Sources, source{Suffix: "From" + b, Type: b})
		}
		v.Entities = append(v.Entities, ev)
	}
	return v, nil
}
