package model

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Hooks are named extension points invoked at fixed stages of the
// construction, load, and dump pipelines. Nil entries are no-ops. Hooks run
// synchronously in-line; a panic inside one propagates through the triggering
// call unchanged.
type Hooks struct {
	// PostInit runs at the end of instance construction, before any seeding.
	PostInit func(m *Model)
	// PreLoad may rewrite the incoming map before field matching; it must
	// return the map to ingest (the input itself when no rewrite is needed).
	PreLoad func(m *Model, data map[string]any) map[string]any
	// PostLoad runs after every entry of a load has been processed.
	PostLoad func(m *Model)
	// PreDump runs before a dump walks the resolved field list.
	PreDump func(m *Model, raw bool)
	// PostDump may mutate the produced map before Dump returns it.
	PostDump func(m *Model, raw bool, dump map[string]any)
	// TransformFields runs exactly once per schema, right after field
	// resolution, and may adjust the resolved fields (for example hiding an
	// inherited field).
	TransformFields func(s *Schema)
}

// initMu guards first-time schema resolution process-wide. Resolution runs at
// most once per schema ever, so a single mutex for all schemas is enough.
var initMu sync.Mutex

// Schema is the class-level declaration of a model: an ordered field set, an
// optional parent schema, and hooks. The effective field list (own
// declarations first, then independent copies of inherited fields not
// shadowed by name) is resolved once, on first instance construction, and is
// treated as immutable afterwards.
type Schema struct {
	name     string
	parent   *Schema
	declared []*Field
	hooks    Hooks

	initialized atomic.Bool
	resolved    []*Field
}

// NewSchema declares a root schema with its own fields in declaration order.
func NewSchema(name string, fields ...*Field) *Schema {
	return &Schema{name: name, declared: fields}
}

// Extend declares a subschema. Its own fields come first; fields declared on
// ancestors are copied independently during resolution, so sibling
// subschemas of a common ancestor never share a field's mutable chain or
// storage configuration.
func (s *Schema) Extend(name string, fields ...*Field) *Schema {
	return &Schema{name: name, parent: s, declared: fields}
}

// WithHooks attaches hooks to the schema. Call it before the first instance
// is constructed; hooks attached later miss resolution-time callbacks.
func (s *Schema) WithHooks(h Hooks) *Schema {
	s.hooks = h
	return s
}

// Name returns the schema's name.
func (s *Schema) Name() string { return s.name }

// Field returns the resolved field matching name (public or mapping name), or
// nil. The resolved list exists once the first instance has been constructed;
// inside a TransformFields hook it is already available.
func (s *Schema) Field(name string) *Field {
	for _, f := range s.resolved {
		if f.Match(name) {
			return f
		}
	}
	return nil
}

// Fields returns the resolved field list in declaration order.
func (s *Schema) Fields() []*Field { return s.resolved }

// resolve builds the effective field list exactly once. The initialized flag
// is checked twice: once without the lock as the fast path, and again after
// acquiring it, since another goroutine may have finished resolution between
// the first check and the lock.
func (s *Schema) resolve() {
	if s.initialized.Load() {
		return
	}
	initMu.Lock()
	defer initMu.Unlock()
	s.resolveLocked()
}

func (s *Schema) resolveLocked() {
	if s.initialized.Load() {
		return
	}
	if s.parent != nil {
		s.parent.resolveLocked()
	}

	fields := make([]*Field, 0, len(s.declared))
	for _, f := range s.declared {
		f.bindName(f.name)
		fields = append(fields, f)
	}
	if s.parent != nil {
		for _, inherited := range s.parent.resolved {
			if fieldListMatch(fields, inherited.name) {
				continue
			}
			copied := inherited.Clone()
			copied.bindName(copied.name)
			fields = append(fields, copied)
		}
	}
	s.resolved = fields

	if s.hooks.TransformFields != nil {
		s.hooks.TransformFields(s)
	}
	s.initialized.Store(true)
}

func fieldListMatch(fields []*Field, name string) bool {
	for _, f := range fields {
		if f.Match(name) {
			return true
		}
	}
	return false
}

// newModel constructs an instance, triggering one-time resolution.
func (s *Schema) newModel(parent *Model) *Model {
	s.resolve()
	m := &Model{schema: s, parent: parent, values: make(map[string]any)}
	if s.hooks.PostInit != nil {
		s.hooks.PostInit(m)
	}
	return m
}

// New constructs an empty instance of the schema.
func (s *Schema) New() *Model {
	return s.newModel(nil)
}

// NewFrom constructs an instance seeded from another model, a key-value map,
// or a JSON byte payload.
func (s *Schema) NewFrom(data any) (*Model, error) {
	m := s.newModel(nil)
	if err := m.loadAny(data); err != nil {
		return nil, err
	}
	return m, nil
}

// Instantiate satisfies Instantiator: a nested-model field materializes a
// child instance with the owning instance as parent.
func (s *Schema) Instantiate(parent *Model) any {
	return s.newModel(parent)
}

// InstantiateElement satisfies ElementInstantiator: list-of-model fields
// construct a child instance per element and load the raw element data into
// it.
func (s *Schema) InstantiateElement(data any, parent *Model) (any, error) {
	child := s.newModel(parent)
	if data == nil {
		return child, nil
	}
	if err := child.loadAny(data); err != nil {
		return nil, fmt.Errorf("model: schema %q element: %w", s.name, err)
	}
	return child, nil
}
