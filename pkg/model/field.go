package model

import "fmt"

// Transform rewrites a value on its way into or out of a field slot. Entries
// receive the owning instance so context-aware transforms can read or write
// sibling fields; value-only transforms simply ignore it.
type Transform func(owner *Model, value any) any

// Converter coerces an external value during load or dump. Converters are
// skipped entirely when the value is nil; an error aborts the triggering
// load or dump call.
type Converter func(value any) (any, error)

// Instantiator produces a field's materialized value when no stored value
// exists yet. Schema implements Instantiator so nested-model fields construct
// a child instance with the owner set as parent.
type Instantiator interface {
	Instantiate(parent *Model) any
}

// Factory adapts a zero-argument constructor into an Instantiator.
type Factory func() any

// Instantiate calls the factory, ignoring the parent.
func (f Factory) Instantiate(*Model) any { return f() }

// ElementInstantiator builds one list element from raw input during load.
// Schema implements ElementInstantiator so list-of-model fields construct and
// load a child instance per element.
type ElementInstantiator interface {
	InstantiateElement(data any, parent *Model) (any, error)
}

// ElementFactory adapts a plain conversion function into an
// ElementInstantiator.
type ElementFactory func(data any) (any, error)

// InstantiateElement calls the factory, ignoring the parent.
func (f ElementFactory) InstantiateElement(data any, _ *Model) (any, error) { return f(data) }

// Field declares one named attribute on a Schema: its external mapping,
// default or instantiation strategy, list semantics, converters, visibility,
// and ordered getter/setter transform chains. A Field is class-level
// configuration; per-instance values live in Model storage slots keyed by the
// field's storage key, so one Field mediates reads and writes for every
// instance of its schema without instances leaking into each other.
//
// Configuration methods return the field to allow chained declarations:
//
//	model.NewField("price").Mapping("Price").Convert(convert.ToFloat, nil)
type Field struct {
	name         string
	storageKey   string
	mappingName  string
	defaultValue any
	instantiator Instantiator
	element      ElementInstantiator
	isList       bool
	hidden       bool
	virtual      bool
	loads        Converter
	dumps        Converter
	setters      []Transform
	getters      []Transform
}

// NewField declares a field with its public name. The storage key is derived
// from the name immediately.
func NewField(name string) *Field {
	f := &Field{}
	f.bindName(name)
	return f
}

// bindName sets the public name and derives the private storage key.
func (f *Field) bindName(name string) {
	f.name = name
	if name == "" {
		f.storageKey = ""
		return
	}
	f.storageKey = "_" + name
}

// Name returns the field's public name.
func (f *Field) Name() string { return f.name }

// MappingName returns the external mapping name, empty when unset.
func (f *Field) MappingName() string { return f.mappingName }

// DumpName returns the key this field is emitted under: the mapping name for
// display dumps, the public name when raw is true or no mapping is set.
func (f *Field) DumpName(raw bool) string {
	if !raw && f.mappingName != "" {
		return f.mappingName
	}
	return f.name
}

// Hidden reports whether the field is excluded from display dumps.
func (f *Field) Hidden() bool { return f.hidden }

// IsList reports whether the field carries list semantics.
func (f *Field) IsList() bool { return f.isList }

// IsVirtual reports whether the field is storage-less.
func (f *Field) IsVirtual() bool { return f.virtual }

// Mapping sets the external name used in display dumps and matched on load.
func (f *Field) Mapping(name string) *Field {
	f.mappingName = name
	return f
}

// Default sets the static value materialized on first read when no
// instantiator is configured.
func (f *Field) Default(value any) *Field {
	f.defaultValue = value
	return f
}

// Instantiate configures the factory used to materialize the field's value on
// first read. Passing a *Schema makes this a nested-model field.
func (f *Field) Instantiate(inst Instantiator) *Field {
	f.instantiator = inst
	return f
}

// ListOf marks the field list-typed. Loaded elements are built through elem;
// a nil elem passes raw elements through unchanged. The field materializes to
// an empty list on first read.
func (f *Field) ListOf(elem ElementInstantiator) *Field {
	f.isList = true
	f.element = elem
	f.instantiator = Factory(func() any { return []any{} })
	return f
}

// Hide excludes the field from display dumps. Raw dumps always include it.
func (f *Field) Hide() *Field {
	f.hidden = true
	return f
}

// Unhide re-includes the field in display dumps.
func (f *Field) Unhide() *Field {
	f.hidden = false
	return f
}

// Convert sets the load and dump converters. A nil argument leaves the
// corresponding converter untouched.
func (f *Field) Convert(loads, dumps Converter) *Field {
	if loads != nil {
		f.loads = loads
	}
	if dumps != nil {
		f.dumps = dumps
	}
	return f
}

// Setter appends fn to the setter chain. Setters run in registration order,
// each feeding the next, between the loads converter and the storage slot.
func (f *Field) Setter(fn Transform) *Field {
	if fn != nil {
		f.setters = append(f.setters, fn)
	}
	return f
}

// ClearSetters removes every registered setter.
func (f *Field) ClearSetters() *Field {
	f.setters = nil
	return f
}

// Getter appends fn to the getter chain. The newest getter runs first, acting
// as the outermost presentation layer over the stored value.
func (f *Field) Getter(fn Transform) *Field {
	if fn != nil {
		f.getters = append(f.getters, fn)
	}
	return f
}

// ClearGetters removes every registered getter.
func (f *Field) ClearGetters() *Field {
	f.getters = nil
	return f
}

// Match reports whether name is the field's public name or mapping name.
func (f *Field) Match(name string) bool {
	if f.name == name {
		return true
	}
	return f.mappingName != "" && f.mappingName == name
}

// Clone returns an independent copy: scalar configuration is carried over and
// each chain entry re-registered, so the copy never shares chain slices or
// storage key state with the original. Schema resolution clones inherited
// fields so sibling subschemas stay isolated.
func (f *Field) Clone() *Field {
	out := &Field{
		name:         f.name,
		storageKey:   f.storageKey,
		mappingName:  f.mappingName,
		defaultValue: f.defaultValue,
		instantiator: f.instantiator,
		element:      f.element,
		isList:       f.isList,
		hidden:       f.hidden,
		virtual:      f.virtual,
		loads:        f.loads,
		dumps:        f.dumps,
	}
	for _, fn := range f.setters {
		out.Setter(fn)
	}
	for _, fn := range f.getters {
		out.Getter(fn)
	}
	return out
}

// get implements the read contract. When no stored value exists one is
// materialized and stored without running the setter chain, so a setter that
// reads its own field cannot recurse into construction. The getter chain runs
// newest-first against the stored value; the slot itself is never mutated by
// getters.
func (f *Field) get(owner *Model) any {
	if f.virtual {
		return f.applyGetters(owner, f.defaultValue)
	}
	value, ok := owner.values[f.storageKey]
	if !ok {
		value = f.materialize(owner)
		owner.values[f.storageKey] = value
	}
	return f.applyGetters(owner, value)
}

func (f *Field) materialize(owner *Model) any {
	if f.instantiator == nil {
		return f.defaultValue
	}
	return f.instantiator.Instantiate(owner)
}

func (f *Field) applyGetters(owner *Model, value any) any {
	for i := len(f.getters) - 1; i >= 0; i-- {
		value = f.getters[i](owner, value)
	}
	return value
}

// set implements the write contract: loads converter first (skipped on nil),
// then every setter in registration order, and the final result replaces the
// stored value. Virtual fields run the full pipeline and discard the result.
func (f *Field) set(owner *Model, value any) error {
	converted, err := f.loadsConvert(value)
	if err != nil {
		return fmt.Errorf("model: field %q: %w", f.name, err)
	}
	value = converted
	for _, fn := range f.setters {
		value = fn(owner, value)
	}
	if f.virtual {
		return nil
	}
	owner.values[f.storageKey] = value
	return nil
}

// delete removes the stored slot. Deleting an unset or virtual field is a
// no-op.
func (f *Field) delete(owner *Model) {
	if f.virtual {
		return
	}
	delete(owner.values, f.storageKey)
}

func (f *Field) loadsConvert(value any) (any, error) {
	if f.loads == nil || value == nil {
		return value, nil
	}
	return f.loads(value)
}

func (f *Field) dumpsConvert(value any) (any, error) {
	if f.dumps == nil || value == nil {
		return value, nil
	}
	return f.dumps(value)
}

// elementInstance builds one list element from raw input, passing it through
// unchanged when no element instantiator is configured.
func (f *Field) elementInstance(data any, owner *Model) (any, error) {
	if f.element == nil {
		return data, nil
	}
	return f.element.InstantiateElement(data, owner)
}

// DirectGet returns the raw stored value, bypassing converters and both
// chains. It returns nil when nothing is stored yet. This is a framework and
// test escape hatch; virtual fields reject it with ErrUnsupportedOperation.
func (f *Field) DirectGet(owner *Model) (any, error) {
	if f.virtual {
		return nil, fmt.Errorf("model: field %q: %w", f.name, ErrUnsupportedOperation)
	}
	return owner.values[f.storageKey], nil
}

// DirectSet stores value, bypassing the setter chain. The loads converter
// still applies unless bypassConverter is true. Virtual fields reject it with
// ErrUnsupportedOperation.
func (f *Field) DirectSet(owner *Model, value any, bypassConverter bool) error {
	if f.virtual {
		return fmt.Errorf("model: field %q: %w", f.name, ErrUnsupportedOperation)
	}
	if !bypassConverter {
		converted, err := f.loadsConvert(value)
		if err != nil {
			return fmt.Errorf("model: field %q: %w", f.name, err)
		}
		value = converted
	}
	owner.values[f.storageKey] = value
	return nil
}

// Delete removes the stored value for owner; idempotent.
func (f *Field) Delete(owner *Model) {
	f.delete(owner)
}
