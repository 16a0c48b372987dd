package model

import "fmt"

// Model is one instance of a Schema: a private storage slot per resolved
// field plus an optional back-reference to the container that produced it.
// Instances are not safe for concurrent use; callers serialize access the
// same way they would around any plain struct.
type Model struct {
	schema *Schema
	parent *Model
	values map[string]any
}

// Schema returns the declaration this instance was built from.
func (m *Model) Schema() *Schema { return m.schema }

// Parent returns the container that produced this instance, or nil for
// top-level models.
func (m *Model) Parent() *Model { return m.parent }

// Fields returns the resolved field list in declaration order.
func (m *Model) Fields() []*Field { return m.schema.resolved }

// Field returns the field matching name or mapping name, or nil.
func (m *Model) Field(name string) *Field {
	return m.schema.Field(name)
}

// Get reads a field's current value, materializing the default or
// instantiated value on first access and applying the getter chain.
func (m *Model) Get(name string) (any, error) {
	f := m.Field(name)
	if f == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return f.get(m), nil
}

// MustGet is Get for callers that know the field exists; it panics on an
// unknown name.
func (m *Model) MustGet(name string) any {
	value, err := m.Get(name)
	if err != nil {
		panic(err)
	}
	return value
}

// Set writes a value through the field's loads converter and setter chain.
func (m *Model) Set(name string, value any) error {
	f := m.Field(name)
	if f == nil {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return f.set(m, value)
}

// Delete removes a field's stored value; deleting an unset field is not an
// error.
func (m *Model) Delete(name string) error {
	f := m.Field(name)
	if f == nil {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	f.delete(m)
	return nil
}

// Append builds each element through the field's element instantiation rule
// and appends it to the stored list.
func (m *Model) Append(name string, elems ...any) error {
	f := m.Field(name)
	if f == nil {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if !f.isList {
		return fmt.Errorf("%w: %q", ErrNotAList, name)
	}
	return m.appendElements(f, elems)
}

// appendElements works on the raw slot: materialization happens without the
// setter chain and the grown list is stored back directly, mirroring an
// in-place append.
func (m *Model) appendElements(f *Field, elems []any) error {
	value, ok := m.values[f.storageKey]
	if !ok {
		value = f.materialize(m)
	}
	list, ok := value.([]any)
	if !ok && value != nil {
		return fmt.Errorf("%w: %q holds %T", ErrNotAList, f.name, value)
	}
	for _, elem := range elems {
		built, err := f.elementInstance(elem, m)
		if err != nil {
			return err
		}
		list = append(list, built)
	}
	m.values[f.storageKey] = list
	return nil
}

// Reset deletes every resolved field's stored value, reverting the instance
// to default materialization on next read.
func (m *Model) Reset() {
	for _, f := range m.schema.resolved {
		f.delete(m)
	}
}

// LoadFrom re-ingests other's raw dump: a deep, converter-faithful copy. Pre
// and post load hooks run through the map ingestion it delegates to.
func (m *Model) LoadFrom(other *Model) error {
	raw, err := other.Dump(true)
	if err != nil {
		return err
	}
	return m.Load(raw)
}

// Load merges data into the instance. Nil or empty input is a no-op. For
// every entry whose key matches a resolved field: a nested model value is
// loaded in place rather than replaced, a list-typed field appends elements
// built through its element rule, and everything else goes through the
// field's normal write path so converters and setters apply. Keys with no
// matching field are silently ignored.
func (m *Model) Load(data map[string]any) error {
	if len(data) == 0 {
		return nil
	}
	if m.schema.hooks.PreLoad != nil {
		data = m.schema.hooks.PreLoad(m, data)
	}

	for name, value := range data {
		f := m.Field(name)
		if f == nil {
			continue
		}
		current := f.get(m)
		if child, ok := current.(*Model); ok {
			if value == nil {
				continue
			}
			nested, ok := value.(map[string]any)
			if !ok {
				return fmt.Errorf("model: field %q: expected map for nested model, got %T", f.name, value)
			}
			if err := child.Load(nested); err != nil {
				return err
			}
			continue
		}
		if f.isList {
			if value == nil {
				continue
			}
			elems, ok := value.([]any)
			if !ok {
				return fmt.Errorf("model: field %q: expected list, got %T", f.name, value)
			}
			if err := m.appendElements(f, elems); err != nil {
				return err
			}
			continue
		}
		if err := f.set(m, value); err != nil {
			return err
		}
	}

	if m.schema.hooks.PostLoad != nil {
		m.schema.hooks.PostLoad(m)
	}
	return nil
}

// loadAny dispatches construction-time seed data by shape.
func (m *Model) loadAny(data any) error {
	switch d := data.(type) {
	case nil:
		return nil
	case *Model:
		return m.LoadFrom(d)
	case map[string]any:
		return m.Load(d)
	case []byte:
		return m.LoadBytes(d)
	default:
		return fmt.Errorf("model: cannot load from %T", data)
	}
}

// Dump exports the instance as a key-value map, walking the resolved field
// list in declaration order. Raw dumps use internal field names, include
// hidden fields, and skip dumps converters, which makes them lossless for
// round-tripping. Display dumps use mapping names, apply converters, and skip
// hidden fields. Nested models and list elements dump recursively. Lists of
// lists are not supported: list recursion dumps each element as a non-list
// value, so deeper nesting must be flattened by the caller's model shape.
func (m *Model) Dump(raw bool) (map[string]any, error) {
	if m.schema.hooks.PreDump != nil {
		m.schema.hooks.PreDump(m, raw)
	}

	dump := make(map[string]any, len(m.schema.resolved))
	for _, f := range m.schema.resolved {
		if !raw && f.hidden {
			continue
		}
		value := f.get(m)
		if !raw {
			converted, err := f.dumpsConvert(value)
			if err != nil {
				return nil, fmt.Errorf("model: field %q: %w", f.name, err)
			}
			value = converted
		}
		out, err := dumpValue(f.name, value, raw, f.isList)
		if err != nil {
			return nil, err
		}
		dump[f.DumpName(raw)] = out
	}

	if m.schema.hooks.PostDump != nil {
		m.schema.hooks.PostDump(m, raw, dump)
	}
	return dump, nil
}

func dumpValue(name string, value any, raw, isList bool) (any, error) {
	if isList {
		if value == nil {
			return nil, nil
		}
		list, ok := value.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: %q holds %T", ErrNotAList, name, value)
		}
		out := make([]any, 0, len(list))
		for _, elem := range list {
			dumped, err := dumpValue(name, elem, raw, false)
			if err != nil {
				return nil, err
			}
			out = append(out, dumped)
		}
		return out, nil
	}
	if child, ok := value.(*Model); ok {
		return child.Dump(raw)
	}
	return value, nil
}

// String renders the display dump.
func (m *Model) String() string {
	dump, err := m.Dump(false)
	if err != nil {
		return fmt.Sprintf("model: %v", err)
	}
	return fmt.Sprint(dump)
}
