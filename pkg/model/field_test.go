package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
)

func TestSetterChainOrder(t *testing.T) {
	field := NewField("name1").
		Setter(func(_ *Model, v any) any { return v.(string) + "a" }).
		Setter(func(_ *Model, v any) any { return v.(string) + "b" })
	schema := NewSchema("chain", field)
	m := schema.New()

	if err := m.Set("name1", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	stored, err := field.DirectGet(m)
	if err != nil {
		t.Fatalf("direct get: %v", err)
	}
	if stored != "vab" {
		t.Fatalf("expected setters to compose first-registered first, got %q", stored)
	}
}

func TestClearSettersStoresUnchanged(t *testing.T) {
	field := NewField("name1").
		Setter(func(_ *Model, v any) any { return v.(string) + "a" })
	schema := NewSchema("clear", field)
	m := schema.New()

	field.ClearSetters()
	if err := m.Set("name1", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	stored, _ := field.DirectGet(m)
	if stored != "v" {
		t.Fatalf("expected cleared chain to store value unchanged, got %q", stored)
	}
}

func TestGetterChainNewestRunsFirst(t *testing.T) {
	field := NewField("name1").
		Getter(func(_ *Model, v any) any { return "g1(" + v.(string) + ")" }).
		Getter(func(_ *Model, v any) any { return "g2(" + v.(string) + ")" })
	schema := NewSchema("getters", field)
	m := schema.New()

	if err := field.DirectSet(m, "stored", true); err != nil {
		t.Fatalf("direct set: %v", err)
	}
	value := m.MustGet("name1")
	if value != "g1(g2(stored))" {
		t.Fatalf("expected last-registered getter innermost-first, got %q", value)
	}
	// The stored value itself is left untouched by getters.
	stored, _ := field.DirectGet(m)
	if stored != "stored" {
		t.Fatalf("getter chain mutated the slot: %q", stored)
	}
}

func TestMaterializedDefaultSkipsSetterChain(t *testing.T) {
	calls := 0
	field := NewField("name1").
		Default("d").
		Setter(func(_ *Model, v any) any { calls++; return v })
	schema := NewSchema("materialize", field)
	m := schema.New()

	if got := m.MustGet("name1"); got != "d" {
		t.Fatalf("expected default, got %v", got)
	}
	if calls != 0 {
		t.Fatalf("setter chain ran %d times during materialization", calls)
	}
	stored, _ := field.DirectGet(m)
	if stored != "d" {
		t.Fatalf("expected default stored, got %v", stored)
	}
}

func TestInstantiatorConstructsChildWithParent(t *testing.T) {
	child := NewSchema("child", NewField("name1"))
	field := NewField("nested").Instantiate(child)
	schema := NewSchema("parent", field)
	m := schema.New()

	value := m.MustGet("nested")
	nested, ok := value.(*Model)
	if !ok {
		t.Fatalf("expected nested model, got %T", value)
	}
	if nested.Parent() != m {
		t.Fatalf("expected child parent back-reference to owner")
	}
	// Repeated reads observe the same stored child.
	if m.MustGet("nested") != nested {
		t.Fatalf("expected materialization to happen once")
	}
}

func TestLoadsConverter(t *testing.T) {
	toInt := func(v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return v, nil
		}
		return strconv.Atoi(s)
	}
	field := NewField("count").Convert(toInt, nil)
	schema := NewSchema("convert", field)
	m := schema.New()

	if err := m.Set("count", "41"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := m.MustGet("count"); got != 41 {
		t.Fatalf("expected converted int, got %v (%T)", got, got)
	}

	// Converters are skipped when the value is absent.
	if err := m.Set("count", nil); err != nil {
		t.Fatalf("set nil: %v", err)
	}
	if got := m.MustGet("count"); got != nil {
		t.Fatalf("expected nil stored, got %v", got)
	}

	// Conversion failures propagate to the caller.
	if err := m.Set("count", "not-a-number"); err == nil {
		t.Fatalf("expected conversion error")
	}
}

func TestDumpsConverterErrorSurfacesFromDump(t *testing.T) {
	field := NewField("name1").
		Default("x").
		Convert(nil, func(any) (any, error) { return nil, fmt.Errorf("boom") })
	schema := NewSchema("dumpconv", field)
	m := schema.New()

	if _, err := m.Dump(false); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected dumps converter error, got %v", err)
	}
	// Raw dumps bypass converters entirely.
	if _, err := m.Dump(true); err != nil {
		t.Fatalf("raw dump: %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	original := NewField("name1").
		Mapping("Name1").
		Default("d").
		Hide().
		Setter(func(_ *Model, v any) any { return v })

	copied := original.Clone()
	if copied == original {
		t.Fatalf("expected a distinct field")
	}
	if copied.Name() != "name1" || copied.DumpName(false) != "Name1" || !copied.Hidden() {
		t.Fatalf("scalar configuration not carried over")
	}

	copied.Setter(func(_ *Model, v any) any { return v })
	if len(original.setters) != 1 {
		t.Fatalf("clone shares the setter chain with the original")
	}
	copied.ClearSetters()
	if len(original.setters) != 1 {
		t.Fatalf("clearing the clone emptied the original chain")
	}
}

func TestMatch(t *testing.T) {
	field := NewField("name1").Mapping("Name1")
	cases := []struct {
		name string
		want bool
	}{
		{"name1", true},
		{"Name1", true},
		{"name2", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := field.Match(tc.name); got != tc.want {
			t.Fatalf("Match(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestDumpName(t *testing.T) {
	plain := NewField("name1")
	mapped := NewField("name1").Mapping("Name1")

	if plain.DumpName(false) != "name1" || plain.DumpName(true) != "name1" {
		t.Fatalf("unmapped field must emit its own name both ways")
	}
	if mapped.DumpName(false) != "Name1" {
		t.Fatalf("display dumps must emit the mapping name")
	}
	if mapped.DumpName(true) != "name1" {
		t.Fatalf("raw dumps must emit the internal name")
	}
}

func TestDirectAccess(t *testing.T) {
	toUpper := func(v any) (any, error) { return strings.ToUpper(v.(string)), nil }
	field := NewField("name1").
		Convert(toUpper, nil).
		Setter(func(_ *Model, v any) any { return v.(string) + "!" })
	schema := NewSchema("direct", field)
	m := schema.New()

	// Unset slot reads as nil.
	if value, err := field.DirectGet(m); err != nil || value != nil {
		t.Fatalf("DirectGet on unset slot = %v, %v", value, err)
	}

	// Direct set bypasses setters but still converts.
	if err := field.DirectSet(m, "abc", false); err != nil {
		t.Fatalf("direct set: %v", err)
	}
	stored, _ := field.DirectGet(m)
	if stored != "ABC" {
		t.Fatalf("expected converter applied without setters, got %q", stored)
	}

	// Bypassing the converter stores the value verbatim.
	if err := field.DirectSet(m, "abc", true); err != nil {
		t.Fatalf("direct set bypass: %v", err)
	}
	stored, _ = field.DirectGet(m)
	if stored != "abc" {
		t.Fatalf("expected verbatim store, got %q", stored)
	}

	// Deleting is idempotent.
	field.Delete(m)
	field.Delete(m)
	if value, _ := field.DirectGet(m); value != nil {
		t.Fatalf("expected slot cleared, got %v", value)
	}
}

func TestUnknownFieldErrors(t *testing.T) {
	schema := NewSchema("unknown", NewField("name1"))
	m := schema.New()

	if _, err := m.Get("missing"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("Get: expected ErrUnknownField, got %v", err)
	}
	if err := m.Set("missing", 1); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("Set: expected ErrUnknownField, got %v", err)
	}
	if err := m.Append("name1", 1); !errors.Is(err, ErrNotAList) {
		t.Fatalf("Append: expected ErrNotAList, got %v", err)
	}
}
