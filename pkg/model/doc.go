// Package model implements a declarative field/model engine: typed, named
// fields are declared once per Schema, each carrying its own default or
// instantiation strategy, list semantics, converters, visibility, external
// mapping name, and ordered getter/setter transform chains. Model instances
// built from a Schema round-trip losslessly between key-value maps, JSON byte
// payloads, YAML documents, and flat CSV rows.
//
// Fields are class-level configuration shared by every instance of a Schema,
// while values live in per-instance storage slots keyed by each field's
// storage key. Schemas extend one another; the effective field list of a
// schema (its own declarations plus independent copies of inherited fields)
// is resolved exactly once, on first instance construction, guarded against
// concurrent duplicate work.
package model
