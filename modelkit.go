package modelkit

import (
	"context"

	pkgmodel "github.com/goliatone/go-modelkit/pkg/model"
	pkgopenapi "github.com/goliatone/go-modelkit/pkg/openapi"
)

// Schema is the class-level model declaration; alias exported via the root
// package for convenience.
type Schema = pkgmodel.Schema

// Model is a single instance of a schema.
type Model = pkgmodel.Model

// Field declares one named slot of a schema.
type Field = pkgmodel.Field

// Hooks are the named extension points of the construction, load, and dump
// pipelines.
type Hooks = pkgmodel.Hooks

// Transform is a getter/setter chain entry.
type Transform = pkgmodel.Transform

// Converter reshapes a value during loads or dumps and may fail.
type Converter = pkgmodel.Converter

// Instantiator materializes nested-model field values.
type Instantiator = pkgmodel.Instantiator

// Factory adapts a plain constructor function to Instantiator.
type Factory = pkgmodel.Factory

// ElementInstantiator constructs list elements from raw element data.
type ElementInstantiator = pkgmodel.ElementInstantiator

// ElementFactory adapts a plain element constructor to ElementInstantiator.
type ElementFactory = pkgmodel.ElementFactory

// NewSchema declares a root schema with its own fields in declaration order.
func NewSchema(name string, fields ...*Field) *Schema {
	return pkgmodel.NewSchema(name, fields...)
}

// NewField declares a regular field.
func NewField(name string) *Field {
	return pkgmodel.NewField(name)
}

// NewVirtualField declares a field with no backing storage; reads derive from
// its default through the getter chain and writes run the setter chain for
// side effects only.
func NewVirtualField(name string) *Field {
	return pkgmodel.NewVirtualField(name)
}

// SchemaFromComponent derives a schema from a named component of an OpenAPI
// document (JSON or YAML payload). It is the simplest entry point for callers
// that declare models in API documents instead of Go code.
func SchemaFromComponent(ctx context.Context, document []byte, component string) (*Schema, error) {
	return pkgopenapi.SchemaFromComponent(ctx, document, component)
}
