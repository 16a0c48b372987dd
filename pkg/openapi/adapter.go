// Package openapi derives model schemas from OpenAPI documents: a component's
// object schema becomes a set of field declarations, with nested objects
// materializing as nested model schemas and arrays of objects as
// list-of-model fields. Defaults declared in the document carry over to the
// derived fields.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-modelkit/pkg/model"
)

// SchemaFromComponent loads an OpenAPI document (JSON or YAML) and derives a
// model schema from the named component schema. Only object components can be
// derived; scalar properties become plain fields, object properties become
// nested-model fields, and array properties become list fields whose object
// items load as child models.
func SchemaFromComponent(ctx context.Context, raw []byte, component string) (*model.Schema, error) {
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil, errors.New("openapi: document has no component schemas")
	}
	ref, ok := doc.Components.Schemas[component]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("openapi: component %q not found", component)
	}
	return deriveSchema(component, ref.Value)
}

func deriveSchema(name string, src *openapi3.Schema) (*model.Schema, error) {
	if !typeIs(src.Type, "object") {
		return nil, fmt.Errorf("openapi: component %q is not an object schema", name)
	}

	names := make([]string, 0, len(src.Properties))
	for propName := range src.Properties {
		names = append(names, propName)
	}
	sort.Strings(names)

	fields := make([]*model.Field, 0, len(names))
	for _, propName := range names {
		prop := src.Properties[propName]
		if prop == nil || prop.Value == nil {
			continue
		}
		field, err := deriveField(name, propName, prop.Value)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return model.NewSchema(name, fields...), nil
}

func deriveField(parent, name string, prop *openapi3.Schema) (*model.Field, error) {
	field := model.NewField(name)
	if prop.Default != nil {
		field.Default(prop.Default)
	}

	switch {
	case typeIs(prop.Type, "array"):
		var elem model.ElementInstantiator
		if prop.Items != nil && prop.Items.Value != nil && typeIs(prop.Items.Value.Type, "object") {
			sub, err := deriveSchema(parent+"."+name, prop.Items.Value)
			if err != nil {
				return nil, err
			}
			elem = sub
		}
		field.ListOf(elem)
	case typeIs(prop.Type, "object"):
		sub, err := deriveSchema(parent+"."+name, prop)
		if err != nil {
			return nil, err
		}
		field.Instantiate(sub)
	}
	return field, nil
}

func typeIs(types *openapi3.Types, want string) bool {
	if types == nil {
		return false
	}
	for _, t := range types.Slice() {
		if t == want {
			return true
		}
	}
	return false
}
