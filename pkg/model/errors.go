package model

import "errors"

var (
	// ErrUnsupportedOperation is returned when direct storage access is
	// attempted on a virtual field, which has no real value to access.
	ErrUnsupportedOperation = errors.New("model: unsupported operation on virtual field")

	// ErrUnknownField is returned when an accessor names a field no
	// declaration matches, by public name or mapping name.
	ErrUnknownField = errors.New("model: unknown field")

	// ErrNotAList is returned when Append targets a field without list
	// semantics, or when a list field's slot holds a non-list value.
	ErrNotAList = errors.New("model: field is not list-typed")
)
