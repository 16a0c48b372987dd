// Package transform compiles expr-lang expressions into field transforms and
// converters, so getter/setter chains and conversions can be declared as data
// (configuration files, OpenAPI extensions) instead of Go code.
//
// Expressions see `value`, the value flowing through the chain, and, for
// transforms, `model` (the owning instance). Programs are compiled once and
// cached by expression text.
package transform

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/goliatone/go-modelkit/pkg/model"
)

var (
	cacheMu sync.RWMutex
	cache   = make(map[string]*vm.Program)
)

func compile(expression string) (*vm.Program, error) {
	cacheMu.RLock()
	program, ok := cache[expression]
	cacheMu.RUnlock()
	if ok {
		return program, nil
	}

	program, err := expr.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("transform: compile %q: %w", expression, err)
	}

	cacheMu.Lock()
	cache[expression] = program
	cacheMu.Unlock()
	return program, nil
}

// Transform compiles expression into a chain entry usable as either a getter
// or a setter. Chain entries cannot fail by contract, so an evaluation error
// leaves the value unchanged.
func Transform(expression string) (model.Transform, error) {
	program, err := compile(expression)
	if err != nil {
		return nil, err
	}
	return func(owner *model.Model, value any) any {
		out, err := expr.Run(program, map[string]any{
			"value": value,
			"model": owner,
		})
		if err != nil {
			return value
		}
		return out
	}, nil
}

// Converter compiles expression into a loads/dumps converter. Evaluation
// errors surface as conversion failures and abort the triggering load or
// dump.
func Converter(expression string) (model.Converter, error) {
	program, err := compile(expression)
	if err != nil {
		return nil, err
	}
	return func(value any) (any, error) {
		out, err := expr.Run(program, map[string]any{"value": value})
		if err != nil {
			return nil, fmt.Errorf("transform: eval %q: %w", expression, err)
		}
		return out, nil
	}, nil
}
