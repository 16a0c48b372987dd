// Package convert provides reusable field converters: permissive coercions
// between the scalar shapes that appear in decoded JSON and YAML payloads,
// plus time and HTML helpers. Every function satisfies model.Converter, so
// declarations can wire them directly:
//
//	model.NewField("age").Convert(convert.ToInt, nil)
package convert

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ToInt coerces numeric values and numeric strings to int64. Fractional
// floats are rejected rather than truncated.
func ToInt(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		return int64(v), nil
	case float32:
		return floatToInt(float64(v))
	case float64:
		return floatToInt(v)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("convert: to int: %w", err)
		}
		return parsed, nil
	default:
		return nil, fmt.Errorf("convert: cannot convert %T to int", value)
	}
}

func floatToInt(v float64) (any, error) {
	if v != float64(int64(v)) {
		return nil, fmt.Errorf("convert: to int: %v has a fractional part", v)
	}
	return int64(v), nil
}

// ToFloat coerces numeric values and numeric strings to float64.
func ToFloat(value any) (any, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("convert: to float: %w", err)
		}
		return parsed, nil
	default:
		return nil, fmt.Errorf("convert: cannot convert %T to float", value)
	}
}

// ToBool coerces booleans, numbers, and boolean strings to bool.
func ToBool(value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("convert: to bool: %w", err)
		}
		return parsed, nil
	case int:
		return v != 0, nil
	case int64:
		return v != 0, nil
	case float64:
		return v != 0, nil
	default:
		return nil, fmt.Errorf("convert: cannot convert %T to bool", value)
	}
}

// ToString renders any scalar as its string form.
func ToString(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return fmt.Sprint(value), nil
	}
}

// TimeRFC3339 parses an RFC 3339 string into a time.Time; pass it as a loads
// converter. Values that are already time.Time pass through unchanged.
func TimeRFC3339(value any) (any, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("convert: parse time: %w", err)
		}
		return parsed, nil
	default:
		return nil, fmt.Errorf("convert: cannot convert %T to time", value)
	}
}

// TimeToRFC3339 renders a time.Time as an RFC 3339 string; pass it as a dumps
// converter.
func TimeToRFC3339(value any) (any, error) {
	v, ok := value.(time.Time)
	if !ok {
		return nil, fmt.Errorf("convert: expected time.Time, got %T", value)
	}
	return v.Format(time.RFC3339), nil
}
