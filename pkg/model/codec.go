package model

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/ohler55/ojg/oj"
	"gopkg.in/yaml.v3"
)

// LoadBytes decodes a UTF-8 JSON object payload and merges it with the same
// permissive semantics as Load. Empty input is a no-op.
func (m *Model) LoadBytes(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	parsed, err := oj.Parse(data)
	if err != nil {
		return fmt.Errorf("model: decode payload: %w", err)
	}
	obj, ok := parsed.(map[string]any)
	if !ok {
		return fmt.Errorf("model: payload is not a JSON object, got %T", parsed)
	}
	return m.Load(obj)
}

// Encode produces the JSON byte payload of the raw dump. Encode and LoadBytes
// are exact inverses for values that pass through JSON cleanly (text,
// numbers, booleans, nested objects and lists).
func (m *Model) Encode() ([]byte, error) {
	dump, err := m.Dump(true)
	if err != nil {
		return nil, err
	}
	data, err := oj.Marshal(dump)
	if err != nil {
		return nil, fmt.Errorf("model: encode: %w", err)
	}
	return data, nil
}

// DumpJSON renders the display (or raw) dump as JSON text.
func (m *Model) DumpJSON(raw bool) (string, error) {
	dump, err := m.Dump(raw)
	if err != nil {
		return "", err
	}
	data, err := oj.Marshal(dump)
	if err != nil {
		return "", fmt.Errorf("model: encode: %w", err)
	}
	return string(data), nil
}

// LoadYAML decodes a YAML mapping and merges it with the same permissive
// semantics as Load. Empty input is a no-op.
func (m *Model) LoadYAML(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	var obj map[string]any
	if err := yaml.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("model: decode yaml: %w", err)
	}
	return m.Load(obj)
}

// DumpYAML renders the display (or raw) dump as YAML.
func (m *Model) DumpYAML(raw bool) ([]byte, error) {
	dump, err := m.Dump(raw)
	if err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(dump)
	if err != nil {
		return nil, fmt.Errorf("model: encode yaml: %w", err)
	}
	return data, nil
}

// DumpCSV writes the dump as a single CSV record, optionally preceded by a
// header row. Columns follow field declaration order; keys added by a
// PostDump hook come after, sorted. Values must be representable as text or
// number.
func (m *Model) DumpCSV(w io.Writer, raw, header bool) error {
	dump, err := m.Dump(raw)
	if err != nil {
		return err
	}

	columns := make([]string, 0, len(dump))
	seen := make(map[string]struct{}, len(dump))
	for _, f := range m.schema.resolved {
		name := f.DumpName(raw)
		if _, ok := dump[name]; !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		columns = append(columns, name)
	}
	extras := make([]string, 0)
	for key := range dump {
		if _, ok := seen[key]; !ok {
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)
	columns = append(columns, extras...)

	writer := csv.NewWriter(w)
	if header {
		if err := writer.Write(columns); err != nil {
			return fmt.Errorf("model: write csv header: %w", err)
		}
	}
	record := make([]string, len(columns))
	for i, column := range columns {
		record[i] = csvValue(dump[column])
	}
	if err := writer.Write(record); err != nil {
		return fmt.Errorf("model: write csv record: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("model: flush csv: %w", err)
	}
	return nil
}

// DumpCSVString is DumpCSV into a string.
func (m *Model) DumpCSVString(raw, header bool) (string, error) {
	var buf bytes.Buffer
	if err := m.DumpCSV(&buf, raw, header); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func csvValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
