package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	pkgmodel "github.com/goliatone/go-modelkit/pkg/model"
	pkgopenapi "github.com/goliatone/go-modelkit/pkg/openapi"
)

func main() {
	spec := flag.String("spec", "", "OpenAPI document path declaring the model")
	component := flag.String("component", "", "component schema to derive the model from")
	input := flag.String("input", "", "input payload path (.json or .yaml/.yml)")
	format := flag.String("format", "json", "output format: json, yaml, or csv")
	raw := flag.Bool("raw", false, "emit the raw (internal, lossless) dump")
	header := flag.Bool("header", true, "include a header row in csv output")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	if *spec == "" || *component == "" {
		log.Fatalf("both -spec and -component are required")
	}

	doc, err := os.ReadFile(*spec)
	if err != nil {
		log.Fatalf("Failed to read spec: %v", err)
	}
	schema, err := pkgopenapi.SchemaFromComponent(context.Background(), doc, *component)
	if err != nil {
		log.Fatalf("Failed to derive model: %v", err)
	}

	m := schema.New()
	if *input != "" {
		if err := loadPayload(m, *input); err != nil {
			log.Fatalf("Failed to load input: %v", err)
		}
	}

	rendered, err := render(m, strings.ToLower(*format), *raw, *header)
	if err != nil {
		log.Fatalf("Failed to render output: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, rendered, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Model written to %s\n", *output)
	} else {
		fmt.Println(strings.TrimRight(string(rendered), "\n"))
	}
}

func loadPayload(m *pkgmodel.Model, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return m.LoadYAML(data)
	default:
		return m.LoadBytes(data)
	}
}

func render(m *pkgmodel.Model, format string, raw, header bool) ([]byte, error) {
	switch format {
	case "json":
		out, err := m.DumpJSON(raw)
		if err != nil {
			return nil, err
		}
		return []byte(out), nil
	case "yaml":
		return m.DumpYAML(raw)
	case "csv":
		out, err := m.DumpCSVString(raw, header)
		if err != nil {
			return nil, err
		}
		return []byte(out), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
