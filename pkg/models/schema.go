package models

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed report_schema.json
var reportSchemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// ReportSchema returns the compiled JSON Schema for the report document.
func ReportSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(reportSchemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parsing report schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("report.schema.json", doc); err != nil {
			schemaErr = fmt.Errorf("adding report schema resource: %w", err)
			return
		}

		schema, schemaErr = compiler.Compile("report.schema.json")
	})
	return schema, schemaErr
}

// ValidateReport checks serialized report JSON against the report schema.
func ValidateReport(data []byte) error {
	sch, err := ReportSchema()
	if err != nil {
		return err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parsing report document: %w", err)
	}

	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("report schema validation: %w", err)
	}
	return nil
}
