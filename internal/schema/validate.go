// Package schema provides JSON schema validation for macprep manifests.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	schemafs "github.com/macprep/macprep/schema"
)

var (
	manifestSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

// compileSchema compiles the embedded manifest schema once.
func compileSchema() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()

		data, err := schemafs.FS.ReadFile("manifest.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("read manifest schema: %w", err)
			return
		}

		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal manifest schema: %w", err)
			return
		}

		if err := compiler.AddResource("manifest.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("add manifest schema resource: %w", err)
			return
		}

		manifestSchema, err = compiler.Compile("manifest.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile manifest schema: %w", err)
			return
		}
	})

	return compileErr
}

// ValidateManifest validates a decoded manifest document against the schema.
// The document is the generic value produced by YAML decoding (maps, slices,
// and scalars), not the typed Manifest struct. It is round-tripped through
// JSON so scalar types match what the validator expects.
func ValidateManifest(doc any) error {
	if err := compileSchema(); err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("manifest validation failed: %w", err)
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("manifest validation failed: %w", err)
	}

	if err := manifestSchema.Validate(instance); err != nil {
		return fmt.Errorf("manifest validation failed: %w", err)
	}

	return nil
}
