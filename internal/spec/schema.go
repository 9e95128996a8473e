package spec

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaSource string

var (
	schemaOnce sync.Once
	schemaCtx  *cue.Context
	schemaVal  cue.Value
	schemaErr  error
)

// loadSchema compiles the embedded schema once. The compiled value is
// reused for every validation in the process.
func loadSchema() (cue.Value, error) {
	schemaOnce.Do(func() {
		schemaCtx = cuecontext.New()
		root := schemaCtx.CompileString(schemaSource)
		if err := root.Err(); err != nil {
			schemaErr = fmt.Errorf("compile spec schema: %w", err)
			return
		}
		schemaVal = root.LookupPath(cue.ParsePath("#Spec"))
		if err := schemaVal.Err(); err != nil {
			schemaErr = fmt.Errorf("resolve #Spec: %w", err)
		}
	})
	return schemaVal, schemaErr
}

// ValidateSchema checks raw spec file contents against the embedded CUE
// schema. This catches mistyped field names, bad enum values, and
// out-of-range numbers with positions pointing into the source file,
// before the Go decoder ever sees the document.
func ValidateSchema(path string, data []byte) error {
	schema, err := loadSchema()
	if err != nil {
		return err
	}

	file, err := cueyaml.Extract(path, data)
	if err != nil {
		return fmt.Errorf("parse spec YAML: %w", err)
	}

	doc := schemaCtx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("build spec document: %w", err)
	}

	if err := schema.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("spec schema: %w", err)
	}
	return nil
}
