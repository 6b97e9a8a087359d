package store

import (
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const collectionSchemaURL = "taskmigrate://collection.schema.json"

// collectionSchema requires an object of objects.
const collectionSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": {"type": "object"}
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// ShapeError reports a collection that is valid JSON but not an object of objects.
type ShapeError struct {
	Path     string // file path
	Location string // dotted location within the document, empty for the root
	Err      error
}

func (e *ShapeError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("invalid task file %s: %s: %s", e.Path, e.Location, e.Err)
	}
	return fmt.Sprintf("invalid task file %s: %s", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ShapeError) Unwrap() error {
	return e.Err
}

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(collectionSchemaURL, strings.NewReader(collectionSchema)); err != nil {
			compileErr = fmt.Errorf("add collection schema: %w", err)
			return
		}
		compiledSchema, compileErr = compiler.Compile(collectionSchemaURL)
	})
	return compiledSchema, compileErr
}

// validateShape checks doc against the collection schema.
func validateShape(path string, doc any) error {
	s, err := schema()
	if err != nil {
		return err
	}

	err = s.Validate(doc)
	if err == nil {
		return nil
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return &ShapeError{Path: path, Err: err}
	}

	leaf := firstLeaf(ve)
	return &ShapeError{
		Path:     path,
		Location: jsonPointerToPath(leaf.InstanceLocation),
		Err:      fmt.Errorf("%s", leaf.Message),
	}
}

func firstLeaf(err *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(err.Causes) > 0 {
		err = err.Causes[0]
	}
	return err
}

// jsonPointerToPath converts a JSON Pointer (RFC 6901) to a dot-notation path.
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	parts := strings.Split(ptr, "/")
	for i, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		parts[i] = strings.ReplaceAll(part, "~0", "~")
	}
	return strings.Join(parts, ".")
}
