package console

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-hotel-admin/pkg/hotelapi"
)

// SchemaValidator compiles entity draft schemas and validates payloads
// before they are submitted to the backend.
type SchemaValidator struct {
	mu       sync.RWMutex
	schemas  map[string]map[string]any
	compiled map[string]*jsonschema.Schema
}

// NewSchemaValidator builds a validator backed by jsonschema v5.
func NewSchemaValidator() *SchemaValidator {
	return &SchemaValidator{
		schemas:  make(map[string]map[string]any),
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// Register associates a JSON schema with an entity name.
func (v *SchemaValidator) Register(entity string, schema map[string]any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.schemas[entity] = schema
	delete(v.compiled, entity)
}

// Validate ensures the payload satisfies the entity schema. Failures are
// reported as *hotelapi.ValidationError so they flatten into the same
// user-facing message as backend rejections.
func (v *SchemaValidator) Validate(entity string, payload map[string]any) error {
	schema, err := v.schemaFor(entity)
	if err != nil {
		return err
	}
	if schema == nil {
		return nil
	}
	normalized, err := normalizePayload(payload)
	if err != nil {
		return fmt.Errorf("console: normalize %s draft: %w", entity, err)
	}
	if err := schema.Validate(normalized); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return &hotelapi.ValidationError{Fields: flattenCauses(verr)}
		}
		return fmt.Errorf("console: validate %s draft: %w", entity, err)
	}
	return nil
}

func (v *SchemaValidator) schemaFor(entity string) (*jsonschema.Schema, error) {
	v.mu.RLock()
	compiled, ok := v.compiled[entity]
	raw := v.schemas[entity]
	v.mu.RUnlock()
	if ok {
		return compiled, nil
	}
	if len(raw) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("console: marshal schema %s: %w", entity, err)
	}
	compiler := jsonschema.NewCompiler()
	name := entity + ".json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("console: load schema %s: %w", entity, err)
	}
	compiled, err = compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("console: compile schema %s: %w", entity, err)
	}
	v.mu.Lock()
	v.compiled[entity] = compiled
	v.mu.Unlock()
	return compiled, nil
}

// normalizePayload round-trips through JSON so numeric payload values take
// the shapes the schema library expects.
func normalizePayload(payload map[string]any) (map[string]any, error) {
	if payload == nil {
		return map[string]any{}, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var normalized map[string]any
	if err := json.Unmarshal(data, &normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

func flattenCauses(verr *jsonschema.ValidationError) []hotelapi.FieldError {
	if len(verr.Causes) == 0 {
		field := strings.TrimPrefix(verr.InstanceLocation, "/")
		if field == "" {
			field = "draft"
		}
		return []hotelapi.FieldError{{Field: field, Message: field + " " + verr.Message}}
	}
	var fields []hotelapi.FieldError
	for _, cause := range verr.Causes {
		fields = append(fields, flattenCauses(cause)...)
	}
	return fields
}
