package llm

import (
	"encoding/json"
	"fmt"
)

// envelopeField is the property that carries a non-object root value when a
// backend only accepts object-rooted schemas.
const envelopeField = "items"

// objectRooted reports whether def describes a JSON object.
func objectRooted(def map[string]any) bool {
	t, _ := def["type"].(string)
	return t == "" || t == "object"
}

// envelopeSchema wraps a non-object root schema into an object with a single
// required property. Object-rooted schemas are returned unchanged.
func envelopeSchema(s *Schema) (*Schema, bool) {
	if s == nil || objectRooted(s.Definition) {
		return s, false
	}
	return &Schema{
		Name:        s.Name,
		Description: s.Description,
		Definition: map[string]any{
			"type":                 "object",
			"properties":           map[string]any{envelopeField: s.Definition},
			"required":             []any{envelopeField},
			"additionalProperties": false,
		},
	}, true
}

// openEnvelope extracts the wrapped value from an envelope response.
func openEnvelope(raw json.RawMessage) (json.RawMessage, error) {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	inner, ok := env[envelopeField]
	if !ok {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("missing %q in response", envelopeField)}
	}
	return inner, nil
}

// prepareSchema returns the schema to send to an object-only backend and a
// function that turns its raw reply back into the caller's shape.
func prepareSchema(s *Schema) (*Schema, func(json.RawMessage) (json.RawMessage, error)) {
	wire, wrapped := envelopeSchema(s)
	if !wrapped {
		return wire, func(raw json.RawMessage) (json.RawMessage, error) { return raw, nil }
	}
	return wire, openEnvelope
}
