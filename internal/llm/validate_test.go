package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func simulationTestSchema() *Schema {
	return &Schema{
		Name:        "test-simulation",
		Description: "A virtual experiment",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title":       map[string]any{"type": "string"},
				"description": map[string]any{"type": "string"},
				"scenario":    map[string]any{"type": "string"},
				"imageUrl":    map[string]any{"type": "string"},
			},
			"required": []any{"title", "description", "scenario"},
		},
	}
}

func intArraySchema() *Schema {
	return &Schema{
		Name: "test-int-array",
		Definition: map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "integer"},
		},
	}
}

func TestValidateResponse_ValidJSON(t *testing.T) {
	raw := json.RawMessage(`{"title":"Ống Torricelli","description":"d","scenario":"s","imageUrl":"x"}`)
	if err := validateResponse(simulationTestSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_ValidWithoutOptional(t *testing.T) {
	raw := json.RawMessage(`{"title":"t","description":"d","scenario":"s"}`)
	if err := validateResponse(simulationTestSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"title":"t"}`)
	err := validateResponse(simulationTestSchema(), raw)
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestValidateResponse_WrongType(t *testing.T) {
	raw := json.RawMessage(`{"title":1,"description":"d","scenario":"s"}`)
	if err := validateResponse(simulationTestSchema(), raw); err == nil {
		t.Fatal("expected error for wrong type")
	}
}

func TestValidateResponse_ArrayRoot(t *testing.T) {
	if err := validateResponse(intArraySchema(), json.RawMessage(`[1,2,3]`)); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if err := validateResponse(intArraySchema(), json.RawMessage(`{"items":[1]}`)); err == nil {
		t.Fatal("expected error for object where array is required")
	}
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{"title": "unterminated`)
	err := validateResponse(simulationTestSchema(), raw)
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_EmptyResponse(t *testing.T) {
	if err := validateResponse(simulationTestSchema(), json.RawMessage(``)); err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`plain text reply`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}
