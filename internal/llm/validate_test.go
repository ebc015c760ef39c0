package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-grade",
		Description: "A graded reply",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"feedback": map[string]any{"type": "string"},
				"score":    map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
				"tone":     map[string]any{"type": "string", "enum": []any{"formal", "neutral", "rude"}},
			},
			"required": []any{"feedback", "score"},
		},
	}
}

func TestValidateResponse_ValidJSON(t *testing.T) {
	raw := json.RawMessage(`{"feedback":"Ottimo tono.","score":82,"tone":"formal"}`)
	if err := validateResponse(testSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_ValidWithoutOptional(t *testing.T) {
	raw := json.RawMessage(`{"feedback":"Troppo breve.","score":35}`)
	if err := validateResponse(testSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing required", `{"feedback":"ok"}`},
		{"wrong type", `{"feedback":"ok","score":"alto"}`},
		{"out of range", `{"feedback":"ok","score":140}`},
		{"invalid enum", `{"feedback":"ok","score":50,"tone":"casual"}`},
		{"malformed", `{not json}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testSchema(), json.RawMessage(tt.raw))
			if err == nil {
				t.Fatal("expected error")
			}
			var invErr *ErrInvalidResponse
			if !errors.As(err, &invErr) {
				t.Fatalf("expected ErrInvalidResponse, got: %T", err)
			}
		})
	}
}

func TestValidateResponse_EmptyResponse(t *testing.T) {
	if err := validateResponse(testSchema(), json.RawMessage(``)); err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_NestedObjects(t *testing.T) {
	schema := &Schema{
		Name:        "test-inbox",
		Description: "Nested test",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"emails": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"from": map[string]any{"type": "string"},
						},
						"required": []any{"from"},
					},
				},
			},
			"required": []any{"emails"},
		},
	}

	valid := json.RawMessage(`{"emails":[{"from":"Mario Rossi"},{"from":"Anna Bianchi"}]}`)
	if err := validateResponse(schema, valid); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	invalid := json.RawMessage(`{"emails":[{"subject":"Benvenuto"}]}`)
	if err := validateResponse(schema, invalid); err == nil {
		t.Fatal("expected error for item missing required field")
	}
}

func TestNewResponse_FreeTextSkipsValidation(t *testing.T) {
	resp, err := newResponse(Request{}, "Certo, ecco una bozza.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "Certo, ecco una bozza." || resp.Content != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
