package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"inventory-manager/internal/core"
)

func TestProposalSchema_StrictShape(t *testing.T) {
	schema, err := proposalSchema()
	if err != nil {
		t.Fatalf("proposalSchema failed: %v", err)
	}

	if schema["type"] != "object" {
		t.Errorf("expected object schema, got %v", schema["type"])
	}
	if schema["additionalProperties"] != false {
		t.Errorf("strict mode needs additionalProperties false, got %v", schema["additionalProperties"])
	}

	props, ok := schema["properties"].(map[string]any)
	if !ok {
		t.Fatalf("properties missing: %v", schema["properties"])
	}
	required, _ := schema["required"].([]any)
	if len(required) != len(props) {
		t.Errorf("strict mode needs every property required: %d required, %d properties", len(required), len(props))
	}

	action, ok := props["action"].(map[string]any)
	if !ok {
		t.Fatal("action property missing")
	}
	enum, _ := action["enum"].([]any)
	if len(enum) != 7 {
		t.Errorf("expected 7 actions in enum, got %v", enum)
	}
}

func TestParseProposal(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		want      core.ProposalAction
		expectErr bool
	}{
		{
			name:    "add",
			content: `{"action":"add","name":" Widget ","new_name":"","quantity":5,"price":2.5,"search_term":"","threshold":0,"clarification":"","confidence":0.9,"reasoning":"explicit"}`,
			want:    core.ActionAdd,
		},
		{
			name:    "low stock defaults threshold",
			content: `{"action":"low_stock_report","name":"","new_name":"","quantity":0,"price":0,"search_term":"","threshold":0,"clarification":"","confidence":0.8,"reasoning":""}`,
			want:    core.ActionLowStockReport,
		},
		{
			name:      "invalid add",
			content:   `{"action":"add","name":"Widget","quantity":-5,"price":2.5}`,
			expectErr: true,
		},
		{
			name:      "not json",
			content:   `I think you want to add a widget`,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseProposal(tt.content)
			if tt.expectErr {
				if err == nil {
					t.Fatalf("expected error, got proposal %+v", p)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Action != tt.want {
				t.Errorf("action: want %s, got %s", tt.want, p.Action)
			}
			if p.Action == core.ActionAdd && p.Name != "Widget" {
				t.Errorf("name not trimmed: %q", p.Name)
			}
			if p.Action == core.ActionLowStockReport && p.Threshold != core.DefaultLowStockThreshold {
				t.Errorf("threshold default not applied: %d", p.Threshold)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt("add 3 bolts at 0.10", "Bolt: qty 5, price 0.10")
	if !strings.Contains(prompt, "Request: add 3 bolts at 0.10") {
		t.Error("prompt does not include the request")
	}
	if !strings.Contains(prompt, "Bolt: qty 5, price 0.10") {
		t.Error("prompt does not include the inventory")
	}
}

func TestNilAgentIsUnavailable(t *testing.T) {
	var a *Agent
	_, err := a.InterpretCommand(context.Background(), "list everything", "")
	if !errors.Is(err, ErrAgentUnavailable) {
		t.Fatalf("expected ErrAgentUnavailable, got %v", err)
	}
}
