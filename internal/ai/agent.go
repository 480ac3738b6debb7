package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"

	"inventory-manager/internal/core"
)

// ErrAgentUnavailable is returned when no API key is configured.
var ErrAgentUnavailable = errors.New("command interpreter is not configured")

// CommandInterpreter turns a free-text request into an inventory proposal.
type CommandInterpreter interface {
	InterpretCommand(ctx context.Context, text string, inventorySummary string) (*core.Proposal, error)
}

type Agent struct {
	client *openai.Client
	model  shared.ResponsesModel
}

// NewAgent returns an Agent for the given key. An empty model selects GPT-4o.
func NewAgent(apiKey, model string) *Agent {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	m := shared.ResponsesModel(shared.ChatModelGPT4o)
	if strings.TrimSpace(model) != "" {
		m = shared.ResponsesModel(model)
	}
	return &Agent{client: &client, model: m}
}

func (a *Agent) InterpretCommand(ctx context.Context, text string, inventorySummary string) (*core.Proposal, error) {
	if a == nil || a.client == nil {
		return nil, ErrAgentUnavailable
	}

	prompt := buildPrompt(text, inventorySummary)

	schemaMap, err := proposalSchema()
	if err != nil {
		return nil, err
	}

	params := responses.ResponseNewParams{
		Model: a.model,
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "inventory_command_proposal",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("A single inventory operation interpreted from the user's request"),
				},
			},
		},
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return nil, fmt.Errorf("empty response content")
	}

	return ParseProposal(content)
}

// ParseProposal decodes, normalizes and validates a model reply.
func ParseProposal(content string) (*core.Proposal, error) {
	var proposal core.Proposal
	if err := json.Unmarshal([]byte(content), &proposal); err != nil {
		return nil, fmt.Errorf("failed to parse completion: %w", err)
	}

	proposal.Normalize()
	if err := proposal.Validate(); err != nil {
		return nil, fmt.Errorf("proposal validation failed: %w", err)
	}
	return &proposal, nil
}

func buildPrompt(text, inventorySummary string) string {
	return fmt.Sprintf(`You manage a small stock inventory of items, each with a name, a quantity and a unit price.
Interpret the user's request as exactly ONE inventory operation.
Rules:
1. For update, remove and search, use item names exactly as they appear in the current inventory.
2. For 'add', quantity is the amount to add to stock. For 'update', quantity and price are the new values.
3. Quantities and prices are never negative.
4. If the request is ambiguous or names an item that does not exist for update/remove, use 'clarify' and ask one question.
5. Provide a confidence score (0.0-1.0).
6. Explain your reasoning briefly.

Current inventory:
%s

Request: %s`, inventorySummary, text)
}

func proposalSchema() (map[string]any, error) {
	schemaJSON, err := json.Marshal(generateSchema())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}
	return schemaMap, nil
}

func generateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v core.Proposal
	return reflector.Reflect(v)
}
