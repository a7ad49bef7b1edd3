// Package gemini adapts the Google Gen AI API behind the LLMPort contract.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"webpilot/internal/application/port/output"
	"webpilot/internal/domain/entity"
)

var _ output.LLMPort = (*Adapter)(nil)

type Adapter struct {
	client *genai.Client
	model  string
	logger output.LoggerPort
}

type Config struct {
	APIKey string
	Model  string
	Logger output.LoggerPort
}

func New(ctx context.Context, cfg Config) (*Adapter, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	return &Adapter{
		client: client,
		model:  cfg.Model,
		logger: cfg.Logger,
	}, nil
}

func (a *Adapter) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	system, contents := buildContents(req.Messages)

	genCfg := &genai.GenerateContentConfig{}
	if req.Temperature > 0 {
		genCfg.Temperature = genai.Ptr(req.Temperature)
	}
	if system != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if tools := buildTools(req.Tools); tools != nil {
		genCfg.Tools = tools
	}

	if a.logger != nil {
		a.logger.Debug("GenerateContent request", "model", a.model, "contents", len(contents), "tools", len(req.Tools))
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, genCfg)
	if err != nil {
		return nil, fmt.Errorf("generate content failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no candidates in response")
	}

	return &output.ChatResponse{
		Message: convertCandidate(resp.Candidates[0]),
	}, nil
}

func buildContents(msgs []entity.Message) (string, []*genai.Content) {
	var system string
	var contents []*genai.Content

	for _, msg := range msgs {
		switch msg.Role {
		case entity.RoleSystem:
			system = msg.Content

		case entity.RoleUser:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))

		case entity.RoleAssistant:
			var parts []*genai.Part
			if msg.Content != "" {
				parts = append(parts, genai.NewPartFromText(msg.Content))
			}
			for _, tc := range msg.ToolCalls {
				var args map[string]any
				if err := json.Unmarshal([]byte(tc.Arguments), &args); err != nil {
					args = map[string]any{}
				}
				parts = append(parts, genai.NewPartFromFunctionCall(tc.Name, args))
			}
			if len(parts) > 0 {
				contents = append(contents, genai.NewContentFromParts(parts, genai.RoleModel))
			}

		case entity.RoleTool:
			part := genai.NewPartFromFunctionResponse(msg.Name, map[string]any{
				"output": msg.Content,
			})
			contents = append(contents, genai.NewContentFromParts([]*genai.Part{part}, genai.RoleUser))
		}
	}

	return system, contents
}

func buildTools(tools []entity.ToolDefinition) []*genai.Tool {
	if len(tools) == 0 {
		return nil
	}

	declarations := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		declarations = append(declarations, &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  toSchema(t.Parameters),
		})
	}

	return []*genai.Tool{{FunctionDeclarations: declarations}}
}

// toSchema converts a JSON-schema map (the ToolDefinition parameter shape)
// to Gemini's typed Schema.
func toSchema(schemaMap map[string]interface{}) *genai.Schema {
	if schemaMap == nil {
		return nil
	}

	schema := &genai.Schema{}

	if t, ok := schemaMap["type"].(string); ok {
		schema.Type = genai.Type(strings.ToUpper(t))
	}
	if desc, ok := schemaMap["description"].(string); ok {
		schema.Description = desc
	}
	if enum, ok := schemaMap["enum"].([]string); ok {
		schema.Enum = append(schema.Enum, enum...)
	}
	if props, ok := schemaMap["properties"].(map[string]interface{}); ok {
		schema.Properties = make(map[string]*genai.Schema)
		for name, prop := range props {
			if propMap, ok := prop.(map[string]interface{}); ok {
				schema.Properties[name] = toSchema(propMap)
			}
		}
	}
	if required, ok := schemaMap["required"].([]string); ok {
		schema.Required = append(schema.Required, required...)
	}
	if items, ok := schemaMap["items"].(map[string]interface{}); ok {
		schema.Items = toSchema(items)
	}

	return schema
}

func convertCandidate(candidate *genai.Candidate) entity.Message {
	result := entity.Message{Role: entity.RoleAssistant}

	for i, part := range candidate.Content.Parts {
		if part.Text != "" {
			result.Content += part.Text
		}
		if part.FunctionCall != nil {
			args, err := json.Marshal(part.FunctionCall.Args)
			if err != nil {
				args = []byte("{}")
			}
			id := part.FunctionCall.ID
			if id == "" {
				id = fmt.Sprintf("%s-%d", part.FunctionCall.Name, i)
			}
			result.ToolCalls = append(result.ToolCalls, entity.ToolCall{
				ID:        id,
				Name:      part.FunctionCall.Name,
				Arguments: string(args),
			})
		}
	}

	return result
}
