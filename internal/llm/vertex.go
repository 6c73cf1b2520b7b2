package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// VertexClient implements Client for Gemini models served by Vertex AI
type VertexClient struct {
	client *genai.Client
	model  string
}

// NewVertexClient creates a client for project/location. Credentials come
// from the environment (application default credentials).
func NewVertexClient(ctx context.Context, project, location, model string) (*VertexClient, error) {
	if project == "" {
		return nil, fmt.Errorf("vertex project is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  project,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}

	return &VertexClient{client: client, model: model}, nil
}

// GenerateStructured sends req as a single JSON-mode call
func (c *VertexClient) GenerateStructured(ctx context.Context, req StructuredRequest) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(req.Temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   toVertexSchema(req.Schema),
	}
	if req.SystemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text parts in response")
	}
	return CleanJSONBlock(text), nil
}

// Model returns the model name
func (c *VertexClient) Model() string {
	return c.model
}

// Close is a no-op; the Vertex client holds no long-lived connections
func (c *VertexClient) Close() error {
	return nil
}

var vertexTypes = map[Type]genai.Type{
	TypeObject:  genai.TypeObject,
	TypeArray:   genai.TypeArray,
	TypeString:  genai.TypeString,
	TypeInteger: genai.TypeInteger,
	TypeNumber:  genai.TypeNumber,
	TypeBoolean: genai.TypeBoolean,
}

func toVertexSchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:             vertexTypes[s.Type],
		Description:      s.Description,
		Items:            toVertexSchema(s.Items),
		Required:         s.Required,
		PropertyOrdering: s.PropertyOrder,
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toVertexSchema(prop)
		}
	}
	return out
}
