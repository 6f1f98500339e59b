// Package gemini answers advice requests with Google's Gemini models.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"wedding-planner/internal/advice"
	"wedding-planner/internal/models"
)

const DefaultModel = "gemini-2.5-flash-lite"

type Client struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

func (c *Client) Ask(ctx context.Context, req advice.Request) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.Persona, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, Contents(req), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return resp.Text(), nil
}

// Contents maps history plus the new turn onto Gemini contents.
// The new turn carries the image part before the text part.
func Contents(req advice.Request) []*genai.Content {
	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, turn := range req.History {
		contents = append(contents, genai.NewContentFromText(turn.Content, role(turn.Role)))
	}

	var parts []*genai.Part
	if req.Image != nil {
		parts = append(parts, genai.NewPartFromBytes(req.Image.Data, req.Image.MIMEType))
	}
	parts = append(parts, genai.NewPartFromText(req.Prompt))

	return append(contents, genai.NewContentFromParts(parts, genai.RoleUser))
}

func role(r models.Role) genai.Role {
	if r == models.RoleModel {
		return genai.RoleModel
	}
	return genai.RoleUser
}
