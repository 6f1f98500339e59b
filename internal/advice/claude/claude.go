// Package claude answers advice requests with Anthropic's Messages API.
package claude

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"wedding-planner/internal/advice"
	"wedding-planner/internal/models"
)

const (
	DefaultModel     = "claude-haiku-4-5"
	defaultMaxTokens = 1024
)

type Client struct {
	client anthropic.Client
	model  string
}

func New(apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic api key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{client: anthropic.NewClient(option.WithAPIKey(apiKey)), model: model}, nil
}

func (c *Client) Ask(ctx context.Context, req advice.Request) (string, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: defaultMaxTokens,
		System:    []anthropic.TextBlockParam{{Text: req.Persona}},
		Messages:  Messages(req),
	})
	if err != nil {
		return "", fmt.Errorf("messages api call: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		sb.WriteString(block.Text)
	}
	return sb.String(), nil
}

// Messages converts the request into a conversation that starts with a
// user turn and alternates roles. Leading model turns (the greeting) are
// dropped and consecutive turns of the same role are merged.
func Messages(req advice.Request) []anthropic.MessageParam {
	var (
		messages []anthropic.MessageParam
		role     models.Role
		buf      []string
	)

	flush := func() {
		if len(buf) == 0 {
			return
		}
		text := strings.Join(buf, "\n\n")
		if role == models.RoleModel {
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(text)))
		} else {
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(text)))
		}
		buf = nil
	}

	for _, turn := range req.History {
		if len(messages) == 0 && len(buf) == 0 && turn.Role == models.RoleModel {
			continue
		}
		if turn.Role != role {
			flush()
			role = turn.Role
		}
		buf = append(buf, turn.Content)
	}

	if role != models.RoleUser {
		flush()
	}
	// pending user turns merge into the final one
	text := strings.Join(append(buf, req.Prompt), "\n\n")
	return append(messages, anthropic.NewUserMessage(finalBlocks(req, text)...))
}

func finalBlocks(req advice.Request, text string) []anthropic.ContentBlockParamUnion {
	var blocks []anthropic.ContentBlockParamUnion
	if req.Image != nil {
		blocks = append(blocks, anthropic.NewImageBlockBase64(req.Image.MIMEType, req.Image.Base64()))
	}
	return append(blocks, anthropic.NewTextBlock(text))
}
