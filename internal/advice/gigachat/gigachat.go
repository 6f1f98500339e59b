// Package gigachat answers advice requests with Sber's GigaChat.
//
// GigaChat receives the transcript folded into a single user message and
// does not see attached images; image turns are answered from text alone.
package gigachat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Role1776/gigago"
	"github.com/rs/zerolog"

	"wedding-planner/internal/advice"
	"wedding-planner/internal/models"
)

const modelName = "GigaChat"

type Config struct {
	APIKey             string
	Scope              string
	InsecureSkipVerify bool
}

type Client struct {
	client *gigago.Client
	model  *gigago.GenerativeModel
	log    zerolog.Logger
}

func New(ctx context.Context, cfg Config, persona string, log zerolog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gigachat api key is required")
	}

	opts := []gigago.Option{}
	if cfg.Scope != "" {
		opts = append(opts, gigago.WithCustomScope(cfg.Scope))
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		log.Warn().Msg("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SystemInstruction = persona
	model.Temperature = 0.7

	return &Client{client: client, model: model, log: log}, nil
}

func (c *Client) Ask(ctx context.Context, req advice.Request) (string, error) {
	if req.Image != nil {
		c.log.Debug().Str("mime", req.Image.MIMEType).Msg("GigaChat backend ignores attached image")
	}

	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: Prompt(req)},
	}

	resp, err := c.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from GigaChat")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) Close() {
	c.client.Close()
}

// Prompt folds prior turns and the new message into one text block
func Prompt(req advice.Request) string {
	if len(req.History) == 0 {
		return req.Prompt
	}

	var sb strings.Builder
	sb.WriteString("Conversation so far:\n")
	for _, turn := range req.History {
		who := "Client"
		if turn.Role == models.RoleModel {
			who = "Planner"
		}
		fmt.Fprintf(&sb, "%s: %s\n", who, turn.Content)
	}
	sb.WriteString("\nClient: ")
	sb.WriteString(req.Prompt)
	return sb.String()
}
