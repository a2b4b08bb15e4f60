package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/model"
)

// Client implements the model.Client interface using the Gemini API.
type Client struct {
	client      *genai.Client
	model       string
	temperature float32
}

// New creates a Client for the given completion model.
func New(ctx context.Context, apiKey, modelName string, temperature float32) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{client: client, model: modelName, temperature: temperature}, nil
}

// Chat sends the conversation to Gemini and returns the reply text.
//
// Gemini does not accept system-role messages inside the conversation, so all
// system messages are folded into the request's system instruction.
func (c *Client) Chat(ctx context.Context, messages []model.Message) (string, error) {
	var system []string
	var contents []*genai.Content

	for _, m := range messages {
		switch m.Role {
		case model.RoleSystem:
			system = append(system, m.Content)
		case model.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temperature),
	}
	if len(system) > 0 {
		cfg.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("failed to call Gemini API: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", model.ErrEmptyReply
	}
	return text, nil
}

// Model returns the completion model name.
func (c *Client) Model() string {
	return c.model
}

// Temperature returns the sampling temperature.
func (c *Client) Temperature() float32 {
	return c.temperature
}
