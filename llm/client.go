package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/FaizanInstinct/bytebuddy-chat/logger"
)

// FallbackTitle is returned whenever title generation fails.
const FallbackTitle = "New Conversation"

const systemPrompt = "You are ByteBuddy, a helpful and friendly AI assistant. " +
	"You provide accurate, helpful, and engaging responses. " +
	"Keep your responses conversational and informative."

const titlePrompt = "Generate a short, descriptive title (max 6 words) for this " +
	"conversation based on the first few messages. Return only the title, no quotes or extra text."

const intentPrompt = "Analyze the user message and return the intent category. " +
	"Categories: greeting, question, request, complaint, compliment, goodbye, other. " +
	"Return only the category name."

var validIntents = map[string]bool{
	"greeting":   true,
	"question":   true,
	"request":    true,
	"complaint":  true,
	"compliment": true,
	"goodbye":    true,
	"other":      true,
}

// Client generates replies, titles and intent labels through an
// OpenAI-compatible chat completion API.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient creates a generation client. baseURL may be empty to use the
// default OpenAI endpoint.
func NewClient(apiKey, baseURL, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(cfg),
		model: model,
	}
}

// GenerateReply produces the assistant's reply for the given history. A single
// remote call, no retries; the caller surfaces failures as a generic error.
func (c *Client) GenerateReply(ctx context.Context, history []ContextMessage) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, m := range history {
		content := m.Content
		if m.ImageURL != nil {
			content += fmt.Sprintf("\n\nPlease analyze the image at: %s", *m.ImageURL)
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: content,
		})
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   1000,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("failed to generate response: empty completion")
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateTitle produces a short conversation title from the seed text.
// Title generation is best-effort and must never block the primary reply, so
// failures fall back to a fixed title.
func (c *Client) GenerateTitle(ctx context.Context, seed string) string {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: titlePrompt},
			{Role: openai.ChatMessageRoleUser, Content: seed},
		},
		MaxTokens:   20,
		Temperature: 0.5,
	})
	if err != nil || len(resp.Choices) == 0 {
		logger.L.Warn("title generation failed", "error", err)
		return FallbackTitle
	}
	title := strings.Trim(strings.TrimSpace(resp.Choices[0].Message.Content), `"'`)
	if title == "" {
		return FallbackTitle
	}
	return title
}

// ClassifyIntent maps the text onto the closed intent set. Failures and
// out-of-set answers are reported as "other".
func (c *Client) ClassifyIntent(ctx context.Context, text string) string {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: intentPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		MaxTokens:   10,
		Temperature: 0.1,
	})
	if err != nil || len(resp.Choices) == 0 {
		logger.L.Warn("intent analysis failed", "error", err)
		return "other"
	}
	category := strings.ToLower(strings.TrimSpace(resp.Choices[0].Message.Content))
	if !validIntents[category] {
		return "other"
	}
	return category
}
