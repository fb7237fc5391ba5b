// Package completion forwards chat-completion requests to the Anthropic
// Messages API and hands back the raw response.
package completion

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"

	"github.com/oisee/gridbridge/pkg/grid"
)

const (
	// DefaultModel is used when neither the request nor the config names one.
	DefaultModel = "claude-sonnet-4-5"
	// DefaultMaxTokens is used when the request does not set max_tokens.
	DefaultMaxTokens = 1024
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one conversation turn.
type Message struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

// Request is a chat-completion request.
type Request struct {
	Model     string    `json:"model,omitempty"`
	Messages  []Message `json:"messages" validate:"required,min=1,dive"`
	MaxTokens int64     `json:"max_tokens,omitempty" validate:"gte=0"`
	System    string    `json:"system,omitempty"`
}

// Config configures a Client.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string // empty means the SDK default
	Logger  zerolog.Logger
}

// Client calls the Messages API.
type Client struct {
	api    anthropic.Client
	model  string
	logger zerolog.Logger
}

// New creates a Client. The SDK's own retries are disabled so a failed call
// is reported once.
func New(cfg Config) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		api:    anthropic.NewClient(opts...),
		model:  model,
		logger: cfg.Logger,
	}
}

// Complete sends req and returns the completion JSON exactly as received.
func (c *Client) Complete(ctx context.Context, req Request) (json.RawMessage, error) {
	if err := grid.Validate(&req); err != nil {
		return nil, err
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: DefaultMaxTokens,
		Messages:  make([]anthropic.MessageParam, 0, len(req.Messages)),
	}
	if req.Model != "" {
		params.Model = anthropic.Model(req.Model)
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = req.MaxTokens
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	for _, m := range req.Messages {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == RoleAssistant {
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(block))
		} else {
			params.Messages = append(params.Messages, anthropic.NewUserMessage(block))
		}
	}

	c.logger.Debug().Str("model", string(params.Model)).Int("messages", len(req.Messages)).Msg("completion request")
	msg, err := c.api.Messages.New(ctx, params)
	if err != nil {
		return nil, completionError(err)
	}
	return json.RawMessage(msg.RawJSON()), nil
}

func completionError(err error) error {
	remote := &grid.RemoteOperationError{Op: "completion", Message: err.Error(), Err: err}
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		remote.StatusCode = apiErr.StatusCode
	}
	return remote
}
