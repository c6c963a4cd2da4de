// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"

	"github.com/pdiddy/litreview/pkg/types"
)

// AnthropicClient implements Client using the official anthropic-sdk-go.
type AnthropicClient struct {
	client    sdk.Client
	model     string
	maxTokens int64
}

// NewAnthropicClient creates a Client for one model configuration. The
// per-call timeout comes from the caller so analysis and synthesis can share
// a client while keeping their own deadlines.
func NewAnthropicClient(cfg types.ModelConfig) *AnthropicClient {
	return &AnthropicClient{
		client:    sdk.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     cfg.Model,
		maxTokens: int64(cfg.MaxTokens),
	}
}

func (c *AnthropicClient) Generate(ctx context.Context, prompt string, timeout time.Duration) (Result, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	msg, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return Result{}, eris.Wrap(err, "anthropic: create message")
	}

	if string(msg.StopReason) == "refusal" {
		return Result{Blocked: true, BlockReason: "refusal"}, nil
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return Result{Text: b.String()}, nil
}
