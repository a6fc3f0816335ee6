package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"

	goopenai "github.com/sashabaranov/go-openai"

	reviewsvc "redline/internal/domain/services/review"
)

// ClientConfig holds everything the provider needs. Construction fails fast
// when credentials are absent; there is no module-level fallback.
type ClientConfig struct {
	APIKey       string
	Model        string
	SystemPrompt string
	// ErrorProbability injects a random stream fault with the given
	// probability per fragment. Off at 0; dev-only chaos knob.
	ErrorProbability float64
}

// Client streams patent-review completions from the OpenAI chat API.
// It implements the review.Generator interface.
type Client struct {
	client           *goopenai.Client
	model            string
	systemPrompt     string
	errorProbability float64
	logger           *slog.Logger
}

var errInjectedFault = errors.New("injected stream fault")

// New creates an OpenAI review provider.
func New(cfg ClientConfig, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" || cfg.Model == "" {
		return nil, fmt.Errorf("openai provider: both API key and model need to be set")
	}
	if cfg.SystemPrompt == "" {
		return nil, fmt.Errorf("openai provider: system prompt is required")
	}

	logger.Info("initializing openai review provider", "model", cfg.Model)

	return &Client{
		client:           goopenai.NewClient(cfg.APIKey),
		model:            cfg.Model,
		systemPrompt:     cfg.SystemPrompt,
		errorProbability: cfg.ErrorProbability,
		logger:           logger,
	}, nil
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "openai"
}

// Review starts a streaming chat completion for the given plain-text
// document. Fragments are forwarded on the returned channel in arrival
// order; a stream-level error is forwarded once and then the channel closes.
// Canceling ctx aborts the stream.
func (c *Client) Review(ctx context.Context, document string) (<-chan reviewsvc.StreamEvent, error) {
	req := goopenai.ChatCompletionRequest{
		Model: c.model,
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: c.systemPrompt},
			{Role: goopenai.ChatMessageRoleUser, Content: document},
		},
		Stream: true,
	}

	stream, err := c.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create completion stream: %w", err)
	}

	events := make(chan reviewsvc.StreamEvent, 16)

	go func() {
		defer close(events)
		defer stream.Close()

		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				if ctx.Err() != nil {
					// Caller stopped consuming; not a stream fault.
					return
				}
				c.forward(ctx, events, reviewsvc.StreamEvent{Err: fmt.Errorf("receive fragment: %w", err)})
				return
			}

			if c.errorProbability > 0 && rand.Float64() < c.errorProbability {
				c.logger.Warn("injecting stream fault", "probability", c.errorProbability)
				c.forward(ctx, events, reviewsvc.StreamEvent{Err: errInjectedFault})
				return
			}

			if len(resp.Choices) == 0 {
				continue
			}
			delta := resp.Choices[0].Delta.Content
			if delta == "" {
				continue
			}

			if !c.forward(ctx, events, reviewsvc.StreamEvent{TextDelta: delta}) {
				return
			}
		}
	}()

	return events, nil
}

// forward delivers one event unless the consumer is gone.
func (c *Client) forward(ctx context.Context, events chan<- reviewsvc.StreamEvent, event reviewsvc.StreamEvent) bool {
	select {
	case events <- event:
		return true
	case <-ctx.Done():
		return false
	}
}
