package review

import (
	"context"
)

// Generator defines the interface that streaming text-generation providers
// must implement. This abstraction keeps the review session independent of
// any particular provider (OpenAI, mock, etc.).
//
// The returned channel carries concatenation-ordered text fragments whose
// content is expected, but not guaranteed, to eventually form one JSON
// object. The channel is closed when the stream is exhausted or the context
// is canceled. No determinism guarantee is made about the fragments; callers
// must validate what they assemble.
type Generator interface {
	// Review starts a streaming review of the given plain-text document.
	Review(ctx context.Context, document string) (<-chan StreamEvent, error)

	// Name returns the provider name (e.g., "openai")
	Name() string
}

// StreamEvent is a single event from the generation stream: either a text
// fragment or a stream-level error. After an error event the channel closes.
type StreamEvent struct {
	TextDelta string
	Err       error
}
