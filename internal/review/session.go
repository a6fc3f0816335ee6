package review

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"redline/internal/domain/models"
	reviewsvc "redline/internal/domain/services/review"
)

// Transport is one bidirectional review connection as seen by the session:
// one inbound document text per review request, a sequence of JSON-encoded
// protocol messages outbound. Both directions are suspension points; the
// session never has more than one of them in flight.
type Transport interface {
	// Receive blocks until the next inbound document text arrives.
	// An error means the connection is gone and the session must end.
	Receive(ctx context.Context) (string, error)

	// Send writes one protocol message. An error means the outbound
	// channel is broken and the session must end.
	Send(ctx context.Context, msg models.ReviewMessage) error
}

// phase tracks where the session is in its per-input cycle. Used for
// logging; transitions follow the protocol exactly.
type phase string

const (
	phaseIdle            phase = "idle"
	phaseSanitizing      phase = "sanitizing"
	phaseAwaitingModel   phase = "awaiting_model"
	phaseStreamingParse  phase = "streaming_parse"
	phaseTerminalSuccess phase = "terminal_success"
	phaseTerminalError   phase = "terminal_error"
)

const analyzingMessage = "Analyzing document..."
const malformedGenerationMessage = "Failed to generate valid suggestions"

// Session is the per-connection review state machine. It sanitizes inbound
// content, drives a streaming generation call, re-parses the accumulated
// output on every fragment, and emits protocol messages.
//
// A session is a long-lived loop, not single-shot: every new inbound message
// resets the accumulated output and restarts the cycle, regardless of how
// the previous cycle ended.
type Session struct {
	generator reviewsvc.Generator
	sanitizer *Sanitizer
	logger    *slog.Logger
	phase     phase
}

// NewSession creates a review session around a generation provider.
func NewSession(generator reviewsvc.Generator, logger *slog.Logger) *Session {
	return &Session{
		generator: generator,
		sanitizer: NewSanitizer(),
		logger:    logger,
		phase:     phaseIdle,
	}
}

// Run consumes review requests from the transport until it fails or the
// context is canceled. A Receive error (disconnect) ends the session
// regardless of the current phase; a Send error ends it too, since the
// outbound channel is confirmed broken. Any other fault is reported to the
// client and the session returns to idle for the next input.
func (s *Session) Run(ctx context.Context, transport Transport) error {
	for {
		s.phase = phaseIdle

		input, err := transport.Receive(ctx)
		if err != nil {
			s.logger.Debug("review session ended", "phase", s.phase, "error", err)
			return err
		}

		if err := s.review(ctx, transport, input); err != nil {
			s.logger.Debug("review session send failed", "phase", s.phase, "error", err)
			return err
		}
	}
}

// review runs one full cycle for one inbound document. The returned error is
// always a transport send failure; every other fault is handled in place.
func (s *Session) review(ctx context.Context, transport Transport, raw string) error {
	s.phase = phaseSanitizing
	document := s.sanitizer.PlainText(raw)

	// Nothing left after sanitization: report "no issues" without ever
	// invoking the model.
	if document == "" {
		s.phase = phaseTerminalSuccess
		return transport.Send(ctx, models.SuggestionsMessage(map[string]any{"issues": []any{}}))
	}

	if err := transport.Send(ctx, models.StatusMessage(analyzingMessage)); err != nil {
		return err
	}

	s.phase = phaseAwaitingModel

	// A disconnect cancels ctx, which aborts the in-flight stream and
	// releases its resources. Acceptance cancels it early too, so no
	// further fragments are consumed after a valid payload.
	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	events, err := s.generator.Review(streamCtx, document)
	if err != nil {
		s.logger.Error("generation call failed", "error", err)
		s.phase = phaseTerminalError
		return transport.Send(ctx, models.ErrorMessage(malformedGenerationMessage))
	}

	s.phase = phaseStreamingParse

	var accumulated strings.Builder
	for event := range events {
		if event.Err != nil {
			// Stream-level faults are tolerated mid-stream; they only
			// matter if the stream ends without a valid payload.
			s.logger.Warn("generation stream error", "error", event.Err)
			continue
		}
		if event.TextDelta == "" {
			continue
		}

		accumulated.WriteString(event.TextDelta)

		payload, ok := decodeSnapshot(accumulated.String())
		if !ok {
			// Incomplete JSON is the expected steady state while
			// fragments arrive.
			continue
		}
		if !ValidPayload(payload) {
			// A decodable but schema-invalid snapshot does not end the
			// stream; the model may still complete a valid structure.
			continue
		}

		s.phase = phaseTerminalSuccess
		cancel()
		return transport.Send(ctx, models.SuggestionsMessage(payload))
	}

	// Stream exhausted without a validator-accepted payload.
	s.phase = phaseTerminalError
	return transport.Send(ctx, models.ErrorMessage(malformedGenerationMessage))
}

// decodeSnapshot attempts a whole-structure decode of the accumulated
// buffer. Failure just means the JSON is not complete yet.
func decodeSnapshot(buf string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(buf), &v); err != nil {
		return nil, false
	}
	return v, true
}
