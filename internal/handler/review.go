package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"redline/internal/config"
	"redline/internal/domain/models"
	reviewsvc "redline/internal/domain/services/review"
	"redline/internal/review"
)

const wsWriteTimeout = 5 * time.Second

// ReviewHandler upgrades connections on the review channel and runs one
// review session per connection. Sessions share nothing but the generator,
// which is safe for concurrent use.
type ReviewHandler struct {
	generator      reviewsvc.Generator
	originPatterns []string
	logger         *slog.Logger
}

// NewReviewHandler creates a new review websocket handler. originPatterns
// are host patterns authorized for cross-origin upgrades.
func NewReviewHandler(generator reviewsvc.Generator, originPatterns []string, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		generator:      generator,
		originPatterns: originPatterns,
		logger:         logger,
	}
}

// HandleWS upgrades the request and drives the session loop until the
// client disconnects.
// GET /review
func (h *ReviewHandler) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		h.logger.Error("websocket accept failed", "error", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "session ended")

	conn.SetReadLimit(config.MaxReviewInputLength)

	sessionID := uuid.NewString()
	logger := h.logger.With("session_id", sessionID)
	logger.Info("review session started", "remote", r.RemoteAddr)

	// The request context is canceled when the connection drops, which
	// aborts any in-flight generation stream.
	session := review.NewSession(h.generator, logger)
	err = session.Run(r.Context(), &wsTransport{conn: conn})

	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		logger.Info("review session closed")
	default:
		logger.Info("review session ended", "error", err)
	}

	conn.Close(websocket.StatusNormalClosure, "")
}

// wsTransport adapts a websocket connection to the session Transport:
// one inbound text frame per review request, one JSON message per outbound
// frame.
type wsTransport struct {
	conn *websocket.Conn
}

func (t *wsTransport) Receive(ctx context.Context) (string, error) {
	_, data, err := t.conn.Read(ctx)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (t *wsTransport) Send(ctx context.Context, msg models.ReviewMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	writeCtx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
	defer cancel()
	return t.conn.Write(writeCtx, websocket.MessageText, payload)
}
