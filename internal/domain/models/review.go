package models

// Review protocol message types.
const (
	MessageTypeStatus      = "status"
	MessageTypeSuggestions = "suggestions"
	MessageTypeError       = "error"
)

// Review protocol statuses.
const (
	StatusProcessing = "processing"
	StatusSuccess    = "success"
	StatusError      = "error"
)

// ReviewMessage is one outbound frame on the review channel.
type ReviewMessage struct {
	Type   string `json:"type"`
	Data   any    `json:"data"`
	Status string `json:"status"`
}

// StatusMessage builds a processing-status frame.
func StatusMessage(text string) ReviewMessage {
	return ReviewMessage{
		Type:   MessageTypeStatus,
		Data:   map[string]any{"message": text},
		Status: StatusProcessing,
	}
}

// SuggestionsMessage builds a success frame carrying the validated payload.
func SuggestionsMessage(payload any) ReviewMessage {
	return ReviewMessage{
		Type:   MessageTypeSuggestions,
		Data:   payload,
		Status: StatusSuccess,
	}
}

// ErrorMessage builds a terminal error frame.
func ErrorMessage(text string) ReviewMessage {
	return ReviewMessage{
		Type:   MessageTypeError,
		Data:   map[string]any{"message": text},
		Status: StatusError,
	}
}
