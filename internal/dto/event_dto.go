package dto

import (
	"time"

	"askn7-backend/pkg/events"

	"github.com/google/uuid"
)

const ChatMessageSentEventType = "CHAT_MESSAGE_SENT"

// ChatMessageSentEvent is published after a successful message exchange.
// Consumers must tolerate replays; the payload is informational only.
type ChatMessageSentEvent struct {
	SessionId     uuid.UUID `json:"session_id"`
	UserId        uuid.UUID `json:"user_id"`
	UserMessageId uuid.UUID `json:"user_message_id"`
	AiMessageId   uuid.UUID `json:"ai_message_id"`
	DocumentsUsed int       `json:"documents_used"`
	Model         string    `json:"model"`
	SentAt        time.Time `json:"sent_at"`
}

var _ events.Event = ChatMessageSentEvent{}

func (e ChatMessageSentEvent) EventType() string {
	return ChatMessageSentEventType
}

func (e ChatMessageSentEvent) OccurredAt() time.Time {
	return e.SentAt
}
