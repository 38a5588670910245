package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one turn in a session. Rows are append-only: they are never
// mutated after creation, only removed when the owning session is deleted.
type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Content       string
	IsUserMessage bool
	CreatedAt     time.Time

	// DocumentsUsed is only meaningful for assistant messages; nil for user ones.
	DocumentsUsed *int
	// Sources lists the documents the answer drew on.
	Sources []uuid.UUID
}
