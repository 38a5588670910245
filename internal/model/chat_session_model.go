package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession deliberately avoids autoUpdateTime: updated_at orders the session
// list and is only bumped when a message exchange succeeds, so the service
// manages it explicitly.
type ChatSession struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"` // User ownership for data isolation
	Title     string    `gorm:"type:text;not null;default:'New Chat'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time

	// Derived in FindAllWithMessageCount, not a column.
	MessageCount int64 `gorm:"->;-:migration"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
