package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChatSessionID struct {
	ChatSessionID uuid.UUID
}

func (s ByChatSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.ChatSessionID)
}

// ProcessingCompleted narrows documents to those ready to serve as context.
type ProcessingCompleted struct{}

func (s ProcessingCompleted) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("processing_status = ?", "completed")
}
