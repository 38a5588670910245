package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatMessage struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Content       string         `gorm:"type:text;not null"`
	IsUserMessage bool           `gorm:"not null;default:true"`
	CreatedAt     time.Time      `gorm:"autoCreateTime;index"`
	DocumentsUsed *int
	Sources       datatypes.JSON `gorm:"type:jsonb"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
