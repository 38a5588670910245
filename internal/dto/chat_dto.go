package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Title string `json:"title"`
}

type SessionResponse struct {
	Id           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int64     `json:"message_count"`
}

type MessageResponse struct {
	Id            uuid.UUID   `json:"id"`
	Content       string      `json:"content"`
	IsUserMessage bool        `json:"is_user_message"`
	CreatedAt     time.Time   `json:"created_at"`
	DocumentsUsed *int        `json:"documents_used,omitempty"`
	Sources       []uuid.UUID `json:"sources,omitempty"`
}

type SessionWithMessagesResponse struct {
	Id           uuid.UUID          `json:"id"`
	Title        string             `json:"title"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	MessageCount int64              `json:"message_count"`
	Messages     []*MessageResponse `json:"messages"`
}

type RenameSessionRequest struct {
	Title string `json:"title" validate:"required"`
}

type SendMessageRequest struct {
	Content  string `json:"content" validate:"required"`
	Language string `json:"language"`
	Model    string `json:"model"`
}

type SendMessageResponse struct {
	UserMessage *MessageResponse `json:"user_message"`
	AiResponse  *MessageResponse `json:"ai_response"`
}
