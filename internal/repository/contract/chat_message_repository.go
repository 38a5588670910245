package contract

import (
	"context"

	"askn7-backend/internal/entity"
	"askn7-backend/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	// Create appends a message; rows are never updated afterwards.
	Create(ctx context.Context, message *entity.ChatMessage) error
	DeleteByChatSessionId(ctx context.Context, sessionId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
