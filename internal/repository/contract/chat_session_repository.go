package contract

import (
	"context"

	"askn7-backend/internal/entity"
	"askn7-backend/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	Update(ctx context.Context, session *entity.ChatSession) error
	// Delete removes the row for good. Cascades are explicit: callers delete
	// the session's messages in the same transaction.
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error)
	// FindAllWithMessageCount returns the owner's sessions ordered by
	// updated_at desc, each with its derived message count.
	FindAllWithMessageCount(ctx context.Context, userId uuid.UUID) ([]*entity.ChatSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
