package contract

import (
	"context"
	"time"

	"ai-search-be/internal/entity"
	"ai-search-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	Update(ctx context.Context, conversation *entity.Conversation) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// DeactivateAllByUserId clears is_active on every conversation of the user
	DeactivateAllByUserId(ctx context.Context, userId uuid.UUID) error
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error
}
