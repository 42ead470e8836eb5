package contract

import (
	"context"
	"time"

	"ai-search-be/internal/entity"
	"ai-search-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// TouchLastActive bumps last_active without a read-modify-write cycle
	TouchLastActive(ctx context.Context, id uuid.UUID, at time.Time) error
}
