package entity

import (
	"time"

	"github.com/google/uuid"
)

const DefaultConversationTitle = "새 대화"

type Conversation struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	Title      string
	IsActive   bool
	IsFavorite bool
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}
