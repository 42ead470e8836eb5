package specification

import (
	"gorm.io/gorm"

	"github.com/google/uuid"
)

type ByHandle struct {
	Handle string
}

func (s ByHandle) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("handle = ?", s.Handle)
}

type UserOwnedBy struct {
	UserID uuid.UUID
}

func (s UserOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}
