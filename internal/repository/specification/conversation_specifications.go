package specification

import (
	"strings"

	"ai-search-be/internal/repository/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByConversationID struct {
	ConversationID uuid.UUID
}

func (s ByConversationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("conversation_id = ?", s.ConversationID)
}

// TitleContains is a case-insensitive title search. Blank terms match everything.
type TitleContains struct {
	Term string
}

func (s TitleContains) Apply(db *gorm.DB) *gorm.DB {
	term := strings.TrimSpace(s.Term)
	if term == "" {
		return db
	}
	return db.Where("title ILIKE ?", "%"+escapeLike(term)+"%")
}

type IsFavorite struct {
	Value bool
}

func (s IsFavorite) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_favorite = ?", s.Value)
}

type IsActive struct{}

func (s IsActive) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

type Chronological struct{}

func (s Chronological) Apply(db *gorm.DB) *gorm.DB {
	return scope.OrderByCreatedAsc(db)
}

type NewestFirst struct{}

func (s NewestFirst) Apply(db *gorm.DB) *gorm.DB {
	return scope.OrderByCreatedDesc(db)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
