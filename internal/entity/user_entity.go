// FILE: internal/entity/user_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultUserName       = "사용자"
	DefaultSearchScope    = "general"
	DefaultTheme          = "light"
	DefaultPreferredModel = "sonar-pro"
)

// User is an anonymous per-browser profile identified by an opaque handle.
type User struct {
	Id             uuid.UUID
	Handle         string
	Name           string
	SearchScope    string
	Theme          string
	PreferredModel string
	LastActive     time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewUser(handle string) *User {
	now := time.Now()
	return &User{
		Id:             uuid.New(),
		Handle:         handle,
		Name:           DefaultUserName,
		SearchScope:    DefaultSearchScope,
		Theme:          DefaultTheme,
		PreferredModel: DefaultPreferredModel,
		LastActive:     now,
		CreatedAt:      now,
	}
}
