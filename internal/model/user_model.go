package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Handle         string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Name           string    `gorm:"type:varchar(100);not null;default:'사용자'"`
	SearchScope    string    `gorm:"type:varchar(20);not null;default:'general'"`
	Theme          string    `gorm:"type:varchar(20);not null;default:'light'"`
	PreferredModel string    `gorm:"type:varchar(50);not null;default:'sonar-pro'"`
	LastActive     time.Time `gorm:"index"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
