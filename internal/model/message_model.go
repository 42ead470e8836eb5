package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Message struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConversationId uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserId         uuid.UUID      `gorm:"type:uuid;not null;index"`
	Content        string         `gorm:"type:text;not null"`
	MessageType    string         `gorm:"type:varchar(20);not null"`
	QuestionType   string         `gorm:"type:varchar(50)"`
	Citations      datatypes.JSON `gorm:"type:jsonb"`
	SearchScope    string         `gorm:"type:varchar(20)"`
	ModelUsed      string         `gorm:"type:varchar(50)"`
	QualityScore   *int
	RetryCount     int       `gorm:"default:0"`
	ProcessingTime float64   `gorm:"default:0"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index"`
}

func (Message) TableName() string {
	return "messages"
}
