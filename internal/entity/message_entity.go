package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	MessageTypeUser      = "user"
	MessageTypeAssistant = "assistant"
)

// MessageCitation is a citation as stored with an assistant message.
type MessageCitation struct {
	Title          string  `json:"title"`
	URL            string  `json:"url"`
	Excerpt        string  `json:"excerpt,omitempty"`
	Domain         string  `json:"domain,omitempty"`
	SourceType     string  `json:"source_type,omitempty"`
	RelevanceScore float64 `json:"relevance_score"`
}

type Message struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	UserId         uuid.UUID
	Content        string
	MessageType    string
	QuestionType   string
	Citations      []MessageCitation
	SearchScope    string
	ModelUsed      string
	QualityScore   *int
	RetryCount     int
	ProcessingTime float64 // seconds
	CreatedAt      time.Time
}
