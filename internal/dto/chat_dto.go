package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatRequest struct {
	Message        string     `json:"message"`
	SearchScope    string     `json:"search_scope" validate:"omitempty,oneof=general news academic"`
	UserName       string     `json:"user_name" validate:"omitempty,max=50"`
	SelectedModel  string     `json:"selected_model" validate:"omitempty,max=64"`
	ConversationId *uuid.UUID `json:"conversation_id"`
}

type CitationResponse struct {
	Title          string  `json:"title"`
	URL            string  `json:"url"`
	Excerpt        string  `json:"excerpt,omitempty"`
	Domain         string  `json:"domain,omitempty"`
	SourceType     string  `json:"source_type,omitempty"`
	RelevanceScore float64 `json:"relevance_score"`
}

type SourceFilteringResponse struct {
	TotalSources      int    `json:"total_sources"`
	FilteredSources   int    `json:"filtered_sources"`
	FilteredCount     int    `json:"filtered_count"`
	FilterDescription string `json:"filter_description"`
}

type ChatResponse struct {
	Success         bool                     `json:"success"`
	Response        string                   `json:"response"`
	Citations       []CitationResponse       `json:"citations"`
	Timestamp       time.Time                `json:"timestamp"`
	QuestionType    string                   `json:"question_type"`
	ModelUsed       string                   `json:"model_used"`
	QualityScore    *int                     `json:"quality_score,omitempty"`
	RetryCount      *int                     `json:"retry_count,omitempty"`
	SourceFiltering *SourceFilteringResponse `json:"source_filtering,omitempty"`
	ConversationId  uuid.UUID                `json:"conversation_id"`
	ProcessingTime  float64                  `json:"processing_time"`
}

// ActivityMessage is published on the in-process bus after each exchange.
type ActivityMessage struct {
	UserId         uuid.UUID  `json:"user_id"`
	ConversationId *uuid.UUID `json:"conversation_id,omitempty"`
	OccurredAt     time.Time  `json:"occurred_at"`
}
