package dto

import (
	"time"

	"github.com/google/uuid"
)

type MessageResponse struct {
	Id           uuid.UUID          `json:"id"`
	Type         string             `json:"type"`
	Content      string             `json:"content"`
	Citations    []CitationResponse `json:"citations,omitempty"`
	QuestionType string             `json:"question_type,omitempty"`
	ModelUsed    string             `json:"model_used,omitempty"`
	QualityScore *int               `json:"quality_score,omitempty"`
	Timestamp    time.Time          `json:"timestamp"`
}

type ConversationHistoryResponse struct {
	ConversationId *uuid.UUID         `json:"conversation_id"`
	Title          string             `json:"title"`
	Conversation   []*MessageResponse `json:"conversation"`
}

type ConversationSummary struct {
	Id         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	IsActive   bool       `json:"is_active"`
	IsFavorite bool       `json:"is_favorite"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

type ListConversationsRequest struct {
	Page    int    `query:"page" validate:"omitempty,min=1"`
	PerPage int    `query:"per_page" validate:"omitempty,min=1,max=100"`
	Query   string `query:"q" validate:"omitempty,max=100"`
}

type PaginationResponse struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

type ListConversationsResponse struct {
	Favorites  []*ConversationSummary `json:"favorites"`
	Recent     []*ConversationSummary `json:"recent"`
	Pagination PaginationResponse     `json:"pagination"`
}

type ToggleFavoriteResponse struct {
	Id         uuid.UUID `json:"id"`
	IsFavorite bool      `json:"is_favorite"`
}
