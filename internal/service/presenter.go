package service

import (
	"strings"
	"unicode/utf8"

	"ai-search-be/internal/constant"
	"ai-search-be/internal/dto"
	"ai-search-be/internal/entity"
	"ai-search-be/pkg/answer/relevance"
	"ai-search-be/pkg/llm"
)

func toCitationResponses(citations []entity.MessageCitation) []dto.CitationResponse {
	out := make([]dto.CitationResponse, 0, len(citations))
	for _, c := range citations {
		out = append(out, dto.CitationResponse{
			Title:          c.Title,
			URL:            c.URL,
			Excerpt:        c.Excerpt,
			Domain:         c.Domain,
			SourceType:     c.SourceType,
			RelevanceScore: c.RelevanceScore,
		})
	}
	return out
}

func toMessageCitations(scored []relevance.Scored) []entity.MessageCitation {
	out := make([]entity.MessageCitation, 0, len(scored))
	for _, s := range scored {
		out = append(out, entity.MessageCitation{
			Title:          s.Title,
			URL:            s.URL,
			Excerpt:        s.Excerpt,
			Domain:         s.Domain,
			SourceType:     string(s.SourceType),
			RelevanceScore: s.RelevanceScore,
		})
	}
	return out
}

func toMessageResponse(m *entity.Message) *dto.MessageResponse {
	res := &dto.MessageResponse{
		Id:           m.Id,
		Type:         m.MessageType,
		Content:      m.Content,
		QuestionType: m.QuestionType,
		ModelUsed:    m.ModelUsed,
		QualityScore: m.QualityScore,
		Timestamp:    m.CreatedAt,
	}
	if len(m.Citations) > 0 {
		res.Citations = toCitationResponses(m.Citations)
	}
	return res
}

func toConversationSummary(c *entity.Conversation) *dto.ConversationSummary {
	return &dto.ConversationSummary{
		Id:         c.Id,
		Title:      c.Title,
		IsActive:   c.IsActive,
		IsFavorite: c.IsFavorite,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// toHistory converts stored messages into model turns, oldest first.
func toHistory(messages []*entity.Message) []llm.Message {
	out := make([]llm.Message, 0, len(messages))
	for _, m := range messages {
		role := llm.RoleUser
		if m.MessageType == entity.MessageTypeAssistant {
			role = llm.RoleAssistant
		}
		out = append(out, llm.Message{Role: role, Content: m.Content})
	}
	return out
}

// titleFrom derives a conversation title from the first question.
func titleFrom(question string) string {
	title := strings.Join(strings.Fields(question), " ")
	if title == "" {
		return entity.DefaultConversationTitle
	}
	if utf8.RuneCountInString(title) <= constant.ConversationTitleMaxRunes {
		return title
	}
	runes := []rune(title)
	return string(runes[:constant.ConversationTitleMaxRunes]) + "..."
}
