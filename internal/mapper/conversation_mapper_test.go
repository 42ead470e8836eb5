package mapper

import (
	"testing"
	"time"

	"ai-search-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRoundTripKeepsCitations(t *testing.T) {
	m := NewConversationMapper()
	score := 82
	msg := &entity.Message{
		Id:             uuid.New(),
		ConversationId: uuid.New(),
		UserId:         uuid.New(),
		Content:        "답변",
		MessageType:    entity.MessageTypeAssistant,
		QuestionType:   "realtime",
		Citations: []entity.MessageCitation{
			{Title: "기사", URL: "https://news.naver.com/1", Domain: "news.naver.com", SourceType: "news", RelevanceScore: 86.2},
		},
		QualityScore: &score,
		RetryCount:   1,
		CreatedAt:    time.Now(),
	}

	back := m.MessageToEntity(m.MessageToModel(msg))

	require.Len(t, back.Citations, 1)
	assert.Equal(t, msg.Citations[0], back.Citations[0])
	assert.Equal(t, 82, *back.QualityScore)
	assert.Equal(t, 1, back.RetryCount)
}

func TestMessageWithoutCitations(t *testing.T) {
	m := NewConversationMapper()

	model := m.MessageToModel(&entity.Message{Content: "질문", MessageType: entity.MessageTypeUser})
	assert.Nil(t, model.Citations)

	back := m.MessageToEntity(model)
	assert.NotNil(t, back.Citations)
	assert.Empty(t, back.Citations)
}

func TestConversationSoftDelete(t *testing.T) {
	m := NewConversationMapper()

	model := m.ConversationToModel(&entity.Conversation{Id: uuid.New(), Title: "t", IsDeleted: true})
	assert.True(t, model.DeletedAt.Valid)

	back := m.ConversationToEntity(model)
	assert.True(t, back.IsDeleted)
	assert.NotNil(t, back.DeletedAt)
}
