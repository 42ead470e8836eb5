package mapper

import (
	"encoding/json"
	"time"

	"ai-search-be/internal/entity"
	"ai-search-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

// Conversation Mappers

func (m *ConversationMapper) ConversationToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}

	var deletedAt *time.Time
	if c.DeletedAt.Valid {
		t := c.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Conversation{
		Id:         c.Id,
		UserId:     c.UserId,
		Title:      c.Title,
		IsActive:   c.IsActive,
		IsFavorite: c.IsFavorite,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
		IsDeleted:  c.DeletedAt.Valid,
	}
}

func (m *ConversationMapper) ConversationToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if c.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *c.DeletedAt, Valid: true}
	} else if c.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Conversation{
		Id:         c.Id,
		UserId:     c.UserId,
		Title:      c.Title,
		IsActive:   c.IsActive,
		IsFavorite: c.IsFavorite,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
	}
}

// Message Mappers

func (m *ConversationMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}

	citations := []entity.MessageCitation{}
	if len(msg.Citations) > 0 {
		// Rows with unreadable citations still load, without sources
		_ = json.Unmarshal(msg.Citations, &citations)
	}

	return &entity.Message{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		UserId:         msg.UserId,
		Content:        msg.Content,
		MessageType:    msg.MessageType,
		QuestionType:   msg.QuestionType,
		Citations:      citations,
		SearchScope:    msg.SearchScope,
		ModelUsed:      msg.ModelUsed,
		QualityScore:   msg.QualityScore,
		RetryCount:     msg.RetryCount,
		ProcessingTime: msg.ProcessingTime,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *ConversationMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}

	var citations datatypes.JSON
	if len(msg.Citations) > 0 {
		raw, err := json.Marshal(msg.Citations)
		if err == nil {
			citations = datatypes.JSON(raw)
		}
	}

	return &model.Message{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		UserId:         msg.UserId,
		Content:        msg.Content,
		MessageType:    msg.MessageType,
		QuestionType:   msg.QuestionType,
		Citations:      citations,
		SearchScope:    msg.SearchScope,
		ModelUsed:      msg.ModelUsed,
		QualityScore:   msg.QualityScore,
		RetryCount:     msg.RetryCount,
		ProcessingTime: msg.ProcessingTime,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *ConversationMapper) MessagesToEntities(models []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, len(models))
	for i, msg := range models {
		entities[i] = m.MessageToEntity(msg)
	}
	return entities
}
