package service

import (
	"context"
	"strings"
	"time"

	"ai-search-be/internal/constant"
	"ai-search-be/internal/dto"
	"ai-search-be/internal/entity"
	"ai-search-be/internal/pkg/logger"
	"ai-search-be/internal/repository/memory"
	"ai-search-be/internal/repository/specification"
	"ai-search-be/internal/repository/unitofwork"
	"ai-search-be/pkg/answer/executor"
	"ai-search-be/pkg/answer/strategy"
	"ai-search-be/pkg/events"

	"github.com/google/uuid"
)

type AnswerExecutor interface {
	Execute(ctx context.Context, req executor.Request) (*executor.Result, error)
}

type QuotaChecker interface {
	Allow(ctx context.Context, handle string) error
}

type IChatService interface {
	SendChat(ctx context.Context, handle string, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	uowFactory  unitofwork.RepositoryFactory
	executor    AnswerExecutor
	sessionRepo *memory.SessionRepository
	quota       QuotaChecker
	events      events.Publisher
	activity    IPublisherService
	logger      logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	executor AnswerExecutor,
	sessionRepo *memory.SessionRepository,
	quota QuotaChecker,
	eventPublisher events.Publisher,
	activity IPublisherService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:  uowFactory,
		executor:    executor,
		sessionRepo: sessionRepo,
		quota:       quota,
		events:      eventPublisher,
		activity:    activity,
		logger:      log,
	}
}

func (s *chatService) SendChat(ctx context.Context, handle string, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, executor.ErrEmptyMessage
	}

	if s.quota != nil {
		if err := s.quota.Allow(ctx, handle); err != nil {
			return nil, err
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := resolveUser(ctx, uow, handle)
	if err != nil {
		return nil, err
	}

	conversation, err := s.findConversation(ctx, uow, user, handle, req.ConversationId)
	if err != nil {
		return nil, err
	}

	var history []*entity.Message
	if conversation != nil {
		history, err = uow.MessageRepository().FindAll(ctx,
			specification.ByConversationID{ConversationID: conversation.Id},
			specification.Chronological{},
		)
		if err != nil {
			return nil, err
		}
	}

	scope := user.SearchScope
	if req.SearchScope != "" {
		scope = req.SearchScope
	}
	userName := user.Name
	if strings.TrimSpace(req.UserName) != "" {
		userName = strings.TrimSpace(req.UserName)
	}
	model := user.PreferredModel
	if req.SelectedModel != "" {
		model = req.SelectedModel
	}

	result, err := s.executor.Execute(ctx, executor.Request{
		Message:     message,
		SearchScope: strategy.ParseSearchScope(scope),
		UserName:    userName,
		Model:       model,
		History:     toHistory(history),
	})
	if err != nil {
		return nil, err
	}

	conversation, err = s.persist(ctx, uow, user, conversation, message, scope, result)
	if err != nil {
		return nil, err
	}
	s.sessionRepo.SetCurrent(handle, conversation.Id)

	s.publishAnswered(ctx, user, conversation, result)
	s.publishActivity(ctx, user, conversation)

	return buildChatResponse(result, conversation.Id), nil
}

// findConversation returns the conversation the message belongs to, or nil
// when a new one should be started.
func (s *chatService) findConversation(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	user *entity.User,
	handle string,
	requested *uuid.UUID,
) (*entity.Conversation, error) {
	repo := uow.ConversationRepository()

	if requested != nil {
		conversation, err := repo.FindOne(ctx,
			specification.ByID{ID: *requested},
			specification.UserOwnedBy{UserID: user.Id},
		)
		if err != nil {
			return nil, err
		}
		if conversation == nil {
			return nil, ErrConversationNotFound
		}
		return conversation, nil
	}

	if id, ok := s.sessionRepo.Current(handle); ok {
		conversation, err := repo.FindOne(ctx,
			specification.ByID{ID: id},
			specification.UserOwnedBy{UserID: user.Id},
		)
		if err != nil {
			return nil, err
		}
		if conversation != nil {
			return conversation, nil
		}
		s.sessionRepo.Forget(handle)
	}

	return repo.FindOne(ctx,
		specification.UserOwnedBy{UserID: user.Id},
		specification.IsActive{},
		specification.NewestFirst{},
	)
}

// persist writes both sides of the exchange in one commit.
func (s *chatService) persist(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	user *entity.User,
	conversation *entity.Conversation,
	question string,
	scope string,
	result *executor.Result,
) (*entity.Conversation, error) {
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	conversations := uow.ConversationRepository()

	if conversation == nil {
		if err := conversations.DeactivateAllByUserId(ctx, user.Id); err != nil {
			return nil, err
		}
		conversation = &entity.Conversation{
			Id:        uuid.New(),
			UserId:    user.Id,
			Title:     titleFrom(question),
			IsActive:  true,
			CreatedAt: now,
		}
		if err := conversations.Create(ctx, conversation); err != nil {
			return nil, err
		}
	} else if conversation.Title == "" || conversation.Title == entity.DefaultConversationTitle {
		conversation.Title = titleFrom(question)
		conversation.UpdatedAt = &now
		if err := conversations.Update(ctx, conversation); err != nil {
			return nil, err
		}
	}

	messages := uow.MessageRepository()
	userMessage := &entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		UserId:         user.Id,
		Content:        question,
		MessageType:    entity.MessageTypeUser,
		QuestionType:   string(result.Category),
		SearchScope:    scope,
		CreatedAt:      now,
	}
	if err := messages.Create(ctx, userMessage); err != nil {
		return nil, err
	}

	assistantMessage := &entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		UserId:         user.Id,
		Content:        result.Response,
		MessageType:    entity.MessageTypeAssistant,
		QuestionType:   string(result.Category),
		Citations:      toMessageCitations(result.Citations),
		SearchScope:    scope,
		ModelUsed:      result.ModelUsed,
		RetryCount:     result.RetryCount,
		ProcessingTime: result.ProcessingTime.Seconds(),
		// keeps assistant after user when ordered by created_at
		CreatedAt: now.Add(time.Millisecond),
	}
	if result.Quality != nil {
		total := result.Quality.TotalScore
		assistantMessage.QualityScore = &total
	}
	if err := messages.Create(ctx, assistantMessage); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return conversation, nil
}

func (s *chatService) publishAnswered(ctx context.Context, user *entity.User, conversation *entity.Conversation, result *executor.Result) {
	if s.events == nil {
		return
	}

	data := map[string]interface{}{
		"user_id":         user.Id,
		"conversation_id": conversation.Id,
		"category":        string(result.Category),
		"model":           result.ModelUsed,
		"searched":        result.Searched,
		"retry_count":     result.RetryCount,
		"retry_state":     string(result.RetryState),
		"processing_time": result.ProcessingTime.Seconds(),
	}
	if result.Quality != nil {
		data["quality_score"] = result.Quality.TotalScore
	}
	if result.Stats != nil {
		data["total_sources"] = result.Stats.TotalCount
		data["filtered_count"] = result.Stats.FilteredCount
	}

	if err := s.events.Publish(ctx, events.New(constant.EventChatAnswered, data)); err != nil {
		s.logger.Error("CHAT", "Failed to publish CHAT_ANSWERED event", map[string]interface{}{"error": err.Error()})
	}
}

func (s *chatService) publishActivity(ctx context.Context, user *entity.User, conversation *entity.Conversation) {
	if s.activity == nil {
		return
	}
	id := conversation.Id
	if err := s.activity.PublishActivity(ctx, dto.ActivityMessage{
		UserId:         user.Id,
		ConversationId: &id,
		OccurredAt:     time.Now(),
	}); err != nil {
		s.logger.Warn("CHAT", "Failed to publish activity", map[string]interface{}{"error": err.Error()})
	}
}

func buildChatResponse(result *executor.Result, conversationId uuid.UUID) *dto.ChatResponse {
	res := &dto.ChatResponse{
		Success:        true,
		Response:       result.Response,
		Citations:      toCitationResponses(toMessageCitations(result.Citations)),
		Timestamp:      time.Now(),
		QuestionType:   string(result.Category),
		ModelUsed:      result.ModelUsed,
		ConversationId: conversationId,
		ProcessingTime: result.ProcessingTime.Seconds(),
	}

	if result.Quality != nil {
		total := result.Quality.TotalScore
		retries := result.RetryCount
		res.QualityScore = &total
		res.RetryCount = &retries
	}

	if result.Stats != nil {
		res.SourceFiltering = &dto.SourceFilteringResponse{
			TotalSources:      result.Stats.TotalCount,
			FilteredSources:   result.Stats.SelectedCount(),
			FilteredCount:     result.Stats.FilteredCount,
			FilterDescription: result.Stats.Description(),
		}
	}
	return res
}
