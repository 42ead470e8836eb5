package service

import (
	"context"
	"time"

	"ai-search-be/internal/constant"
	"ai-search-be/internal/dto"
	"ai-search-be/internal/entity"
	"ai-search-be/internal/pkg/logger"
	"ai-search-be/internal/repository/memory"
	"ai-search-be/internal/repository/specification"
	"ai-search-be/internal/repository/unitofwork"
	"ai-search-be/pkg/events"

	"github.com/google/uuid"
)

type IConversationService interface {
	List(ctx context.Context, handle string, req *dto.ListConversationsRequest) (*dto.ListConversationsResponse, error)
	Create(ctx context.Context, handle string) (*dto.ConversationSummary, error)
	Show(ctx context.Context, handle string, id uuid.UUID) (*dto.ConversationHistoryResponse, error)
	ToggleFavorite(ctx context.Context, handle string, id uuid.UUID) (*dto.ToggleFavoriteResponse, error)
	Delete(ctx context.Context, handle string, id uuid.UUID) error
	Current(ctx context.Context, handle string) (*dto.ConversationHistoryResponse, error)
	Clear(ctx context.Context, handle string) error
}

type conversationService struct {
	uowFactory  unitofwork.RepositoryFactory
	sessionRepo *memory.SessionRepository
	events      events.Publisher
	logger      logger.ILogger
}

func NewConversationService(
	uowFactory unitofwork.RepositoryFactory,
	sessionRepo *memory.SessionRepository,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IConversationService {
	return &conversationService{
		uowFactory:  uowFactory,
		sessionRepo: sessionRepo,
		events:      eventPublisher,
		logger:      log,
	}
}

func (s *conversationService) List(ctx context.Context, handle string, req *dto.ListConversationsRequest) (*dto.ListConversationsResponse, error) {
	page, perPage := normalizePage(req.Page, req.PerPage)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := resolveUser(ctx, uow, handle)
	if err != nil {
		return nil, err
	}

	repo := uow.ConversationRepository()
	owned := specification.UserOwnedBy{UserID: user.Id}
	search := specification.TitleContains{Term: req.Query}
	recentFirst := specification.OrderBy{Field: "updated_at", Desc: true}

	favorites, err := repo.FindAll(ctx, owned, search, specification.IsFavorite{Value: true}, recentFirst)
	if err != nil {
		return nil, err
	}

	notFavorite := specification.IsFavorite{Value: false}
	total, err := repo.Count(ctx, owned, search, notFavorite)
	if err != nil {
		return nil, err
	}

	recent, err := repo.FindAll(ctx, owned, search, notFavorite, recentFirst,
		specification.Pagination{Limit: perPage, Offset: (page - 1) * perPage},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.ListConversationsResponse{
		Favorites:  make([]*dto.ConversationSummary, 0, len(favorites)),
		Recent:     make([]*dto.ConversationSummary, 0, len(recent)),
		Pagination: paginate(page, perPage, total),
	}
	for _, c := range favorites {
		res.Favorites = append(res.Favorites, toConversationSummary(c))
	}
	for _, c := range recent {
		res.Recent = append(res.Recent, toConversationSummary(c))
	}
	return res, nil
}

func (s *conversationService) Create(ctx context.Context, handle string) (*dto.ConversationSummary, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := resolveUser(ctx, uow, handle)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	repo := uow.ConversationRepository()
	if err := repo.DeactivateAllByUserId(ctx, user.Id); err != nil {
		return nil, err
	}

	conversation := &entity.Conversation{
		Id:        uuid.New(),
		UserId:    user.Id,
		Title:     entity.DefaultConversationTitle,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := repo.Create(ctx, conversation); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.sessionRepo.SetCurrent(handle, conversation.Id)
	return toConversationSummary(conversation), nil
}

// Show returns the conversation history and makes it the current one.
func (s *conversationService) Show(ctx context.Context, handle string, id uuid.UUID) (*dto.ConversationHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := resolveUser(ctx, uow, handle)
	if err != nil {
		return nil, err
	}

	conversation, err := s.owned(ctx, uow, user, id)
	if err != nil {
		return nil, err
	}

	if !conversation.IsActive {
		if err := uow.Begin(ctx); err != nil {
			return nil, err
		}
		defer uow.Rollback()

		repo := uow.ConversationRepository()
		if err := repo.DeactivateAllByUserId(ctx, user.Id); err != nil {
			return nil, err
		}
		conversation.IsActive = true
		if err := repo.Update(ctx, conversation); err != nil {
			return nil, err
		}
		if err := uow.Commit(); err != nil {
			return nil, err
		}
	}
	s.sessionRepo.SetCurrent(handle, conversation.Id)

	return s.history(ctx, uow, conversation)
}

func (s *conversationService) ToggleFavorite(ctx context.Context, handle string, id uuid.UUID) (*dto.ToggleFavoriteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := resolveUser(ctx, uow, handle)
	if err != nil {
		return nil, err
	}

	conversation, err := s.owned(ctx, uow, user, id)
	if err != nil {
		return nil, err
	}

	conversation.IsFavorite = !conversation.IsFavorite
	if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
		return nil, err
	}

	return &dto.ToggleFavoriteResponse{Id: conversation.Id, IsFavorite: conversation.IsFavorite}, nil
}

func (s *conversationService) Delete(ctx context.Context, handle string, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := resolveUser(ctx, uow, handle)
	if err != nil {
		return err
	}

	conversation, err := s.owned(ctx, uow, user, id)
	if err != nil {
		return err
	}

	if err := uow.ConversationRepository().Delete(ctx, conversation.Id); err != nil {
		return err
	}

	if current, ok := s.sessionRepo.Current(handle); ok && current == conversation.Id {
		s.sessionRepo.Forget(handle)
	}

	if s.events != nil {
		evt := events.New(constant.EventConversationDeleted, map[string]interface{}{
			"user_id":         user.Id,
			"conversation_id": conversation.Id,
		})
		if err := s.events.Publish(ctx, evt); err != nil {
			s.logger.Error("CONVERSATION", "Failed to publish CONVERSATION_DELETED event", map[string]interface{}{"error": err.Error()})
		}
	}
	return nil
}

// Current returns the history of the active conversation, empty when there is none.
func (s *conversationService) Current(ctx context.Context, handle string) (*dto.ConversationHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := resolveUser(ctx, uow, handle)
	if err != nil {
		return nil, err
	}

	repo := uow.ConversationRepository()
	var conversation *entity.Conversation
	if id, ok := s.sessionRepo.Current(handle); ok {
		conversation, err = repo.FindOne(ctx, specification.ByID{ID: id}, specification.UserOwnedBy{UserID: user.Id})
		if err != nil {
			return nil, err
		}
	}
	if conversation == nil {
		conversation, err = repo.FindOne(ctx,
			specification.UserOwnedBy{UserID: user.Id},
			specification.IsActive{},
			specification.NewestFirst{},
		)
		if err != nil {
			return nil, err
		}
	}

	if conversation == nil {
		return &dto.ConversationHistoryResponse{
			Title:        entity.DefaultConversationTitle,
			Conversation: make([]*dto.MessageResponse, 0),
		}, nil
	}
	return s.history(ctx, uow, conversation)
}

// Clear ends the current conversation. The next chat starts a new one.
func (s *conversationService) Clear(ctx context.Context, handle string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := resolveUser(ctx, uow, handle)
	if err != nil {
		return err
	}

	if err := uow.ConversationRepository().DeactivateAllByUserId(ctx, user.Id); err != nil {
		return err
	}
	s.sessionRepo.Forget(handle)
	return nil
}

func (s *conversationService) owned(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User, id uuid.UUID) (*entity.Conversation, error) {
	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByID{ID: id},
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

func (s *conversationService) history(ctx context.Context, uow unitofwork.UnitOfWork, conversation *entity.Conversation) (*dto.ConversationHistoryResponse, error) {
	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversation.Id},
		specification.Chronological{},
	)
	if err != nil {
		return nil, err
	}

	id := conversation.Id
	res := &dto.ConversationHistoryResponse{
		ConversationId: &id,
		Title:          conversation.Title,
		Conversation:   make([]*dto.MessageResponse, 0, len(messages)),
	}
	for _, m := range messages {
		res.Conversation = append(res.Conversation, toMessageResponse(m))
	}
	return res, nil
}

func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = constant.DefaultPageSize
	}
	if perPage > constant.MaxPageSize {
		perPage = constant.MaxPageSize
	}
	return page, perPage
}

func paginate(page, perPage int, total int64) dto.PaginationResponse {
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	return dto.PaginationResponse{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
