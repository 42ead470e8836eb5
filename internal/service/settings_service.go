package service

import (
	"context"
	"strings"
	"time"

	"ai-search-be/internal/dto"
	"ai-search-be/internal/entity"
	"ai-search-be/internal/repository/unitofwork"
	"ai-search-be/pkg/answer/strategy"
	"ai-search-be/pkg/llm/registry"
)

type ISettingsService interface {
	Get(ctx context.Context, handle string) (*dto.SettingsResponse, error)
	Update(ctx context.Context, handle string, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

type settingsService struct {
	uowFactory unitofwork.RepositoryFactory
	models     *registry.Registry
}

func NewSettingsService(uowFactory unitofwork.RepositoryFactory, models *registry.Registry) ISettingsService {
	return &settingsService{
		uowFactory: uowFactory,
		models:     models,
	}
}

func (s *settingsService) Get(ctx context.Context, handle string) (*dto.SettingsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := resolveUser(ctx, uow, handle)
	if err != nil {
		return nil, err
	}
	return toSettingsResponse(user), nil
}

// Update applies the non-empty fields. Unknown models fall back to the default.
func (s *settingsService) Update(ctx context.Context, handle string, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := resolveUser(ctx, uow, handle)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.UserName); name != "" {
		user.Name = name
	}
	if req.SearchScope != "" {
		user.SearchScope = string(strategy.ParseSearchScope(req.SearchScope))
	}
	if req.Theme != "" {
		user.Theme = req.Theme
	}
	if req.PreferredModel != "" {
		user.PreferredModel = s.models.Resolve(req.PreferredModel).ID
	}
	user.UpdatedAt = time.Now()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}
	return toSettingsResponse(user), nil
}

func toSettingsResponse(user *entity.User) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		UserName:       user.Name,
		SearchScope:    user.SearchScope,
		Theme:          user.Theme,
		PreferredModel: user.PreferredModel,
	}
}
