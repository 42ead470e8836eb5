package mapper

import (
	"ai-search-be/internal/entity"
	"ai-search-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:             u.Id,
		Handle:         u.Handle,
		Name:           u.Name,
		SearchScope:    u.SearchScope,
		Theme:          u.Theme,
		PreferredModel: u.PreferredModel,
		LastActive:     u.LastActive,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:             u.Id,
		Handle:         u.Handle,
		Name:           u.Name,
		SearchScope:    u.SearchScope,
		Theme:          u.Theme,
		PreferredModel: u.PreferredModel,
		LastActive:     u.LastActive,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
