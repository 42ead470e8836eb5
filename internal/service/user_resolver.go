package service

import (
	"context"
	"errors"

	"ai-search-be/internal/entity"
	"ai-search-be/internal/repository/specification"
	"ai-search-be/internal/repository/unitofwork"
)

var errMissingHandle = errors.New("missing user handle")

// resolveUser finds the profile for a handle, creating it on first sight.
func resolveUser(ctx context.Context, uow unitofwork.UnitOfWork, handle string) (*entity.User, error) {
	if handle == "" {
		return nil, errMissingHandle
	}

	repo := uow.UserRepository()
	user, err := repo.FindOne(ctx, specification.ByHandle{Handle: handle})
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user = entity.NewUser(handle)
	if err := repo.Create(ctx, user); err != nil {
		// a concurrent request may have created it first
		existing, findErr := repo.FindOne(ctx, specification.ByHandle{Handle: handle})
		if findErr == nil && existing != nil {
			return existing, nil
		}
		return nil, err
	}
	return user, nil
}
