package service

import (
	"context"
	"encoding/json"

	"github.com/coffeegram/coffee-backend/internal/domain"
	"github.com/coffeegram/coffee-backend/internal/repository"
	"github.com/coffeegram/coffee-backend/pkg/cache"
	"github.com/coffeegram/coffee-backend/pkg/logger"
)

// UserService handles profile lookups
type UserService interface {
	GetByEmail(ctx context.Context, email string) (*domain.UserResponse, error)
	Resolve(ctx context.Context, emails []string) ([]*domain.UserResponse, error)
	UpdateProfile(ctx context.Context, email string, req *domain.UpdateProfileRequest) (*domain.UserResponse, error)
}

type userService struct {
	users repository.UserRepository
	cache cache.Service
}

// NewUserService creates a new user service
func NewUserService(users repository.UserRepository, cacheService cache.Service) UserService {
	return &userService{users: users, cache: cacheService}
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.UserResponse, error) {
	if cached, err := s.cache.GetProfile(ctx, email); err == nil && len(cached) > 0 {
		var resp domain.UserResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return &resp, nil
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	if err := s.cache.SetProfile(ctx, email, resp); err != nil {
		logger.GetLogger().Debug().Err(err).Str("email", email).Msg("profile cache write skipped")
	}
	return resp, nil
}

// Resolve maps emails to profiles. Unknown emails are dropped from
// the result; callers see only the accounts that exist.
func (s *userService) Resolve(ctx context.Context, emails []string) ([]*domain.UserResponse, error) {
	users, err := s.users.FindByEmails(ctx, emails)
	if err != nil {
		return nil, err
	}

	resolved := make([]*domain.UserResponse, 0, len(users))
	for _, user := range users {
		resolved = append(resolved, user.ToResponse())
	}
	return resolved, nil
}

func (s *userService) UpdateProfile(ctx context.Context, email string, req *domain.UpdateProfileRequest) (*domain.UserResponse, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Username != nil {
		fields["username"] = *req.Username
	}
	if req.Avatar != nil {
		fields["avatar"] = *req.Avatar
	}
	if len(fields) > 0 {
		if err := s.users.UpdateFields(ctx, user.ID, fields); err != nil {
			return nil, err
		}
		if err := s.cache.InvalidateProfile(ctx, email); err != nil {
			logger.GetLogger().Warn().Err(err).Str("email", email).Msg("profile cache invalidation failed")
		}
	}

	return s.GetByEmail(ctx, email)
}
