package service

import (
	"context"
	"errors"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
	"github.com/coffeegram/coffee-backend/internal/repository"
	"github.com/coffeegram/coffee-backend/pkg/auth"
	"github.com/coffeegram/coffee-backend/pkg/jwt"
	"github.com/coffeegram/coffee-backend/pkg/logger"
)

// AuthService handles registration and login
type AuthService interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.AuthResponse, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error)
	Me(ctx context.Context, email string) (*domain.UserResponse, error)
}

type authService struct {
	users      repository.UserRepository
	jwtManager *jwt.Manager
}

// NewAuthService creates a new auth service
func NewAuthService(users repository.UserRepository, jwtManager *jwt.Manager) AuthService {
	return &authService{users: users, jwtManager: jwtManager}
}

func (s *authService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.AuthResponse, error) {
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, common.ErrUserAlreadyExists
	} else if !errors.Is(err, common.ErrUserNotFound) {
		return nil, err
	}

	hashed := auth.HashPassword(req.Password)
	if hashed == "" {
		return nil, common.ErrInvalidInput
	}

	user := &domain.User{
		Email:          req.Email,
		Username:       req.Username,
		Password:       hashed,
		Avatar:         req.Avatar,
		PostsRemaining: domain.DefaultPostQuota,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.GetLogger().Info().Str("email", user.Email).Msg("user registered")
	return s.issueTokens(user)
}

func (s *authService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(req.Password, user.Password) {
		return nil, common.ErrInvalidCredentials
	}
	if user.Banned {
		return nil, common.ErrUserBanned
	}

	return s.issueTokens(user)
}

func (s *authService) Me(ctx context.Context, email string) (*domain.UserResponse, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

func (s *authService) issueTokens(user *domain.User) (*domain.AuthResponse, error) {
	access, err := s.jwtManager.GenerateToken(user.ID, user.Email, user.Username)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(user.ID, user.Email, user.Username)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
