package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
	"github.com/coffeegram/coffee-backend/internal/repository"
	"github.com/coffeegram/coffee-backend/pkg/jwt"
)

func newAuthFixture(t *testing.T) (AuthService, repository.UserRepository) {
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	manager := jwt.NewManager("test-secret", 15, 1440)
	return NewAuthService(users, manager), users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &domain.RegisterRequest{
		Username: "alice",
		Email:    "alice@x.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.AccessToken)
	assert.NotEmpty(t, registered.RefreshToken)
	assert.Equal(t, domain.DefaultPostQuota, registered.User.PostsRemaining)

	logged, err := svc.Login(ctx, &domain.LoginRequest{
		Email:    "alice@x.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", logged.User.Email)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &domain.RegisterRequest{
		Username: "alice", Email: "alice@x.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &domain.RegisterRequest{
		Username: "alice2", Email: "alice@x.com", Password: "other456",
	})
	assert.ErrorIs(t, err, common.ErrUserAlreadyExists)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &domain.RegisterRequest{
		Username: "alice", Email: "alice@x.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &domain.LoginRequest{
		Email: "alice@x.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	// unknown account looks the same as a wrong password
	_, err = svc.Login(ctx, &domain.LoginRequest{
		Email: "ghost@x.com", Password: "whatever",
	})
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLoginRejectsBannedUser(t *testing.T) {
	svc, users := newAuthFixture(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &domain.RegisterRequest{
		Username: "alice", Email: "alice@x.com", Password: "secret123",
	})
	require.NoError(t, err)

	require.NoError(t, users.UpdateFields(ctx, registered.User.ID, map[string]interface{}{"banned": true}))

	_, err = svc.Login(ctx, &domain.LoginRequest{
		Email: "alice@x.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, common.ErrUserBanned)
}
