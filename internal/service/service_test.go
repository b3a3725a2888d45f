package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/coffeegram/coffee-backend/internal/domain"
	"github.com/coffeegram/coffee-backend/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Friendship{},
		&domain.Room{},
		&domain.Message{},
		&domain.MessageReaction{},
		&domain.Post{},
		&domain.Comment{},
		&domain.PostReaction{},
		&domain.PostReactionCount{},
		&domain.Collection{},
		&domain.CollectionPost{},
		&domain.Payment{},
		&domain.DeviceToken{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *domain.User {
	t.Helper()
	user := &domain.User{
		Email:          email,
		Username:       email,
		Password:       "x",
		PostsRemaining: domain.DefaultPostQuota,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// recordingPresence captures recompute calls instead of touching a hub
type recordingPresence struct {
	inner      PresenceService
	recomputed []string
}

func newRecordingPresence(db *gorm.DB) *recordingPresence {
	return &recordingPresence{
		inner: NewPresenceService(
			repository.NewRoomRepository(db),
			repository.NewFriendshipRepository(db),
			nil,
		),
	}
}

func (p *recordingPresence) State(ctx context.Context, email string) (*domain.BadgeState, error) {
	return p.inner.State(ctx, email)
}

func (p *recordingPresence) Recompute(ctx context.Context, email string) {
	p.recomputed = append(p.recomputed, email)
	p.inner.Recompute(ctx, email)
}

// recordingQueue captures enqueued push notifications
type recordingQueue struct {
	pushes []string
}

func (q *recordingQueue) EnqueuePush(ctx context.Context, email, title, body string) {
	q.pushes = append(q.pushes, email)
}
