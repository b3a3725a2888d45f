package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/coffeegram/coffee-backend/internal/domain"
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
