package migration

import (
	"gorm.io/gorm"

	"github.com/coffeegram/coffee-backend/internal/domain"
	"github.com/coffeegram/coffee-backend/pkg/logger"
)

// Run applies the schema for all models
func Run(db *gorm.DB) error {
	err := db.AutoMigrate(
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
	)
	if err != nil {
		return err
	}

	logger.GetLogger().Info().Msg("database schema migrated")
	return nil
}
