package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
)

// MessageRepository handles message data access
type MessageRepository interface {
	Append(ctx context.Context, msg *domain.Message) error
	FindByID(ctx context.Context, id uint64) (*domain.Message, error)
	ListByRoom(ctx context.Context, roomID uint64, limit int) ([]*domain.Message, error)
	ToggleReaction(ctx context.Context, messageID uint64, userEmail, emoji string) (removed bool, err error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Append stores the message and refreshes the room summary in one
// transaction, so a crash can never leave a message without its
// unread flag.
func (r *messageRepository) Append(ctx context.Context, msg *domain.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room domain.Room
		if err := tx.First(&room, msg.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrRoomNotFound
			}
			return err
		}
		if !room.HasParticipant(msg.Sender) {
			return common.ErrNotRoomMember
		}

		if err := tx.Create(msg).Error; err != nil {
			return err
		}

		unreadColumn := "unread_receiver"
		if room.Receiver == msg.Sender {
			unreadColumn = "unread_sender"
		}
		return tx.Model(&domain.Room{}).
			Where("id = ?", msg.RoomID).
			Updates(map[string]interface{}{
				"last_message": msg.Content,
				"last_sender":  msg.Sender,
				"last_kind":    msg.Kind,
				unreadColumn:   true,
				"updated_at":   time.Now(),
			}).Error
	})
}

func (r *messageRepository) FindByID(ctx context.Context, id uint64) (*domain.Message, error) {
	var msg domain.Message
	err := r.db.WithContext(ctx).Preload("Reactions").First(&msg, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListByRoom returns the room history ordered by the client timestamp,
// oldest first.
func (r *messageRepository) ListByRoom(ctx context.Context, roomID uint64, limit int) ([]*domain.Message, error) {
	query := r.db.WithContext(ctx).
		Preload("Reactions").
		Where("room_id = ?", roomID).
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var messages []*domain.Message
	err := query.Find(&messages).Error
	return messages, err
}

// ToggleReaction applies the toggle rules: same emoji again removes
// the reaction, a different emoji replaces it, no prior reaction
// inserts one. The returned bool reports removal.
func (r *messageRepository) ToggleReaction(ctx context.Context, messageID uint64, userEmail, emoji string) (bool, error) {
	var removed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.MessageReaction
		err := tx.Where("message_id = ? AND user_email = ?", messageID, userEmail).
			First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&domain.MessageReaction{
				MessageID: messageID,
				UserEmail: userEmail,
				Emoji:     emoji,
			}).Error
		case err != nil:
			return err
		case existing.Emoji == emoji:
			removed = true
			return tx.Delete(&existing).Error
		default:
			return tx.Model(&existing).Update("emoji", emoji).Error
		}
	})
	return removed, err
}
