package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
)

// RoomRepository handles chat room data access
type RoomRepository interface {
	GetOrCreate(ctx context.Context, sender, receiver string) (*domain.Room, bool, error)
	FindByID(ctx context.Context, id uint64) (*domain.Room, error)
	FindByPairKey(ctx context.Context, pairKey string) (*domain.Room, error)
	ListForUser(ctx context.Context, email string) ([]*domain.Room, error)
	MarkRead(ctx context.Context, roomID uint64, viewer string) error
	UpdateConfig(ctx context.Context, roomID uint64, background, fontFamily string) error
	HasUnreadFor(ctx context.Context, email string) (bool, error)
}

type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

// GetOrCreate returns the room for the unordered pair, creating it on
// first contact. The pair key's unique index plus DoNothing makes
// concurrent first contacts converge on a single row. The bool result
// reports whether this call created the room.
func (r *roomRepository) GetOrCreate(ctx context.Context, sender, receiver string) (*domain.Room, bool, error) {
	room := &domain.Room{
		PairKey:  domain.RoomPairKey(sender, receiver),
		Sender:   sender,
		Receiver: receiver,
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pair_key"}},
			DoNothing: true,
		}).
		Create(room)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 1 {
		return room, true, nil
	}

	existing, err := r.FindByPairKey(ctx, room.PairKey)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *roomRepository) FindByID(ctx context.Context, id uint64) (*domain.Room, error) {
	var room domain.Room
	err := r.db.WithContext(ctx).First(&room, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) FindByPairKey(ctx context.Context, pairKey string) (*domain.Room, error) {
	var room domain.Room
	err := r.db.WithContext(ctx).Where("pair_key = ?", pairKey).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) ListForUser(ctx context.Context, email string) ([]*domain.Room, error) {
	var rooms []*domain.Room
	err := r.db.WithContext(ctx).
		Where("sender_email = ? OR receiver_email = ?", email, email).
		Order("updated_at DESC").
		Find(&rooms).Error
	return rooms, err
}

// MarkRead clears only the viewer's unread flag; the other side keeps
// its state.
func (r *roomRepository) MarkRead(ctx context.Context, roomID uint64, viewer string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room domain.Room
		if err := tx.First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrRoomNotFound
			}
			return err
		}
		if !room.HasParticipant(viewer) {
			return common.ErrNotRoomMember
		}

		column := "unread_receiver"
		if room.Sender == viewer {
			column = "unread_sender"
		}
		return tx.Model(&domain.Room{}).
			Where("id = ?", roomID).
			UpdateColumn(column, false).Error
	})
}

func (r *roomRepository) UpdateConfig(ctx context.Context, roomID uint64, background, fontFamily string) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Room{}).
		Where("id = ?", roomID).
		Updates(map[string]interface{}{
			"config_background": background,
			"config_font":       fontFamily,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrRoomNotFound
	}
	return nil
}

// HasUnreadFor reports whether any room carries unseen messages for
// the email.
func (r *roomRepository) HasUnreadFor(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Room{}).
		Where("(sender_email = ? AND unread_sender = ?) OR (receiver_email = ? AND unread_receiver = ?)",
			email, true, email, true).
		Count(&count).Error
	return count > 0, err
}
