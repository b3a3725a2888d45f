package service

import (
	"context"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
	"github.com/coffeegram/coffee-backend/internal/repository"
	"github.com/coffeegram/coffee-backend/pkg/logger"
)

// RoomService handles chat room lifecycle
type RoomService interface {
	ResolveOrCreate(ctx context.Context, viewer, other string) (*domain.RoomResponse, error)
	Get(ctx context.Context, viewer string, roomID uint64) (*domain.RoomResponse, error)
	List(ctx context.Context, viewer string) ([]*domain.RoomResponse, error)
	MarkRead(ctx context.Context, viewer string, roomID uint64) error
	UpdateConfig(ctx context.Context, viewer string, roomID uint64, req *domain.RoomConfigRequest) (*domain.RoomResponse, error)
}

type roomService struct {
	rooms    repository.RoomRepository
	users    repository.UserRepository
	presence PresenceService
}

// NewRoomService creates a new room service
func NewRoomService(rooms repository.RoomRepository, users repository.UserRepository,
	presence PresenceService) RoomService {
	return &roomService{rooms: rooms, users: users, presence: presence}
}

// ResolveOrCreate returns the single room shared with the other
// identity, creating it on first contact. Opening an existing room
// clears the viewer's unread flag, so resolving doubles as reading.
func (s *roomService) ResolveOrCreate(ctx context.Context, viewer, other string) (*domain.RoomResponse, error) {
	if viewer == other {
		return nil, common.ErrSelfMessage
	}
	if _, err := s.users.FindByEmail(ctx, other); err != nil {
		return nil, err
	}

	room, created, err := s.rooms.GetOrCreate(ctx, viewer, other)
	if err != nil {
		return nil, err
	}
	if created {
		logger.GetLogger().Info().Str("viewer", viewer).Str("other", other).Msg("room created")
		return room.ToResponse(), nil
	}

	if room.IsUnreadBy(viewer) {
		if err := s.markReadAndRecompute(ctx, room, viewer); err != nil {
			return nil, err
		}
	}
	return room.ToResponse(), nil
}

func (s *roomService) Get(ctx context.Context, viewer string, roomID uint64) (*domain.RoomResponse, error) {
	room, err := s.memberRoom(ctx, viewer, roomID)
	if err != nil {
		return nil, err
	}
	return room.ToResponse(), nil
}

func (s *roomService) List(ctx context.Context, viewer string) ([]*domain.RoomResponse, error) {
	rooms, err := s.rooms.ListForUser(ctx, viewer)
	if err != nil {
		return nil, err
	}

	responses := make([]*domain.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		responses = append(responses, room.ToResponse())
	}
	return responses, nil
}

// MarkRead clears only the viewer's unread flag and refreshes their
// badge state.
func (s *roomService) MarkRead(ctx context.Context, viewer string, roomID uint64) error {
	room, err := s.memberRoom(ctx, viewer, roomID)
	if err != nil {
		return err
	}
	if !room.IsUnreadBy(viewer) {
		return nil
	}
	return s.markReadAndRecompute(ctx, room, viewer)
}

func (s *roomService) UpdateConfig(ctx context.Context, viewer string, roomID uint64, req *domain.RoomConfigRequest) (*domain.RoomResponse, error) {
	if _, err := s.memberRoom(ctx, viewer, roomID); err != nil {
		return nil, err
	}
	if err := s.rooms.UpdateConfig(ctx, roomID, req.Background, req.FontFamily); err != nil {
		return nil, err
	}
	return s.Get(ctx, viewer, roomID)
}

func (s *roomService) memberRoom(ctx context.Context, viewer string, roomID uint64) (*domain.Room, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !room.HasParticipant(viewer) {
		return nil, common.ErrNotRoomMember
	}
	return room, nil
}

func (s *roomService) markReadAndRecompute(ctx context.Context, room *domain.Room, viewer string) error {
	if err := s.rooms.MarkRead(ctx, room.ID, viewer); err != nil {
		return err
	}
	if room.Sender == viewer {
		room.UnreadSender = false
	} else {
		room.UnreadReceiver = false
	}
	s.presence.Recompute(ctx, viewer)
	return nil
}
