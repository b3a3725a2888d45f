package service

import (
	"context"

	"github.com/coffeegram/coffee-backend/internal/domain"
	"github.com/coffeegram/coffee-backend/internal/repository"
	"github.com/coffeegram/coffee-backend/internal/ws"
	"github.com/coffeegram/coffee-backend/pkg/logger"
)

// EventBadgeState is the websocket event type for badge updates
const EventBadgeState = "badge_state"

// PresenceService computes and pushes per-user badge state
type PresenceService interface {
	State(ctx context.Context, email string) (*domain.BadgeState, error)
	Recompute(ctx context.Context, email string)
}

type presenceService struct {
	rooms       repository.RoomRepository
	friendships repository.FriendshipRepository
	hub         *ws.Hub
}

// NewPresenceService creates a new presence service. hub may be nil
// in contexts without websocket delivery.
func NewPresenceService(rooms repository.RoomRepository, friendships repository.FriendshipRepository,
	hub *ws.Hub) PresenceService {
	return &presenceService{rooms: rooms, friendships: friendships, hub: hub}
}

// State derives the badge pair from current room and friendship rows
func (s *presenceService) State(ctx context.Context, email string) (*domain.BadgeState, error) {
	hasUnread, err := s.rooms.HasUnreadFor(ctx, email)
	if err != nil {
		return nil, err
	}
	hasPending, err := s.friendships.HasPendingTo(ctx, email)
	if err != nil {
		return nil, err
	}
	return &domain.BadgeState{
		HasUnreadMessages:       hasUnread,
		HasPendingFriendRequest: hasPending,
	}, nil
}

// Recompute recalculates the badge state and pushes it to the user's
// live connections. Failures are logged, never propagated; badge
// delivery is best effort.
func (s *presenceService) Recompute(ctx context.Context, email string) {
	state, err := s.State(ctx, email)
	if err != nil {
		logger.GetLogger().Warn().Err(err).Str("email", email).Msg("badge recompute failed")
		return
	}
	if s.hub != nil {
		s.hub.SendToUser(ctx, email, ws.Event{Type: EventBadgeState, Payload: state})
	}
}
