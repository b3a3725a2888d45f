package service

import (
	"context"
	"errors"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
	"github.com/coffeegram/coffee-backend/internal/repository"
	"github.com/coffeegram/coffee-backend/pkg/logger"
)

// FriendService handles the friend request lifecycle
type FriendService interface {
	SendRequest(ctx context.Context, from, to string) (*domain.FriendshipResponse, error)
	Accept(ctx context.Context, viewer string, id uint64) (*domain.FriendshipResponse, error)
	Remove(ctx context.Context, viewer string, id uint64) error
	List(ctx context.Context, viewer, status string) ([]*domain.FriendshipResponse, error)
}

type friendService struct {
	friendships repository.FriendshipRepository
	users       repository.UserRepository
	presence    PresenceService
	queue       PushEnqueuer
}

// PushEnqueuer schedules push notifications
type PushEnqueuer interface {
	EnqueuePush(ctx context.Context, email, title, body string)
}

// NewFriendService creates a new friend service
func NewFriendService(friendships repository.FriendshipRepository, users repository.UserRepository,
	presence PresenceService, queue PushEnqueuer) FriendService {
	return &friendService{
		friendships: friendships,
		users:       users,
		presence:    presence,
		queue:       queue,
	}
}

func (s *friendService) SendRequest(ctx context.Context, from, to string) (*domain.FriendshipResponse, error) {
	if from == to {
		return nil, common.ErrSelfFriendship
	}

	recipient, err := s.users.FindByEmail(ctx, to)
	if err != nil {
		return nil, err
	}

	edge := &domain.Friendship{
		From:   from,
		To:     to,
		Status: domain.FriendshipPending,
	}
	if err := s.friendships.Create(ctx, edge); err != nil {
		return nil, err
	}

	s.presence.Recompute(ctx, to)
	if s.queue != nil {
		s.queue.EnqueuePush(ctx, to, "New friend request", from+" wants to be your friend")
	}

	logger.GetLogger().Info().Str("from", from).Str("to", to).Msg("friend request sent")

	resp := edge.ToResponse()
	resp.Friend = recipient.ToResponse()
	return resp, nil
}

// Accept flips a pending edge to accepted. Only the recipient may
// accept.
func (s *friendService) Accept(ctx context.Context, viewer string, id uint64) (*domain.FriendshipResponse, error) {
	edge, err := s.friendships.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if edge.To != viewer {
		return nil, common.ErrForbidden
	}
	if edge.Status == domain.FriendshipAccepted {
		return edge.ToResponse(), nil
	}

	if err := s.friendships.UpdateStatus(ctx, id, domain.FriendshipAccepted); err != nil {
		return nil, err
	}
	edge.Status = domain.FriendshipAccepted

	s.presence.Recompute(ctx, viewer)
	if s.queue != nil {
		s.queue.EnqueuePush(ctx, edge.From, "Friend request accepted", viewer+" accepted your request")
	}

	return edge.ToResponse(), nil
}

// Remove deletes the edge. Either side may remove it, which also
// serves as declining a pending request.
func (s *friendService) Remove(ctx context.Context, viewer string, id uint64) error {
	edge, err := s.friendships.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !edge.Involves(viewer) {
		return common.ErrForbidden
	}

	if err := s.friendships.Delete(ctx, id); err != nil {
		return err
	}

	if edge.Status == domain.FriendshipPending {
		s.presence.Recompute(ctx, edge.To)
	}
	return nil
}

func (s *friendService) List(ctx context.Context, viewer, status string) ([]*domain.FriendshipResponse, error) {
	edges, err := s.friendships.ListForUser(ctx, viewer, status)
	if err != nil {
		return nil, err
	}

	responses := make([]*domain.FriendshipResponse, 0, len(edges))
	for _, edge := range edges {
		resp := edge.ToResponse()
		if friend, err := s.users.FindByEmail(ctx, edge.OtherSide(viewer)); err == nil {
			resp.Friend = friend.ToResponse()
		} else if !errors.Is(err, common.ErrUserNotFound) {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}
