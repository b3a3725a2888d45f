package service

import (
	"context"
	"time"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
	"github.com/coffeegram/coffee-backend/internal/repository"
)

// MessageService handles message append, history and reactions
type MessageService interface {
	Send(ctx context.Context, sender string, roomID uint64, req *domain.SendMessageRequest) (*domain.MessageResponse, error)
	List(ctx context.Context, viewer string, roomID uint64, limit int) ([]*domain.MessageResponse, error)
	React(ctx context.Context, viewer string, roomID, messageID uint64, emoji string) (*domain.MessageResponse, error)
}

type messageService struct {
	messages repository.MessageRepository
	rooms    repository.RoomRepository
	presence PresenceService
	queue    PushEnqueuer
}

// NewMessageService creates a new message service
func NewMessageService(messages repository.MessageRepository, rooms repository.RoomRepository,
	presence PresenceService, queue PushEnqueuer) MessageService {
	return &messageService{
		messages: messages,
		rooms:    rooms,
		presence: presence,
		queue:    queue,
	}
}

// Send appends the message and refreshes the room summary, then
// notifies the other side.
func (s *messageService) Send(ctx context.Context, sender string, roomID uint64, req *domain.SendMessageRequest) (*domain.MessageResponse, error) {
	kind := req.Kind
	if kind == "" {
		kind = domain.MessageKindText
	}
	if kind != domain.MessageKindText && kind != domain.MessageKindImage {
		return nil, common.ErrInvalidInput
	}

	createdAt := req.CreatedAt
	if createdAt == 0 {
		createdAt = time.Now().UnixMilli()
	}

	msg := &domain.Message{
		RoomID:    roomID,
		Sender:    sender,
		Kind:      kind,
		Content:   req.Content,
		CreatedAt: createdAt,
	}
	if err := s.messages.Append(ctx, msg); err != nil {
		return nil, err
	}

	room, err := s.rooms.FindByID(ctx, roomID)
	if err == nil {
		receiver := room.OtherSide(sender)
		s.presence.Recompute(ctx, receiver)
		if s.queue != nil {
			preview := req.Content
			if kind == domain.MessageKindImage {
				preview = "sent a photo"
			}
			s.queue.EnqueuePush(ctx, receiver, sender, preview)
		}
	}

	return msg.ToResponse(), nil
}

// List returns the room history sorted by client timestamp, oldest
// first.
func (s *messageService) List(ctx context.Context, viewer string, roomID uint64, limit int) ([]*domain.MessageResponse, error) {
	if err := s.requireMember(ctx, viewer, roomID); err != nil {
		return nil, err
	}

	messages, err := s.messages.ListByRoom(ctx, roomID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*domain.MessageResponse, 0, len(messages))
	for _, msg := range messages {
		responses = append(responses, msg.ToResponse())
	}
	return responses, nil
}

// React toggles the viewer's emoji on a message in the room
func (s *messageService) React(ctx context.Context, viewer string, roomID, messageID uint64, emoji string) (*domain.MessageResponse, error) {
	if !domain.IsKnownEmoji(emoji) {
		return nil, common.ErrUnknownReaction
	}
	if err := s.requireMember(ctx, viewer, roomID); err != nil {
		return nil, err
	}

	msg, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg.RoomID != roomID {
		return nil, common.ErrMessageNotFound
	}

	if _, err := s.messages.ToggleReaction(ctx, messageID, viewer, emoji); err != nil {
		return nil, err
	}

	updated, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	return updated.ToResponse(), nil
}

func (s *messageService) requireMember(ctx context.Context, viewer string, roomID uint64) error {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return err
	}
	if !room.HasParticipant(viewer) {
		return common.ErrNotRoomMember
	}
	return nil
}
