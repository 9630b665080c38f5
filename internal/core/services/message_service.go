package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/srgjo27/shutterbook/internal/core/apperrors"
	"github.com/srgjo27/shutterbook/internal/core/domain"
	"github.com/srgjo27/shutterbook/internal/core/inbox"
	"github.com/srgjo27/shutterbook/internal/core/ports"
)

const maxMessageLength = 4000

type SendMessageRequest struct {
	Content string `json:"content"`
}

type Counterpart struct {
	ID     uuid.UUID   `json:"id"`
	Name   string      `json:"name"`
	Role   domain.Role `json:"role"`
	Avatar string      `json:"avatar,omitempty"`
}

type ConversationView struct {
	inbox.Conversation
	Counterpart Counterpart `json:"counterpart"`
}

type InboxView struct {
	Conversations []ConversationView `json:"conversations"`
	TotalUnread   int                `json:"total_unread"`
}

type MessageService struct {
	messageRepo ports.MessageRepository
	userRepo    ports.UserRepository
	now         func() time.Time
}

func NewMessageService(messageRepo ports.MessageRepository, userRepo ports.UserRepository) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

func (s *MessageService) Send(ctx context.Context, sender domain.Identity, receiverID uuid.UUID, req SendMessageRequest) (*domain.Message, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.NewValidationError("message is empty")
	}
	if len(content) > maxMessageLength {
		return nil, apperrors.NewValidationError("message is too long")
	}
	if receiverID == sender.UserID {
		return nil, apperrors.NewValidationError("cannot message yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ID:         uuid.New(),
		SenderID:   sender.UserID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  s.now(),
	}

	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	return msg, nil
}

// Inbox lists the caller's conversations, newest activity first, optionally
// narrowed to counterparts whose name contains query.
func (s *MessageService) Inbox(ctx context.Context, user domain.Identity, query string) (*InboxView, error) {
	messages, err := s.messageRepo.ListForUser(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	convs := inbox.Group(messages, user.UserID)

	counterparts, err := s.counterparts(ctx, convs)
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(counterparts))
	for id, c := range counterparts {
		names[id] = c.Name
	}
	convs = inbox.FilterByName(convs, names, query)

	views := make([]ConversationView, 0, len(convs))
	unread := 0
	for _, c := range convs {
		cp, ok := counterparts[c.CounterpartID]
		if !ok {
			log.Warn().
				Str("user_id", user.UserID.String()).
				Str("counterpart_id", c.CounterpartID.String()).
				Msg("skipping conversation with unknown user")
			continue
		}
		views = append(views, ConversationView{Conversation: c, Counterpart: cp})
		unread += c.UnreadCount
	}

	return &InboxView{Conversations: views, TotalUnread: unread}, nil
}

// Thread returns the conversation with counterpartID and marks the
// messages the caller received in it as read.
func (s *MessageService) Thread(ctx context.Context, user domain.Identity, counterpartID uuid.UUID) (*ConversationView, error) {
	other, err := s.userRepo.GetByID(ctx, counterpartID)
	if err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListForUser(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	conv, ok := inbox.Find(inbox.Group(messages, user.UserID), counterpartID)
	if !ok {
		conv = inbox.Conversation{CounterpartID: counterpartID, Messages: []domain.Message{}}
	}

	if conv.UnreadCount > 0 {
		if _, err := s.messageRepo.MarkRead(ctx, user.UserID, counterpartID); err != nil {
			return nil, err
		}
		for i := range conv.Messages {
			if conv.Messages[i].ReceiverID == user.UserID {
				conv.Messages[i].Read = true
			}
		}
		conv.UnreadCount = 0
	}

	return &ConversationView{Conversation: conv, Counterpart: toCounterpart(*other)}, nil
}

func (s *MessageService) counterparts(ctx context.Context, convs []inbox.Conversation) (map[uuid.UUID]Counterpart, error) {
	out := make(map[uuid.UUID]Counterpart, len(convs))
	if len(convs) == 0 {
		return out, nil
	}

	ids := make([]uuid.UUID, len(convs))
	for i, c := range convs {
		ids[i] = c.CounterpartID
	}

	users, err := s.userRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = toCounterpart(u)
	}
	return out, nil
}

func toCounterpart(u domain.User) Counterpart {
	return Counterpart{ID: u.ID, Name: u.Name, Role: u.Role, Avatar: u.Avatar}
}
