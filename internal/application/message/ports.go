package message

import (
	"context"

	"github.com/endurancehub/endurance-hub/internal/domain"
)

// Box selects which side of a user's correspondence to list.
type Box string

const (
	BoxInbox  Box = "inbox"
	BoxOutbox Box = "outbox"
	BoxAll    Box = "all"
)

type Repo interface {
	Create(ctx context.Context, m domain.Message) (domain.Message, error)
	GetByID(ctx context.Context, id string) (domain.Message, error)
	// ListForUser returns messages where userID is the recipient (inbox),
	// the sender (outbox) or either (all), newest first.
	ListForUser(ctx context.Context, userID string, box Box) ([]domain.Message, error)
	// ListAll returns every message, newest first.
	ListAll(ctx context.Context) ([]domain.Message, error)
	MarkRead(ctx context.Context, id string) (domain.Message, error)
	Delete(ctx context.Context, id string) error
}

type UserRepo interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
}

type MessageSentEvent struct {
	MessageID   string `json:"message_id"`
	SenderID    string `json:"sender_id"`
	RecipientID string `json:"recipient_id"`
	Subject     string `json:"subject"`
}

type EventPublisher interface {
	PublishMessageSent(ctx context.Context, evt MessageSentEvent) error
}
