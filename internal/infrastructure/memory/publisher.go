package memory

import (
	"context"
	"log"

	"github.com/endurancehub/endurance-hub/internal/application/auth"
	"github.com/endurancehub/endurance-hub/internal/application/message"
)

// NoopPublisher stands in when no broker is configured (local dev).
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (p *NoopPublisher) PublishUserRegistered(ctx context.Context, evt auth.UserRegisteredEvent) error {
	log.Printf("[noop-pub] user registered: user_id=%s email=%s role=%s", evt.UserID, evt.Email, evt.Role)
	return nil
}

func (p *NoopPublisher) PublishMessageSent(ctx context.Context, evt message.MessageSentEvent) error {
	log.Printf("[noop-pub] message sent: message_id=%s sender=%s recipient=%s", evt.MessageID, evt.SenderID, evt.RecipientID)
	return nil
}
