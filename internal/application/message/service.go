package message

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/endurancehub/endurance-hub/internal/domain"
)

type Actor struct {
	ID   string
	Role string
}

func (a Actor) isAdmin() bool { return a.Role == string(domain.RoleAdmin) }

type Service struct {
	messages Repo
	users    UserRepo
	pub      EventPublisher
}

func NewService(messages Repo, users UserRepo, pub EventPublisher) *Service {
	return &Service{messages: messages, users: users, pub: pub}
}

type SendInput struct {
	RecipientID string
	Subject     string
	Body        string
}

func (s *Service) Send(ctx context.Context, actor Actor, in SendInput) (domain.Message, error) {
	if in.RecipientID == "" {
		return domain.Message{}, domain.ErrMissingField("recipientId")
	}
	if strings.TrimSpace(in.Body) == "" {
		return domain.Message{}, domain.ErrMissingField("body")
	}
	if in.RecipientID == actor.ID {
		return domain.Message{}, domain.ErrValidationFailed("Cannot send messages to yourself")
	}
	if _, err := s.users.GetByID(ctx, in.RecipientID); err != nil {
		if domain.Is(err, "user_not_found") {
			return domain.Message{}, domain.New(domain.KindNotFound, "recipient_not_found", "Recipient not found")
		}
		return domain.Message{}, err
	}

	m, err := s.messages.Create(ctx, domain.Message{
		ID:          uuid.NewString(),
		SenderID:    actor.ID,
		RecipientID: in.RecipientID,
		Subject:     in.Subject,
		Body:        in.Body,
	})
	if err != nil {
		return domain.Message{}, err
	}

	// Delivery notification is best effort; the message is already stored.
	_ = s.pub.PublishMessageSent(ctx, MessageSentEvent{
		MessageID:   m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Subject:     m.Subject,
	})
	return m, nil
}

// List returns the actor's correspondence. Only admins may use the "all"
// box; anyone else asking for it gets their inbox.
func (s *Service) List(ctx context.Context, actor Actor, box Box) ([]domain.Message, error) {
	switch box {
	case BoxInbox, BoxOutbox, BoxAll:
	case "":
		box = BoxInbox
	default:
		return nil, domain.ErrInvalidField("box", "must be inbox, outbox or all")
	}

	if box == BoxAll {
		if actor.isAdmin() {
			return s.messages.ListAll(ctx)
		}
		box = BoxInbox
	}
	return s.messages.ListForUser(ctx, actor.ID, box)
}

func (s *Service) Get(ctx context.Context, actor Actor, id string) (domain.Message, error) {
	m, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return domain.Message{}, err
	}
	if !m.Participant(actor.ID) && !actor.isAdmin() {
		return domain.Message{}, domain.ErrForbidden("Cannot access messages of other users")
	}
	return m, nil
}

// MarkRead stamps the read time. Only the recipient or an admin may do
// it; marking an already read message is a no-op.
func (s *Service) MarkRead(ctx context.Context, actor Actor, id string) (domain.Message, error) {
	m, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return domain.Message{}, err
	}
	if m.RecipientID != actor.ID && !actor.isAdmin() {
		return domain.Message{}, domain.ErrForbidden("Only the recipient can mark a message as read")
	}
	if m.ReadAt != nil {
		return m, nil
	}
	return s.messages.MarkRead(ctx, id)
}

func (s *Service) Delete(ctx context.Context, actor Actor, id string) error {
	m, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !m.Participant(actor.ID) && !actor.isAdmin() {
		return domain.ErrForbidden("Cannot delete messages of other users")
	}
	return s.messages.Delete(ctx, id)
}
