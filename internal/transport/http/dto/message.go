package dto

import (
	"time"

	"github.com/endurancehub/endurance-hub/internal/domain"
)

type SendMessageRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	Subject     string `json:"subject" validate:"required,max=255"`
	Body        string `json:"body" validate:"required,max=5000"`
}

func (r *SendMessageRequest) Validate() error {
	return checkStruct(r)
}

type MessageView struct {
	ID          string     `json:"id"`
	SenderID    string     `json:"sender_id"`
	RecipientID string     `json:"recipient_id"`
	Subject     string     `json:"subject,omitempty"`
	Body        string     `json:"body"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func NewMessageView(m domain.Message) MessageView {
	return MessageView{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Subject:     m.Subject,
		Body:        m.Body,
		ReadAt:      m.ReadAt,
		CreatedAt:   m.CreatedAt,
	}
}

func NewMessageViews(in []domain.Message) []MessageView {
	out := make([]MessageView, 0, len(in))
	for _, m := range in {
		out = append(out, NewMessageView(m))
	}
	return out
}
