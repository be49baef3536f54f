package domain

import "time"

type Message struct {
	ID          string
	SenderID    string
	RecipientID string
	Subject     string
	Body        string
	ReadAt      *time.Time
	CreatedAt   time.Time
}

// Participant reports whether userID is the sender or the recipient.
func (m Message) Participant(userID string) bool {
	return m.SenderID == userID || m.RecipientID == userID
}
