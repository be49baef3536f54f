package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/endurancehub/endurance-hub/internal/application/message"
	"github.com/endurancehub/endurance-hub/internal/domain"
)

type MessageRepo struct {
	db *sql.DB
}

func NewMessageRepo(db *sql.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

const messageColumns = `id, sender_id, recipient_id, subject, body, read_at, created_at`

func scanMessage(s interface{ Scan(dest ...any) error }) (domain.Message, error) {
	var m domain.Message
	err := s.Scan(
		&m.ID,
		&m.SenderID,
		&m.RecipientID,
		&m.Subject,
		&m.Body,
		&m.ReadAt,
		&m.CreatedAt,
	)
	return m, err
}

func (r *MessageRepo) Create(ctx context.Context, m domain.Message) (domain.Message, error) {
	const q = `
INSERT INTO messages (id, sender_id, recipient_id, subject, body)
VALUES ($1,$2,$3,$4,$5)
RETURNING ` + messageColumns + `;
`
	created, err := scanMessage(r.db.QueryRowContext(ctx, q,
		m.ID, m.SenderID, m.RecipientID, m.Subject, m.Body,
	))
	if err != nil {
		return domain.Message{}, domain.ErrStorage(err)
	}
	return created, nil
}

func (r *MessageRepo) GetByID(ctx context.Context, id string) (domain.Message, error) {
	const q = `
SELECT ` + messageColumns + `
FROM messages
WHERE id = $1
LIMIT 1;
`
	m, err := scanMessage(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Message{}, domain.ErrMessageNotFound()
		}
		return domain.Message{}, domain.ErrStorage(err)
	}
	return m, nil
}

func (r *MessageRepo) listQuery(ctx context.Context, q string, args ...any) ([]domain.Message, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.ErrStorage(err)
	}
	defer rows.Close()

	out := []domain.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, domain.ErrStorage(err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrStorage(err)
	}
	return out, nil
}

func (r *MessageRepo) ListForUser(ctx context.Context, userID string, box message.Box) ([]domain.Message, error) {
	var cond string
	switch box {
	case message.BoxInbox:
		cond = `recipient_id = $1`
	case message.BoxOutbox:
		cond = `sender_id = $1`
	default:
		cond = `(sender_id = $1 OR recipient_id = $1)`
	}

	q := `
SELECT ` + messageColumns + `
FROM messages
WHERE ` + cond + `
ORDER BY created_at DESC;`
	return r.listQuery(ctx, q, userID)
}

func (r *MessageRepo) ListAll(ctx context.Context) ([]domain.Message, error) {
	const q = `
SELECT ` + messageColumns + `
FROM messages
ORDER BY created_at DESC;`
	return r.listQuery(ctx, q)
}

func (r *MessageRepo) MarkRead(ctx context.Context, id string) (domain.Message, error) {
	const q = `
UPDATE messages
SET read_at = COALESCE(read_at, NOW())
WHERE id = $1
RETURNING ` + messageColumns + `;
`
	m, err := scanMessage(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Message{}, domain.ErrMessageNotFound()
		}
		return domain.Message{}, domain.ErrStorage(err)
	}
	return m, nil
}

func (r *MessageRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM messages WHERE id = $1;`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrStorage(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrMessageNotFound()
	}
	return nil
}
