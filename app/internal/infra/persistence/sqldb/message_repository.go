package sqldb

import (
	"context"
	"database/sql"
	"errors"

	dommsg "example.com/property-listing/app/internal/domain/message"
)

const messageColumns = "id, property_id, sender_id, recipient_id, parent_id, body, created_at"

type MessageRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewMessageRepository(db *sql.DB, d Dialect) *MessageRepository {
	return &MessageRepository{db: db, dialect: d}
}

func (r *MessageRepository) Create(ctx context.Context, m *dommsg.Message) (*dommsg.Message, error) {
	var parent sql.NullInt64
	if m.ParentID != nil {
		parent = sql.NullInt64{Int64: *m.ParentID, Valid: true}
	}

	id, err := r.dialect.insert(ctx, r.db, `
        INSERT INTO messages (property_id, sender_id, recipient_id, parent_id, body, created_at)
        VALUES (?, ?, ?, ?, ?, ?)`,
		m.PropertyID, m.SenderID, m.RecipientID, parent, m.Body, m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.ID = id
	return m, nil
}

func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*dommsg.Message, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.Rebind(
		"SELECT "+messageColumns+" FROM messages WHERE id = ?"), id)

	m, err := scanMessage(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dommsg.ErrMessageNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *MessageRepository) ListForRecipient(ctx context.Context, recipientID int64) ([]*dommsg.Message, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(
		"SELECT "+messageColumns+" FROM messages WHERE recipient_id = ? ORDER BY created_at DESC, id DESC"), recipientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []*dommsg.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func scanMessage(row rowScanner) (*dommsg.Message, error) {
	var (
		m      dommsg.Message
		parent sql.NullInt64
	)
	if err := row.Scan(&m.ID, &m.PropertyID, &m.SenderID, &m.RecipientID, &parent, &m.Body, &m.CreatedAt); err != nil {
		return nil, err
	}
	if parent.Valid {
		id := parent.Int64
		m.ParentID = &id
	}
	return &m, nil
}
