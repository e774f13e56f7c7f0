package message

import "context"

type Repository interface {
	Create(ctx context.Context, m *Message) (*Message, error)
	GetByID(ctx context.Context, id int64) (*Message, error)
	ListForRecipient(ctx context.Context, recipientID int64) ([]*Message, error)
}
