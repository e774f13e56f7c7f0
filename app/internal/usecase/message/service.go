package message

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	dom "example.com/property-listing/app/internal/domain/message"
	domproperty "example.com/property-listing/app/internal/domain/property"
	domuser "example.com/property-listing/app/internal/domain/user"
)

// Notifier delivers a plain-text notification to an e-mail address.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

type Service struct {
	repo       dom.Repository
	properties domproperty.Repository
	users      domuser.Repository
	notifier   Notifier
	log        *zap.Logger
	now        func() time.Time
}

type Option func(*Service)

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

func NewService(repo dom.Repository, properties domproperty.Repository, users domuser.Repository, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		properties: properties,
		users:      users,
		log:        zap.NewNop(),
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type SendInput struct {
	PropertyID int64
	Body       string
}

// Send starts a conversation with the owner of a property.
func (s *Service) Send(ctx context.Context, senderID int64, in SendInput) (*dom.Message, error) {
	p, err := s.properties.GetByID(ctx, in.PropertyID)
	if err != nil {
		return nil, err
	}
	if p.UserID == senderID {
		return nil, dom.ErrCannotMessageSelf
	}

	m, err := s.repo.Create(ctx, &dom.Message{
		PropertyID:  p.ID,
		SenderID:    senderID,
		RecipientID: p.UserID,
		Body:        strings.TrimSpace(in.Body),
		CreatedAt:   s.now(),
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, m, fmt.Sprintf("New message about %q", p.Title))
	return m, nil
}

// Reply answers a message the actor took part in. The reply is attached to the
// thread root and addressed to the other participant.
func (s *Service) Reply(ctx context.Context, actorID, parentID int64, body string) (*dom.Message, error) {
	parent, err := s.repo.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if !parent.IsParticipant(actorID) {
		return nil, dom.ErrNotParticipant
	}

	root := parent.ThreadID()
	m, err := s.repo.Create(ctx, &dom.Message{
		PropertyID:  parent.PropertyID,
		SenderID:    actorID,
		RecipientID: parent.Counterpart(actorID),
		ParentID:    &root,
		Body:        strings.TrimSpace(body),
		CreatedAt:   s.now(),
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, m, "New reply to your conversation")
	return m, nil
}

func (s *Service) Inbox(ctx context.Context, userID int64) ([]*dom.Message, error) {
	return s.repo.ListForRecipient(ctx, userID)
}

func (s *Service) notify(ctx context.Context, m *dom.Message, subject string) {
	if s.notifier == nil {
		return
	}

	recipient, err := s.users.GetByID(ctx, m.RecipientID)
	if err != nil {
		s.log.Warn("message recipient lookup failed",
			zap.Int64("message_id", m.ID),
			zap.Int64("recipient_id", m.RecipientID),
			zap.Error(err),
		)
		return
	}

	if err := s.notifier.Send(ctx, recipient.Email, subject, m.Body); err != nil {
		s.log.Warn("message notification failed",
			zap.Int64("message_id", m.ID),
			zap.String("to", recipient.Email),
			zap.Error(err),
		)
	}
}
