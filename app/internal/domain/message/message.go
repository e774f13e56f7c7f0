package message

import "time"

type Message struct {
	ID          int64
	PropertyID  int64
	SenderID    int64
	RecipientID int64
	// ParentID is the thread root for replies, nil for the first message.
	ParentID  *int64
	Body      string
	CreatedAt time.Time
}

// ThreadID returns the id of the message that started the conversation.
func (m *Message) ThreadID() int64 {
	if m.ParentID != nil {
		return *m.ParentID
	}
	return m.ID
}

// IsParticipant reports whether userID sent or received m.
func (m *Message) IsParticipant(userID int64) bool {
	return userID > 0 && (m.SenderID == userID || m.RecipientID == userID)
}

// Counterpart returns the other participant of m from userID's point of view.
func (m *Message) Counterpart(userID int64) int64 {
	if m.SenderID == userID {
		return m.RecipientID
	}
	return m.SenderID
}
