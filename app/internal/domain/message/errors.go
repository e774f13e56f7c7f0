package message

import "errors"

var (
	ErrMessageNotFound   = errors.New("message not found")
	ErrNotParticipant    = errors.New("you are not a participant of this conversation")
	ErrCannotMessageSelf = errors.New("cannot send a message about your own property")
)
