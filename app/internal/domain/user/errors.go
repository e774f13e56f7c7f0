package user

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailAlreadyUsed  = errors.New("email already used")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrWrongPassword     = errors.New("current password is incorrect")
	ErrPasswordUnchanged = errors.New("new password must differ from the current one")
)
