package errors

import "errors"

var (
	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrUserNotFound          = errors.New("user not found")
	ErrAccountAlreadyClaimed = errors.New("account already claimed")
	ErrPasswordTooShort      = errors.New("password must be at least 8 characters")
	ErrWrongPassword         = errors.New("current password is incorrect")
	ErrRoleNotAllowed        = errors.New("role cannot be self-assigned")
	ErrEmailOfDeletedUser    = errors.New("email belongs to a deleted account")
)
