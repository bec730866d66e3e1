package domain

import "errors"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrTokenExpired   = errors.New("chat token expired")
	ErrTokenMalformed = errors.New("chat token malformed")
	ErrEmptyMessage   = errors.New("empty message")
	ErrMessageTooLong = errors.New("message too long")
)
