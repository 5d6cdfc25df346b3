package errors

import "errors"

var (
	ErrPostNotFound       = errors.New("post not found")
	ErrInvalidStatus      = errors.New("invalid post status")
	ErrInvalidPostID      = errors.New("invalid post id")
	ErrInvalidChannel     = errors.New("invalid feed channel options")
	ErrInvalidItem        = errors.New("invalid feed item")
	ErrUnsupportedFormat  = errors.New("unsupported feed format")
	ErrUnauthorized       = errors.New("unauthorized user")
	ErrUserNotFound       = errors.New("user not found")
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required for the postgres storage driver")
)
