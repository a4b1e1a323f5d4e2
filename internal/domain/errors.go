package domain

import "errors"

// Error kinds shared by repositories, services and the HTTP layer.
// Anything that does not wrap one of these is treated as internal.
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
