package domain

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrValidation         = errors.New("validation failed")
	ErrTodoNotFound       = errors.New("todo not found")
	ErrInvalidTodoID      = errors.New("invalid todo id")
	ErrUserNotFound       = errors.New("user not found")
)
