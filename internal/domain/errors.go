package domain

import "errors"

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionCreation    = errors.New("could not create session")
)

// Resource errors
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrEmailTaken = errors.New("email already registered")
	ErrTitleTaken = errors.New("product title already taken")
)
