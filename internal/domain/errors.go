package domain

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrSoldOut               = errors.New("flight is sold out")
	ErrAlreadyCancelled      = errors.New("booking is already cancelled")
	ErrDuplicatePNR          = errors.New("duplicate pnr")
	ErrDuplicateFlightNumber = errors.New("duplicate flight number")
	ErrEmailTaken            = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidInput          = errors.New("invalid input")
	ErrTransient             = errors.New("transient failure, retry")
)
