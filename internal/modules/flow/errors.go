package flow

import "errors"

var (
	ErrSessionNotFound = errors.New("booking session not found")
	ErrForbidden       = errors.New("forbidden")
	ErrValidation      = errors.New("validation error")
	ErrOutOfOrder      = errors.New("step out of order")
	ErrNotConfirmable  = errors.New("session is not ready to confirm")
)
