package booking

import "errors"

var (
	ErrNotFound     = errors.New("booking not found")
	ErrForbidden    = errors.New("not allowed to act on this booking")
	ErrInvalidState = errors.New("booking state does not allow this transition")
	ErrValidation   = errors.New("invalid booking data")
)
