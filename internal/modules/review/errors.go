package review

import "errors"

var (
	ErrNotFound     = errors.New("application not found")
	ErrForbidden    = errors.New("actor not allowed to decide this stage")
	ErrInvalidState = errors.New("decision not legal from current status")
	ErrValidation   = errors.New("validation error")
)
