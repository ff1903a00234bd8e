package catalog

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("not the owner")
	ErrInvalidState = errors.New("vendor status does not allow this transition")
	ErrValidation   = errors.New("validation error")
)
