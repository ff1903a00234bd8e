package admin

import "errors"

var (
	ErrNotFound   = errors.New("account not found")
	ErrForbidden  = errors.New("not allowed to act on this account")
	ErrValidation = errors.New("invalid account data")
)
