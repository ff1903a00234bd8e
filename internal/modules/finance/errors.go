package finance

import "errors"

var (
	ErrNotFound         = errors.New("record not found")
	ErrForbidden        = errors.New("not allowed to act on this record")
	ErrInvalidState     = errors.New("record state does not allow this transition")
	ErrValidation       = errors.New("invalid financial data")
	ErrNoCommissionRule = errors.New("no active commission rule")
)
