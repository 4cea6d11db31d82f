package domain

import "errors"

var (
	ErrUnknownStatus       = errors.New("domain: unknown appointment status")
	ErrInvalidTransition   = errors.New("domain: invalid status transition")
	ErrInvalidWeekday      = errors.New("domain: weekday must be in 0..6")
	ErrUnknownOverrideType = errors.New("domain: unknown override type")
)
