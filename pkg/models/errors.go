package models

import "errors"

var (
	ErrValidation    = errors.New("validation error")
	ErrDuplicateID   = errors.New("duplicate shift type id")
	ErrUnknownType   = errors.New("unknown shift type")
	ErrInvalidRange  = errors.New("end date is before start date")
	ErrRangeTooLong  = errors.New("date range too long")
	ErrImport        = errors.New("invalid backup")
	ErrStorageDecode = errors.New("corrupt stored value")
)
