package service

import "errors"

var (
	ErrNotFound              = errors.New("record not found")
	ErrDuplicateAbbreviation = errors.New("abbreviation already exists")
	ErrDuplicateName         = errors.New("name already exists")
	ErrValidation            = errors.New("invalid input")
)
