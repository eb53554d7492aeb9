package model

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrMissingField  = errors.New("missing field")
	ErrConfiguration = errors.New("configuration error")
)
