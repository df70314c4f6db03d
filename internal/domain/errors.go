package domain

import "errors"

// errors surfaced by the forecast pipeline. callers wrap these
// with context and match with errors.Is
var (
	// ErrParse is returned for malformed dates or numbers
	ErrParse = errors.New("parse error")

	// ErrValidation is returned for out-of-range inputs, like a
	// non-positive forecast period or an unknown target variable
	ErrValidation = errors.New("validation error")

	// ErrNotFound is returned when no historical rows exist for a commodity
	ErrNotFound = errors.New("not found")

	// ErrData is returned when there is too little history to train on
	ErrData = errors.New("insufficient data")
)
