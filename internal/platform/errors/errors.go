package apperrors

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrUnknownDataset  = errors.New("unknown dataset")
	ErrSchemaMismatch  = errors.New("schema mismatch")
	ErrConsentNotGiven = errors.New("consent not given")
	ErrNoDuration      = errors.New("no duration recorded")
)
