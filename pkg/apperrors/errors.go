package apperrors

import "errors"

var (
	ErrNotFound                     = errors.New("not found")
	ErrConflict                     = errors.New("conflict")
	ErrExtractionUnavailable        = errors.New("extraction service unavailable")
	ErrSemanticSearchNotImplemented = errors.New("semantic search not implemented")
	ErrInvalidSearchType            = errors.New("invalid search type")
)
