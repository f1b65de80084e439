package md2docx

import "errors"

// Sentinel errors for library operations.
var (
	ErrUnknownCategory  = errors.New("unknown category")
	ErrInvalidMatchMode = errors.New("invalid match mode")
	ErrInvalidStyle     = errors.New("invalid style color")
	ErrLoadDocument     = errors.New("failed to load document")
	ErrSaveDocument     = errors.New("failed to save document")
	ErrConvertMarkdown  = errors.New("markdown conversion failed")
)
