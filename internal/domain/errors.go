package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrNoData           = errors.New("no billing data loaded")
	ErrMalformedDate    = errors.New("malformed date in export")
	ErrUnknownService   = errors.New("service id not present in catalog")
	ErrCorruptSnapshot  = errors.New("snapshot is corrupt")
	ErrPageRender       = errors.New("receipt page render failed")
	ErrDocumentAssembly = errors.New("document assembly failed")
)
