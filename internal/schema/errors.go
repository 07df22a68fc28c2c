package schema

import "errors"

var (
	// ErrUnknownKind indicates no schema and no generic fallback serve a kind.
	ErrUnknownKind = errors.New("unknown dataset kind")

	// ErrInvalidSchema indicates a schema file failed to parse or validate.
	ErrInvalidSchema = errors.New("invalid schema")
)
