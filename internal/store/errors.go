package store

import "errors"

var (
	ErrNotFound        = errors.New("dataset not found")
	ErrDatasetExists   = errors.New("dataset already exists")
	ErrDatasetMismatch = errors.New("dataset kind mismatch")
	ErrUnknownTask     = errors.New("event references unknown task")
	ErrDuplicateID     = errors.New("duplicate timeline id")
)
