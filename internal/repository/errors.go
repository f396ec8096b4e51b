package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrMetricsFinal is returned when attempting to overwrite metrics that
	// have been locked by trip completion.
	ErrMetricsFinal = errors.New("trip metrics are final")
)
