package annealer

import "errors"

var (
	// ErrEmptyMatrix is returned when the search is started on a matrix with no rows.
	ErrEmptyMatrix = errors.New("annealer: matrix is empty")

	// ErrNotSquare is returned when the search matrix is not square.
	ErrNotSquare = errors.New("annealer: matrix is not square")

	// ErrBadConfig is returned by Config.Validate for out of range parameters.
	ErrBadConfig = errors.New("annealer: invalid configuration")
)
