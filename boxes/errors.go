package boxes

import "errors"

// Every message is prefixed with "boxes: " so it can be grepped out of logs. Callers match
// with errors.Is; wrapping with extra context is done at the outer boundary.
var (
	// ErrBadSize is returned when a partition is requested over a non-positive range.
	ErrBadSize = errors.New("boxes: partition size must be > 0")

	// ErrEmptyEdges is returned when an edge list has no entries.
	ErrEmptyEdges = errors.New("boxes: edge list is empty")

	// ErrNotIncreasing signals that edges are not strictly increasing from a positive first edge.
	ErrNotIncreasing = errors.New("boxes: edges must be strictly increasing and > 0")

	// ErrLastEdge signals that the final edge does not close the index range.
	ErrLastEdge = errors.New("boxes: last edge must equal the matrix size")

	// ErrSizeMismatch indicates the matrix dimensions do not match the partition range.
	ErrSizeMismatch = errors.New("boxes: matrix size does not match partition")
)
