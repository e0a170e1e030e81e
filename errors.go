package mpmcqueue

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// ErrInvalidCapacity is returned by New when capacity < 1.
var ErrInvalidCapacity = errors.New("mpmcqueue: capacity must be >= 1")

// ErrAllocationFailure would be returned by New if the ring's backing
// storage could not be allocated.
//
// It is defined for API completeness with spec's error taxonomy but is
// unreachable from New: Go's allocator has no recoverable
// out-of-memory path for a make() of this shape, so New never returns
// it. An out-of-memory condition instead surfaces as a runtime fatal
// error, which by design cannot be recovered.
var ErrAllocationFailure = errors.New("mpmcqueue: ring allocation failed")

// ErrQueueFull reports that a non-blocking enqueue observed the queue
// full and made no progress. TryEnqueue itself reports this case as a
// false result and does not return this error; it is for callers that
// wrap TryEnqueue in an error-returning form.
//
// It wraps iox.ErrWouldBlock so callers using this ecosystem's
// would-block convention (iox.IsWouldBlock, IsWouldBlock below) still
// recognize it, while errors.Is(err, ErrQueueFull) distinguishes the
// full case from ErrQueueEmpty.
var ErrQueueFull = fmt.Errorf("mpmcqueue: queue is full: %w", iox.ErrWouldBlock)

// ErrQueueEmpty reports that a non-blocking dequeue observed the queue
// empty and made no progress. TryDequeue itself reports this case as a
// false result. See ErrQueueFull.
var ErrQueueEmpty = fmt.Errorf("mpmcqueue: queue is empty: %w", iox.ErrWouldBlock)

// IsWouldBlock reports whether err indicates a non-blocking operation
// could not proceed immediately (ErrQueueFull or ErrQueueEmpty).
//
// Delegates to iox.IsWouldBlock for wrapped-error support, matching
// the error-classification convention code.hybscloud.com/lfq uses.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}
