package receptionist

import (
	"errors"
	"fmt"
)

var (
	// ErrSynchronization marks any fabric acquire/release failure. Once it
	// occurs the shared record must be considered undefined, so callers
	// terminate instead of retrying.
	ErrSynchronization = errors.New("synchronization failure")

	// ErrProtocolViolation marks a malformed request from a producer: an
	// unknown request kind, an out-of-range group id or a bill without a
	// table. It is a contract breach in the producer, not recoverable here.
	ErrProtocolViolation = errors.New("protocol violation")
)

// syncFailure annotates a fabric error with the operation that failed.
func syncFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrSynchronization, op, err)
}
