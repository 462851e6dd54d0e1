package fabric

import "context"

// Semaphore is a named binary semaphore. Acquire blocks until a token is
// available, the context is cancelled or the fabric is closed; Release
// deposits a token. Both operations are fallible and every caller in this
// codebase treats a failure as fatal: a lost acquire/release leaves the
// shared record in an undefined condition that cannot be recovered from.
type Semaphore interface {
	Acquire(ctx context.Context) error
	Release() error
}

// Fabric is the named semaphore set shared by the receptionist and the group
// processes. It also carries the mutual-exclusion gate that serialises every
// mutation of the shared restaurant record.
type Fabric interface {
	// Mutex is the single gate serialising shared-state mutation.
	Mutex() Semaphore

	// RequestReady signals that a group deposited a request into the slot.
	RequestReady() Semaphore

	// SlotFree signals that the request slot may be written again. A group
	// must acquire it before overwriting the slot, which enforces
	// at-most-one undelivered request.
	SlotFree() Semaphore

	// TableGranted wakes exactly the given group once a table has been
	// bound to it in the assignment record.
	TableGranted(group int) Semaphore

	// TableVacated tells table-management collaborators that the table's
	// occupant has paid and left. The semaphore latches: releasing it while
	// already signalled coalesces rather than failing, since observers may
	// lag behind consecutive payments on the same table.
	TableVacated(table int) Semaphore

	// Close tears the fabric down; every subsequent operation fails.
	Close() error
}
