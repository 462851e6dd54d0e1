package restaurant

import (
	"context"
	"fmt"

	"github.com/bistro/maitre/service/fabric"
)

// Shared guards the restaurant record behind the fabric's mutual-exclusion
// semaphore. Acquiring the guard is the only way to obtain a mutable view of
// the record; there is no finer-grained locking and no lock-free access
// path. Both operations are fallible and callers treat failures as fatal.
type Shared struct {
	mutex fabric.Semaphore
	state *State
}

// NewShared creates the record sized for the given participant counts and
// binds it to the fabric's mutex.
func NewShared(f fabric.Fabric, groups, tables int) *Shared {
	return &Shared{
		mutex: f.Mutex(),
		state: newState(groups, tables),
	}
}

// Acquire takes the mutual-exclusion gate and returns the mutable record.
// The caller must Release the guard once done with the view.
func (s *Shared) Acquire(ctx context.Context) (*State, error) {
	if err := s.mutex.Acquire(ctx); err != nil {
		return nil, fmt.Errorf("failed to acquire restaurant record: %w", err)
	}
	return s.state, nil
}

// Release returns the mutual-exclusion gate. The *State view handed out by
// Acquire must not be used afterwards.
func (s *Shared) Release() error {
	if err := s.mutex.Release(); err != nil {
		return fmt.Errorf("failed to release restaurant record: %w", err)
	}
	return nil
}
