package memory

import (
	"context"
	"sync"

	"github.com/bistro/maitre/internal/clock"
	"github.com/bistro/maitre/internal/idgen"
	"github.com/bistro/maitre/model"
	"github.com/bistro/maitre/service/journal"
)

// Service is an in-memory journal. Entries are appended in call order and
// never evicted, which is what tests and the default simulation need.
type Service struct {
	mu      sync.RWMutex
	entries []*journal.Entry
}

// New creates an empty in-memory journal.
func New() *Service {
	return &Service{}
}

// Record appends a snapshot as the next journal entry.
func (s *Service) Record(_ context.Context, snapshot *model.Snapshot) error {
	if snapshot == nil {
		return nil // callers validate beforehand
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, &journal.Entry{
		ID:        idgen.New(),
		Seq:       len(s.entries) + 1,
		CreatedAt: clock.Now(),
		State:     snapshot,
	})
	return nil
}

// Entries returns a copy of the journal in append order.
func (s *Service) Entries() []*journal.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*journal.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of recorded entries.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// ensure Service implements the journal.Service interface
var _ journal.Service = (*Service)(nil)
