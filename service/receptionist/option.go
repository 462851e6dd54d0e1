package receptionist

import (
	"github.com/bistro/maitre/restaurant"
	"github.com/bistro/maitre/service/fabric"
	"github.com/bistro/maitre/service/journal"
)

// Option customises the receptionist service.
type Option func(*Service)

// WithConfig sets the configuration for the service.
func WithConfig(config Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithFabric sets the synchronization fabric implementation.
func WithFabric(f fabric.Fabric) Option {
	return func(s *Service) {
		s.fabric = f
	}
}

// WithShared sets the guarded restaurant record.
func WithShared(shared *restaurant.Shared) Option {
	return func(s *Service) {
		s.shared = shared
	}
}

// WithJournal sets the state log sink.
func WithJournal(j journal.Service) Option {
	return func(s *Service) {
		s.journal = j
	}
}
