package maitre

import (
	"github.com/bistro/maitre/service/fabric"
	"github.com/bistro/maitre/service/journal"
)

// Option customises the engine façade.
type Option func(*Service)

// WithConfig sets the engine configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithFabric replaces the default in-memory synchronization fabric.
func WithFabric(f fabric.Fabric) Option {
	return func(s *Service) {
		s.fabric = f
	}
}

// WithJournal replaces the journal selected by the configuration.
func WithJournal(j journal.Service) Option {
	return func(s *Service) {
		s.journal = j
	}
}
