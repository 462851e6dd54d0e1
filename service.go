package maitre

import (
	"log"

	"github.com/viant/afs"

	"github.com/bistro/maitre/restaurant"
	"github.com/bistro/maitre/service/fabric"
	fmemory "github.com/bistro/maitre/service/fabric/memory"
	"github.com/bistro/maitre/service/journal"
	jfs "github.com/bistro/maitre/service/journal/fs"
	jmemory "github.com/bistro/maitre/service/journal/memory"
	"github.com/bistro/maitre/service/receptionist"
)

// Service is the engine façade. It wires the fabric, the guarded restaurant
// record, the journal and the receptionist, and hands the result out through
// Runtime().
type Service struct {
	runtime *Runtime
	config  *Config
	fabric  fabric.Fabric
	journal journal.Service
}

// New creates a fully wired engine.
func New(options ...Option) *Service {
	s := &Service{config: DefaultConfig(), runtime: &Runtime{}}
	s.init(options)
	return s
}

func (s *Service) init(options []Option) {
	for _, option := range options {
		option(s)
	}
	s.ensureBaseSetup()

	groups := s.config.Restaurant.Groups
	tables := s.config.Restaurant.Tables
	s.runtime.shared = restaurant.NewShared(s.fabric, groups, tables)
	s.runtime.receptionist, _ = receptionist.New(
		receptionist.WithConfig(receptionist.Config{Groups: groups, Tables: tables}),
		receptionist.WithFabric(s.fabric),
		receptionist.WithShared(s.runtime.shared),
		receptionist.WithJournal(s.journal),
	)
	s.runtime.config = s.config
	s.runtime.fabric = s.fabric
	s.runtime.journal = s.journal
}

func (s *Service) ensureBaseSetup() {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if s.fabric == nil {
		s.fabric = fmemory.New(fmemory.Config{
			Groups: s.config.Restaurant.Groups,
			Tables: s.config.Restaurant.Tables,
		})
	}
	if s.journal == nil {
		switch s.config.Journal.Vendor {
		case "fs":
			j, err := jfs.New(afs.New(), jfs.Config{BaseURL: s.config.Journal.BaseURL})
			if err != nil {
				log.Printf("failed to initialise fs journal, falling back to memory: %v", err)
				s.journal = jmemory.New()
				return
			}
			s.journal = j
		default:
			s.journal = jmemory.New()
		}
	}
}

// Runtime returns the wired simulation participants.
func (s *Service) Runtime() *Runtime {
	return s.runtime
}
