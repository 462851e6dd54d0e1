package maitre

import (
	"context"

	"github.com/bistro/maitre/restaurant"
	"github.com/bistro/maitre/service/fabric"
	"github.com/bistro/maitre/service/journal"
	"github.com/bistro/maitre/service/patron"
	"github.com/bistro/maitre/service/receptionist"
)

// Runtime exposes the wired simulation participants.
type Runtime struct {
	config       *Config
	shared       *restaurant.Shared
	fabric       fabric.Fabric
	journal      journal.Service
	receptionist *receptionist.Service
}

// Receptionist returns the coordinating actor.
func (r *Runtime) Receptionist() *receptionist.Service {
	return r.receptionist
}

// Patron creates a client for the given group id, sharing the runtime's
// fabric and record.
func (r *Runtime) Patron(group int) *patron.Service {
	return patron.New(group, r.shared, r.fabric)
}

// Shared returns the guarded restaurant record.
func (r *Runtime) Shared() *restaurant.Shared {
	return r.shared
}

// Fabric returns the synchronization fabric, mainly so table-management
// collaborators can consume vacancy signals.
func (r *Runtime) Fabric() fabric.Fabric {
	return r.fabric
}

// Journal returns the state log sink.
func (r *Runtime) Journal() journal.Service {
	return r.journal
}

// Config returns the runtime configuration.
func (r *Runtime) Config() *Config {
	return r.config
}

// Run drives the receptionist until every group has been served twice (one
// table request, one bill request each) or a failure aborts the simulation.
func (r *Runtime) Run(ctx context.Context) error {
	return r.receptionist.Run(ctx)
}

// Shutdown tears the fabric down; every participant still blocked on it
// fails with a closed-fabric error.
func (r *Runtime) Shutdown() error {
	return r.fabric.Close()
}
