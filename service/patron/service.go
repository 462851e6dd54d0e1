package patron

import (
	"context"
	"fmt"

	"github.com/bistro/maitre/model"
	"github.com/bistro/maitre/restaurant"
	"github.com/bistro/maitre/service/fabric"
)

// Service is the group-side client of the synchronization fabric. Each
// instance drives a single group through its table-then-bill lifecycle and
// honours the request-delivery contract: reserve the slot, write the
// request under the guard, signal the receptionist.
type Service struct {
	group  int
	shared *restaurant.Shared
	fabric fabric.Fabric
}

// New creates a client for the given group id.
func New(group int, shared *restaurant.Shared, f fabric.Fabric) *Service {
	return &Service{group: group, shared: shared, fabric: f}
}

// Group returns the group id this client acts for.
func (p *Service) Group() int {
	return p.group
}

// RequestTable deposits a table request and blocks until the receptionist
// binds a table to this group, then returns the table id. The wait is
// unbounded; cancel ctx to abandon it.
func (p *Service) RequestTable(ctx context.Context) (int, error) {
	if err := p.submit(ctx, model.TableRequest); err != nil {
		return restaurant.Unassigned, err
	}
	if err := p.fabric.TableGranted(p.group).Acquire(ctx); err != nil {
		return restaurant.Unassigned, fmt.Errorf("group %d failed waiting for a table: %w", p.group, err)
	}
	st, err := p.shared.Acquire(ctx)
	if err != nil {
		return restaurant.Unassigned, fmt.Errorf("group %d failed reading its table: %w", p.group, err)
	}
	table := st.AssignedTable[p.group]
	if err := p.shared.Release(); err != nil {
		return restaurant.Unassigned, fmt.Errorf("group %d failed reading its table: %w", p.group, err)
	}
	return table, nil
}

// RequestBill asks the receptionist to settle the bill. The vacancy signal
// that follows is consumed by table-management collaborators, not by the
// paying group, so the call returns as soon as the request is delivered.
func (p *Service) RequestBill(ctx context.Context) error {
	return p.submit(ctx, model.BillRequest)
}

// submit reserves the request slot, writes the request into it under the
// guard and wakes the receptionist.
func (p *Service) submit(ctx context.Context, kind model.RequestKind) error {
	if err := p.fabric.SlotFree().Acquire(ctx); err != nil {
		return fmt.Errorf("group %d failed reserving the request slot: %w", p.group, err)
	}
	st, err := p.shared.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("group %d failed writing its request: %w", p.group, err)
	}
	st.Pending = &model.Request{Kind: kind, Group: p.group}
	if err := p.shared.Release(); err != nil {
		return fmt.Errorf("group %d failed writing its request: %w", p.group, err)
	}
	if err := p.fabric.RequestReady().Release(); err != nil {
		return fmt.Errorf("group %d failed signalling its request: %w", p.group, err)
	}
	return nil
}
