package receptionist

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bistro/maitre/model"
	"github.com/bistro/maitre/restaurant"
	"github.com/bistro/maitre/service/fabric"
	"github.com/bistro/maitre/service/journal"
	"github.com/bistro/maitre/tracing"
)

// Config represents receptionist service configuration.
type Config struct {
	// Groups is the number of group processes the receptionist serves.
	Groups int
	// Tables is the size of the fixed table inventory.
	Tables int
}

// DefaultConfig returns the default receptionist configuration.
func DefaultConfig() Config {
	return Config{Groups: 3, Tables: 2}
}

// Service is the coordinating actor of the simulation. It owns the private
// group ledger and the waitlist; everything else it touches lives in the
// shared record and is only reached under the guard.
type Service struct {
	config  Config
	shared  *restaurant.Shared
	fabric  fabric.Fabric
	journal journal.Service

	// ledger shadows each group's lifecycle phase; waitlist keeps groups
	// without a table in arrival order. Both are owned exclusively by the
	// actor goroutine and never shared.
	ledger   []model.Phase
	waitlist []int
}

// New creates a receptionist service.
func New(options ...Option) (*Service, error) {
	s := &Service{config: DefaultConfig()}
	for _, opt := range options {
		opt(s)
	}
	if s.fabric == nil {
		return nil, fmt.Errorf("fabric is required")
	}
	if s.shared == nil {
		return nil, fmt.Errorf("shared restaurant record is required")
	}
	if s.journal == nil {
		return nil, fmt.Errorf("journal is required")
	}
	if s.config.Groups <= 0 || s.config.Tables <= 0 {
		return nil, fmt.Errorf("groups and tables must be > 0")
	}
	s.ledger = make([]model.Phase, s.config.Groups)
	for g := range s.ledger {
		s.ledger[g] = model.PhaseToArrive
	}
	return s, nil
}

// Phase returns the ledger phase of the given group, PhaseDone for
// out-of-range ids. Call it only while the actor is quiescent; the ledger
// belongs to the actor goroutine.
func (s *Service) Phase(group int) model.Phase {
	if group < 0 || group >= len(s.ledger) {
		return model.PhaseDone
	}
	return s.ledger[group]
}

// Run processes exactly two requests per group (one table request, one bill
// request) and then returns nil. Any fabric failure or producer contract
// breach aborts the loop immediately with the wrapped error; the shared
// record is not safe to continue from at that point.
func (s *Service) Run(ctx context.Context) error {
	total := 2 * s.config.Groups
	for served := 0; served < total; served++ {
		req, err := s.WaitForGroup(ctx)
		if err != nil {
			return err
		}
		if req.Group < 0 || req.Group >= s.config.Groups {
			return fmt.Errorf("%w: request from unknown group %d", ErrProtocolViolation, req.Group)
		}
		if !req.Kind.IsValid() {
			return fmt.Errorf("%w: unknown request kind %q from group %d", ErrProtocolViolation, req.Kind, req.Group)
		}
		if req.Kind == model.TableRequest {
			err = s.ProvideTableOrWaitingRoom(ctx, req.Group)
		} else {
			err = s.ReceivePayment(ctx, req.Group)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// WaitForGroup blocks until the next request arrives and returns it. The
// status is published before the wait; the slot is freed only after the
// request has been copied out, so a producer can never overwrite an
// undelivered request.
func (s *Service) WaitForGroup(ctx context.Context) (req model.Request, err error) {
	ctx, span := tracing.StartSpan(ctx, "receptionist.waitForGroup", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()

	if err = s.publishStatus(ctx, model.StatusWaitingForRequest); err != nil {
		return req, err
	}
	if aerr := s.fabric.RequestReady().Acquire(ctx); aerr != nil {
		err = syncFailure("waiting for a group request", aerr)
		return req, err
	}
	st, aerr := s.shared.Acquire(ctx)
	if aerr != nil {
		err = syncFailure("reading the request slot", aerr)
		return req, err
	}
	if st.Pending == nil {
		_ = s.shared.Release()
		err = fmt.Errorf("%w: request slot empty after request signal", ErrProtocolViolation)
		return req, err
	}
	req = *st.Pending
	st.Pending = nil
	if rerr := s.shared.Release(); rerr != nil {
		err = syncFailure("releasing the request slot", rerr)
		return req, err
	}
	if rerr := s.fabric.SlotFree().Release(); rerr != nil {
		err = syncFailure("freeing the request slot", rerr)
		return req, err
	}
	span.WithAttributes(map[string]string{
		"request.kind":  string(req.Kind),
		"request.group": strconv.Itoa(req.Group),
	})
	return req, nil
}

// ProvideTableOrWaitingRoom decides whether the group occupies a table or
// waits. On a grant the table is bound in the assignment record and exactly
// that group's grant semaphore fires; on a wait no signal is sent and the
// group stays blocked until a future payment hands a table over to it.
func (s *Service) ProvideTableOrWaitingRoom(ctx context.Context, group int) (err error) {
	ctx, span := tracing.StartSpan(ctx, "receptionist.provideTableOrWaitingRoom", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{"group": strconv.Itoa(group)})

	st, aerr := s.shared.Acquire(ctx)
	if aerr != nil {
		err = syncFailure("assigning a table", aerr)
		return err
	}
	st.Status = model.StatusAssigningTable
	if jerr := s.journal.Record(ctx, st.Snapshot()); jerr != nil {
		_ = s.shared.Release()
		err = fmt.Errorf("failed to journal table assignment: %w", jerr)
		return err
	}

	if table := s.decideTableOrWait(st, group); table != restaurant.Unassigned {
		st.AssignedTable[group] = table
		if gerr := s.fabric.TableGranted(group).Release(); gerr != nil {
			_ = s.shared.Release()
			err = syncFailure("granting a table", gerr)
			return err
		}
		span.WithAttributes(map[string]string{"table": strconv.Itoa(table)})
	}

	if rerr := s.shared.Release(); rerr != nil {
		err = syncFailure("finishing table assignment", rerr)
	}
	return err
}

// ReceivePayment settles the group's bill and decides whether its table is
// handed straight to a waiting group. Any handoff is recorded while the
// guard is still held, so the table never appears free in between; the
// per-table vacancy signal fires only after the guard is released and always
// reflects a post-handoff state.
func (s *Service) ReceivePayment(ctx context.Context, group int) (err error) {
	ctx, span := tracing.StartSpan(ctx, "receptionist.receivePayment", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{"group": strconv.Itoa(group)})

	st, aerr := s.shared.Acquire(ctx)
	if aerr != nil {
		err = syncFailure("receiving a payment", aerr)
		return err
	}
	st.Status = model.StatusReceivingPayment
	if jerr := s.journal.Record(ctx, st.Snapshot()); jerr != nil {
		_ = s.shared.Release()
		err = fmt.Errorf("failed to journal payment: %w", jerr)
		return err
	}

	table := st.AssignedTable[group]
	if table == restaurant.Unassigned {
		_ = s.shared.Release()
		err = fmt.Errorf("%w: group %d issued a bill request without a table", ErrProtocolViolation, group)
		return err
	}

	if next := s.decideNextGroup(st); next != noGroup {
		st.AssignedTable[next] = table
		if gerr := s.fabric.TableGranted(next).Release(); gerr != nil {
			_ = s.shared.Release()
			err = syncFailure("handing a table over", gerr)
			return err
		}
		span.WithAttributes(map[string]string{"handoff.group": strconv.Itoa(next)})
	}
	s.ledger[group] = model.PhaseDone
	st.AssignedTable[group] = restaurant.Unassigned

	if rerr := s.shared.Release(); rerr != nil {
		err = syncFailure("finishing payment", rerr)
		return err
	}
	// Outside the critical section: observers of the vacancy signal must see
	// the handoff already recorded, never a longer lock hold.
	if verr := s.fabric.TableVacated(table).Release(); verr != nil {
		err = syncFailure("announcing a vacated table", verr)
	}
	return err
}

// publishStatus sets the public status under the guard and journals the
// resulting snapshot before returning the gate.
func (s *Service) publishStatus(ctx context.Context, status model.Status) error {
	st, err := s.shared.Acquire(ctx)
	if err != nil {
		return syncFailure("publishing status", err)
	}
	st.Status = status
	if jerr := s.journal.Record(ctx, st.Snapshot()); jerr != nil {
		_ = s.shared.Release()
		return fmt.Errorf("failed to journal %s status: %w", status, jerr)
	}
	if rerr := s.shared.Release(); rerr != nil {
		return syncFailure("publishing status", rerr)
	}
	return nil
}
