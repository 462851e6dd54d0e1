package receptionist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bistro/maitre/model"
	"github.com/bistro/maitre/restaurant"
	"github.com/bistro/maitre/service/fabric"
	fmemory "github.com/bistro/maitre/service/fabric/memory"
	jmemory "github.com/bistro/maitre/service/journal/memory"
	"github.com/bistro/maitre/service/patron"
)

func newTestService(t *testing.T, groups, tables int) (*Service, fabric.Fabric, *restaurant.Shared, *jmemory.Service) {
	t.Helper()
	f := fmemory.New(fmemory.Config{Groups: groups, Tables: tables})
	shared := restaurant.NewShared(f, groups, tables)
	j := jmemory.New()
	svc, err := New(
		WithConfig(Config{Groups: groups, Tables: tables}),
		WithFabric(f),
		WithShared(shared),
		WithJournal(j),
	)
	assert.NoError(t, err)
	return svc, f, shared, j
}

func groupsWaiting(t *testing.T, shared *restaurant.Shared) int {
	t.Helper()
	st, err := shared.Acquire(context.Background())
	assert.NoError(t, err)
	waiting := st.GroupsWaiting
	assert.NoError(t, shared.Release())
	return waiting
}

func assignedTable(t *testing.T, shared *restaurant.Shared, group int) int {
	t.Helper()
	st, err := shared.Acquire(context.Background())
	assert.NoError(t, err)
	table := st.AssignedTable[group]
	assert.NoError(t, shared.Release())
	return table
}

// TestTableHandoff walks the canonical single-table scenario: group 0 is
// seated immediately, group 1 waits, and paying hands the table over without
// it ever appearing free.
func TestTableHandoff(t *testing.T) {
	svc, f, shared, _ := newTestService(t, 2, 1)
	ctx := context.Background()

	groupA := patron.New(0, shared, f)
	groupB := patron.New(1, shared, f)

	// Group 0 requests a table and is seated at table 0.
	tableA := make(chan int, 1)
	go func() {
		table, err := groupA.RequestTable(ctx)
		assert.NoError(t, err)
		tableA <- table
	}()
	req, err := svc.WaitForGroup(ctx)
	assert.NoError(t, err)
	assert.Equal(t, model.Request{Kind: model.TableRequest, Group: 0}, req)
	assert.NoError(t, svc.ProvideTableOrWaitingRoom(ctx, req.Group))
	assert.Equal(t, 0, <-tableA)
	assert.Equal(t, model.PhaseAtTable, svc.Phase(0))

	// Group 1 requests a table while group 0 still holds it and is parked.
	tableB := make(chan int, 1)
	go func() {
		table, err := groupB.RequestTable(ctx)
		assert.NoError(t, err)
		tableB <- table
	}()
	req, err = svc.WaitForGroup(ctx)
	assert.NoError(t, err)
	assert.Equal(t, model.Request{Kind: model.TableRequest, Group: 1}, req)
	assert.NoError(t, svc.ProvideTableOrWaitingRoom(ctx, req.Group))
	assert.Equal(t, model.PhaseWaiting, svc.Phase(1))
	assert.Equal(t, 1, groupsWaiting(t, shared))
	select {
	case table := <-tableB:
		t.Fatalf("group 1 was granted table %d while the inventory was full", table)
	case <-time.After(20 * time.Millisecond):
	}

	// Group 0 pays; the table hands off to group 1.
	assert.NoError(t, groupA.RequestBill(ctx))
	req, err = svc.WaitForGroup(ctx)
	assert.NoError(t, err)
	assert.Equal(t, model.Request{Kind: model.BillRequest, Group: 0}, req)
	assert.NoError(t, svc.ReceivePayment(ctx, req.Group))

	assert.Equal(t, 0, <-tableB)
	assert.Equal(t, model.PhaseDone, svc.Phase(0))
	assert.Equal(t, model.PhaseAtTable, svc.Phase(1))
	assert.Equal(t, 0, groupsWaiting(t, shared))
	assert.Equal(t, restaurant.Unassigned, assignedTable(t, shared, 0))
	assert.Equal(t, 0, assignedTable(t, shared, 1))

	// The vacancy signal fired for table 0, after the handoff was recorded.
	assert.NoError(t, f.TableVacated(0).Acquire(ctx))
}

// TestConcurrentSeating seats two groups on two free tables in whichever
// order their requests arrive; nobody ever waits and the tables are distinct.
func TestConcurrentSeating(t *testing.T) {
	svc, f, shared, j := newTestService(t, 2, 2)
	ctx := context.Background()

	runErr := make(chan error, 1)
	go func() {
		runErr <- svc.Run(ctx)
	}()

	tables := make(chan int, 2)
	for g := 0; g < 2; g++ {
		go func(group int) {
			p := patron.New(group, shared, f)
			table, err := p.RequestTable(ctx)
			assert.NoError(t, err)
			tables <- table
			assert.NoError(t, p.RequestBill(ctx))
		}(g)
	}

	assert.NoError(t, <-runErr)
	first, second := <-tables, <-tables
	assert.NotEqual(t, first, second)
	assert.Contains(t, []int{0, 1}, first)
	assert.Contains(t, []int{0, 1}, second)

	assert.Equal(t, model.PhaseDone, svc.Phase(0))
	assert.Equal(t, model.PhaseDone, svc.Phase(1))
	for _, entry := range j.Entries() {
		assert.Equal(t, 0, entry.State.GroupsWaiting)
	}
}

// TestPaymentWithoutWaiters covers a bill with an empty waiting room: the
// vacancy fires, no grant fires and the payer's binding is cleared.
func TestPaymentWithoutWaiters(t *testing.T) {
	svc, f, shared, _ := newTestService(t, 1, 1)
	ctx := context.Background()

	p := patron.New(0, shared, f)
	table := make(chan int, 1)
	go func() {
		got, err := p.RequestTable(ctx)
		assert.NoError(t, err)
		table <- got
	}()
	req, err := svc.WaitForGroup(ctx)
	assert.NoError(t, err)
	assert.NoError(t, svc.ProvideTableOrWaitingRoom(ctx, req.Group))
	assert.Equal(t, 0, <-table)

	assert.NoError(t, p.RequestBill(ctx))
	req, err = svc.WaitForGroup(ctx)
	assert.NoError(t, err)
	assert.NoError(t, svc.ReceivePayment(ctx, req.Group))

	assert.Equal(t, model.PhaseDone, svc.Phase(0))
	assert.Equal(t, restaurant.Unassigned, assignedTable(t, shared, 0))
	assert.NoError(t, f.TableVacated(0).Acquire(ctx))

	// No grant signal fired for anyone.
	grantCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, f.TableGranted(0).Acquire(grantCtx), context.DeadlineExceeded)
}

// TestRunServesTwoRequestsPerGroup drives a full simulation through Run and
// checks the journal saw one status per wait plus one per handler.
func TestRunServesTwoRequestsPerGroup(t *testing.T) {
	svc, f, shared, j := newTestService(t, 3, 2)
	ctx := context.Background()

	runErr := make(chan error, 1)
	go func() {
		runErr <- svc.Run(ctx)
	}()

	done := make(chan struct{}, 3)
	for g := 0; g < 3; g++ {
		go func(group int) {
			p := patron.New(group, shared, f)
			_, err := p.RequestTable(ctx)
			assert.NoError(t, err)
			assert.NoError(t, p.RequestBill(ctx))
			done <- struct{}{}
		}(g)
	}

	assert.NoError(t, <-runErr)
	for g := 0; g < 3; g++ {
		<-done
		assert.Equal(t, model.PhaseDone, svc.Phase(g))
	}
	// 6 waits, 3 assignments, 3 payments.
	assert.Equal(t, 12, j.Len())
	entries := j.Entries()
	assert.Equal(t, model.StatusWaitingForRequest, entries[0].State.Status)
	for i, entry := range entries {
		assert.Equal(t, i+1, entry.Seq)
	}

	// No table was ever double-booked in any journaled snapshot.
	for _, entry := range entries {
		seen := map[int]int{}
		for group, table := range entry.State.AssignedTable {
			if table == restaurant.Unassigned {
				continue
			}
			if other, ok := seen[table]; ok {
				t.Fatalf("table %d bound to both group %d and group %d", table, other, group)
			}
			seen[table] = group
		}
	}
}

func TestUnknownRequestKind(t *testing.T) {
	svc, f, shared, _ := newTestService(t, 1, 1)
	ctx := context.Background()

	st, err := shared.Acquire(ctx)
	assert.NoError(t, err)
	st.Pending = &model.Request{Kind: "pizza", Group: 0}
	assert.NoError(t, shared.Release())
	assert.NoError(t, f.RequestReady().Release())

	err = svc.Run(ctx)
	assert.ErrorIs(t, err, ErrProtocolViolation)
}

func TestBillWithoutTable(t *testing.T) {
	svc, f, shared, _ := newTestService(t, 1, 1)
	ctx := context.Background()

	p := patron.New(0, shared, f)
	assert.NoError(t, p.RequestBill(ctx))
	req, err := svc.WaitForGroup(ctx)
	assert.NoError(t, err)
	assert.ErrorIs(t, svc.ReceivePayment(ctx, req.Group), ErrProtocolViolation)
}

func TestEmptyRequestSlot(t *testing.T) {
	svc, f, _, _ := newTestService(t, 1, 1)
	ctx := context.Background()

	assert.NoError(t, f.RequestReady().Release())
	_, err := svc.WaitForGroup(ctx)
	assert.ErrorIs(t, err, ErrProtocolViolation)
}

func TestClosedFabricIsFatal(t *testing.T) {
	svc, f, _, _ := newTestService(t, 1, 1)
	assert.NoError(t, f.Close())

	_, err := svc.WaitForGroup(context.Background())
	assert.ErrorIs(t, err, ErrSynchronization)
}

func TestNewValidatesDependencies(t *testing.T) {
	f := fmemory.New(fmemory.Config{Groups: 1, Tables: 1})
	shared := restaurant.NewShared(f, 1, 1)

	_, err := New(WithShared(shared), WithJournal(jmemory.New()))
	assert.Error(t, err)
	_, err = New(WithFabric(f), WithJournal(jmemory.New()))
	assert.Error(t, err)
	_, err = New(WithFabric(f), WithShared(shared))
	assert.Error(t, err)
	_, err = New(
		WithConfig(Config{Groups: 0, Tables: 1}),
		WithFabric(f), WithShared(shared), WithJournal(jmemory.New()),
	)
	assert.Error(t, err)
}
