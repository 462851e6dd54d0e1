package restaurant

import (
	"github.com/bistro/maitre/internal/clock"
	"github.com/bistro/maitre/model"
)

// Unassigned marks a group without a table in the assignment record.
const Unassigned = -1

// State is the shared restaurant record: per-group table bindings, the count
// of waiting groups, the pending request slot and the receptionist's public
// status. Instances are only reachable through Shared.Acquire, so every
// mutation happens under the mutual-exclusion gate.
type State struct {
	// AssignedTable maps a group id to its table id, or Unassigned.
	AssignedTable []int
	// GroupsWaiting counts groups currently parked in the waiting room.
	GroupsWaiting int
	// Pending is the request slot; nil when no request is undelivered.
	Pending *model.Request
	// Status is the receptionist's public state.
	Status model.Status
	// Tables is the size of the fixed table inventory.
	Tables int
}

func newState(groups, tables int) *State {
	st := &State{
		AssignedTable: make([]int, groups),
		Status:        model.StatusWaitingForRequest,
		Tables:        tables,
	}
	for g := range st.AssignedTable {
		st.AssignedTable[g] = Unassigned
	}
	return st
}

// Occupied reports whether the table is currently bound to any group.
func (s *State) Occupied(table int) bool {
	for _, assigned := range s.AssignedTable {
		if assigned == table {
			return true
		}
	}
	return false
}

// FreeTable scans the inventory and returns the lowest free table id, or
// Unassigned when every table is occupied.
func (s *State) FreeTable() int {
	for table := 0; table < s.Tables; table++ {
		if !s.Occupied(table) {
			return table
		}
	}
	return Unassigned
}

// Snapshot returns a point-in-time copy that stays valid after the guard has
// been released.
func (s *State) Snapshot() *model.Snapshot {
	assigned := make([]int, len(s.AssignedTable))
	copy(assigned, s.AssignedTable)
	var pending *model.Request
	if s.Pending != nil {
		req := *s.Pending
		pending = &req
	}
	return &model.Snapshot{
		Status:        s.Status,
		AssignedTable: assigned,
		GroupsWaiting: s.GroupsWaiting,
		Pending:       pending,
		TakenAt:       clock.Now(),
	}
}
