package receptionist

import (
	"github.com/bistro/maitre/model"
	"github.com/bistro/maitre/restaurant"
)

// noGroup marks a vacancy decision with no waiting candidate.
const noGroup = -1

// decideTableOrWait picks a table for the group or parks it in the waiting
// room. The caller must hold the shared-state guard. On the assign branch the
// ledger entry flips to AtTable and the free table id is returned; on the
// wait branch the group joins the arrival-ordered waitlist, GroupsWaiting
// grows by one and restaurant.Unassigned is returned. The decision is
// deterministic for a given occupancy snapshot.
func (s *Service) decideTableOrWait(st *restaurant.State, group int) int {
	table := st.FreeTable()
	if table == restaurant.Unassigned {
		s.ledger[group] = model.PhaseWaiting
		s.waitlist = append(s.waitlist, group)
		st.GroupsWaiting++
		return restaurant.Unassigned
	}
	s.ledger[group] = model.PhaseAtTable
	return table
}

// decideNextGroup selects the group that takes over a just-vacated table.
// The caller must hold the shared-state guard. Candidates leave the waitlist
// in arrival order. Returns noGroup when nobody is waiting; asking again
// without new arrivals yields noGroup again.
func (s *Service) decideNextGroup(st *restaurant.State) int {
	if st.GroupsWaiting == 0 || len(s.waitlist) == 0 {
		return noGroup
	}
	group := s.waitlist[0]
	s.waitlist = s.waitlist[1:]
	s.ledger[group] = model.PhaseAtTable
	st.GroupsWaiting--
	return group
}
