package model

import "time"

// Snapshot is a point-in-time copy of the shared restaurant record. The
// receptionist appends one to the journal on every status change, before any
// further state mutation in that handler proceeds, so journal order matches
// decision order.
type Snapshot struct {
	Status        Status    `json:"status"`
	AssignedTable []int     `json:"assignedTable"`
	GroupsWaiting int       `json:"groupsWaiting"`
	Pending       *Request  `json:"pending,omitempty"`
	TakenAt       time.Time `json:"takenAt"`
}
