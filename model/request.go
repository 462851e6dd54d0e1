package model

// RequestKind discriminates the two request types a group can issue to the
// front desk.
type RequestKind string

const (
	// TableRequest asks the receptionist for a table.
	TableRequest RequestKind = "table"

	// BillRequest asks the receptionist to settle the group's bill.
	BillRequest RequestKind = "bill"
)

// IsValid reports whether the kind is one of the two known request kinds.
func (k RequestKind) IsValid() bool {
	return k == TableRequest || k == BillRequest
}

// Request is a single message a group deposits into the shared request slot.
// It is written once per request cycle and consumed exactly once by the
// receptionist before the slot is freed for reuse.
type Request struct {
	Kind  RequestKind `json:"kind"`
	Group int         `json:"group"`
}
