package model

// Status is the receptionist's public state, exposed in the shared record
// for observability. It changes at the start of each handler and is
// journaled immediately afterwards.
type Status string

const (
	StatusWaitingForRequest Status = "waitingForRequest"
	StatusAssigningTable    Status = "assigningTable"
	StatusReceivingPayment  Status = "receivingPayment"
)

// Phase tracks a single group's lifecycle as seen by the receptionist's
// private ledger: ToArrive -> {Waiting | AtTable} -> Done.
type Phase string

const (
	PhaseToArrive Phase = "toArrive"
	PhaseWaiting  Phase = "waiting"
	PhaseAtTable  Phase = "atTable"
	PhaseDone     Phase = "done"
)
