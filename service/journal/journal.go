package journal

import (
	"context"
	"time"

	"github.com/bistro/maitre/model"
)

// Entry is a single journaled state transition.
type Entry struct {
	ID        string          `json:"id"`
	Seq       int             `json:"seq"`
	CreatedAt time.Time       `json:"createdAt"`
	State     *model.Snapshot `json:"state"`
}

// Service is the state log sink the receptionist writes to on every status
// change. Implementations must preserve call order: the Seq assigned to an
// entry reflects the order in which decisions were made under the gate.
type Service interface {
	Record(ctx context.Context, snapshot *model.Snapshot) error
}
