package statusevents

import (
	"time"

	"github.com/google/uuid"
)

// Event is a courier-reported status change for a delivery request.
type Event struct {
	ID         uuid.UUID
	RequestID  int64
	CourierID  int64
	State      string
	OccurredAt time.Time
}
