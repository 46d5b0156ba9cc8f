package kafka

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"delivery-coordinator/internal/service/statusevents"
)

// EventDTO is the wire form of a courier status event
type EventDTO struct {
	EventID    string    `json:"event_id"`
	RequestID  int64     `json:"request_id"`
	CourierID  int64     `json:"courier_id"`
	State      string    `json:"state"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ToDomain validates the DTO and converts it. A missing event id is generated.
func ToDomain(dto EventDTO) (statusevents.Event, error) {
	if dto.RequestID <= 0 {
		return statusevents.Event{}, errors.New("empty request_id")
	}
	if dto.CourierID <= 0 {
		return statusevents.Event{}, errors.New("empty courier_id")
	}

	id := uuid.New()
	if raw := strings.TrimSpace(dto.EventID); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return statusevents.Event{}, fmt.Errorf("event_id: %w", err)
		}
		id = parsed
	}

	return statusevents.Event{
		ID:         id,
		RequestID:  dto.RequestID,
		CourierID:  dto.CourierID,
		State:      strings.TrimSpace(dto.State),
		OccurredAt: dto.OccurredAt,
	}, nil
}
