package kafka_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"delivery-coordinator/internal/service/statusevents"
	"delivery-coordinator/internal/transport/kafka"
)

func TestToDomain_TrimsAndCopiesFields(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	id := uuid.New()

	got, err := kafka.ToDomain(kafka.EventDTO{
		EventID:    " " + id.String() + " ",
		RequestID:  7,
		CourierID:  3,
		State:      "  en camino  ",
		OccurredAt: ts,
	})

	require.NoError(t, err)
	require.Equal(t, statusevents.Event{
		ID:         id,
		RequestID:  7,
		CourierID:  3,
		State:      "en camino",
		OccurredAt: ts,
	}, got)
}

func TestToDomain_GeneratesMissingEventID(t *testing.T) {
	t.Parallel()

	got, err := kafka.ToDomain(kafka.EventDTO{RequestID: 7, CourierID: 3, State: "delivered"})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, got.ID)
}

func TestToDomain_Rejects(t *testing.T) {
	t.Parallel()

	for _, dto := range []kafka.EventDTO{
		{RequestID: 0, CourierID: 3},
		{RequestID: 7, CourierID: -1},
		{RequestID: 7, CourierID: 3, EventID: "not-a-uuid"},
	} {
		_, err := kafka.ToDomain(dto)
		require.Error(t, err)
	}
}
