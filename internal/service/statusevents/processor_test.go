package statusevents_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"delivery-coordinator/internal/apperr"
	"delivery-coordinator/internal/domain"
	"delivery-coordinator/internal/logx"
	"delivery-coordinator/internal/metrics"
	"delivery-coordinator/internal/service/statusevents"
)

func event(state string) statusevents.Event {
	return statusevents.Event{ID: uuid.New(), RequestID: 7, CourierID: 3, State: state}
}

func TestProcessor_Handle_AppliesAliasState(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := NewMockTransitionPort(ctrl)
	results := metrics.NewStatusEventsTotal()
	p := statusevents.NewProcessor(d, results, logx.Nop())

	d.EXPECT().
		Transition(gomock.Any(), int64(7), int64(3), domain.StateDelivered).
		Return(domain.TransitionResult{RequestID: 7, CourierID: 3, State: domain.StateDelivered}, nil)

	require.NoError(t, p.Handle(context.Background(), event("entregado")))
	require.Equal(t, 1.0, testutil.ToFloat64(results.WithLabelValues(statusevents.ResultApplied)))
}

func TestProcessor_Handle_UnknownStateIsPermanent(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := NewMockTransitionPort(ctrl)
	results := metrics.NewStatusEventsTotal()
	p := statusevents.NewProcessor(d, results, nil)

	for _, st := range []string{"volando", "pending", ""} {
		err := p.Handle(context.Background(), event(st))
		require.ErrorIs(t, err, apperr.ErrInvalid)
		require.True(t, statusevents.Permanent(err))
	}
	require.Equal(t, 3.0, testutil.ToFloat64(results.WithLabelValues(statusevents.ResultRejected)))
}

func TestProcessor_Handle_ClassifiesEngineErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		permanent bool
	}{
		{"not found", apperr.ErrNotFound, true},
		{"conflict", apperr.E(apperr.ErrConflict, "assign", nil), true},
		{"timeout", apperr.E(apperr.ErrTimeout, "tx", context.DeadlineExceeded), false},
		{"store down", errors.New("connection refused"), false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			d := NewMockTransitionPort(ctrl)
			p := statusevents.NewProcessor(d, nil, logx.Nop())

			d.EXPECT().
				Transition(gomock.Any(), int64(7), int64(3), domain.StateEnRoute).
				Return(domain.TransitionResult{}, tc.err)

			err := p.Handle(context.Background(), event("en camino"))
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, tc.permanent, statusevents.Permanent(err))
		})
	}
}
