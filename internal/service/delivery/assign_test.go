package delivery_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"delivery-coordinator/internal/apperr"
	"delivery-coordinator/internal/domain"
)

func TestService_Assign_Success(t *testing.T) {
	t.Parallel()

	ctrl := newCtrl(t)
	repo := NewMockrequestRepository(ctrl)

	tx := &stubTx{
		getRequestFn: func(_ context.Context, id int64) (*domain.DeliveryRequest, error) {
			require.Equal(t, int64(7), id)
			return pendingRequest(7), nil
		},
		getUserFn: func(_ context.Context, id int64) (*domain.User, error) {
			require.Equal(t, int64(3), id)
			return courierUser(3, domain.AvailabilityAvailable), nil
		},
	}
	repo.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runIn(tx))

	res, err := newService(repo, true).Assign(context.Background(), 7, 3)

	require.NoError(t, err)
	require.Equal(t, domain.AssignResult{RequestID: 7, CourierID: 3, State: domain.StatePickingUp}, res)
	require.True(t, tx.assigned)
	require.Equal(t, domain.AvailabilityBusy, tx.available[3])
}

func TestService_Assign_InvalidIDs(t *testing.T) {
	t.Parallel()

	ctrl := newCtrl(t)
	repo := NewMockrequestRepository(ctrl)
	svc := newService(repo, true)

	_, err := svc.Assign(context.Background(), 0, 3)
	require.ErrorIs(t, err, apperr.ErrInvalid)

	_, err = svc.Assign(context.Background(), 7, -1)
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestService_Assign_Preconditions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     *domain.DeliveryRequest
		user    *domain.User
		wantErr error
	}{
		{
			name:    "request missing",
			req:     nil,
			wantErr: apperr.ErrNotFound,
		},
		{
			name:    "request not pending",
			req:     assignedRequest(7, 9, domain.StatePickingUp),
			wantErr: apperr.ErrConflict,
		},
		{
			name:    "courier missing",
			req:     pendingRequest(7),
			user:    nil,
			wantErr: apperr.ErrNotFound,
		},
		{
			name:    "user is not a courier",
			req:     pendingRequest(7),
			user:    &domain.User{ID: 3, Role: domain.RoleClient, Availability: domain.AvailabilityAvailable},
			wantErr: apperr.ErrInvalid,
		},
		{
			name:    "courier busy",
			req:     pendingRequest(7),
			user:    courierUser(3, domain.AvailabilityBusy),
			wantErr: apperr.ErrConflict,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := newCtrl(t)
			repo := NewMockrequestRepository(ctrl)
			tx := &stubTx{
				getRequestFn: func(context.Context, int64) (*domain.DeliveryRequest, error) { return tc.req, nil },
				getUserFn:    func(context.Context, int64) (*domain.User, error) { return tc.user, nil },
			}
			repo.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runIn(tx))

			res, err := newService(repo, true).Assign(context.Background(), 7, 3)

			require.ErrorIs(t, err, tc.wantErr)
			require.Equal(t, domain.AssignResult{}, res)
			require.False(t, tx.assigned)
			require.Empty(t, tx.available, "courier availability must not change")
		})
	}
}

func TestService_Assign_StoreErrors(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("set availability failed")

	ctrl := newCtrl(t)
	repo := NewMockrequestRepository(ctrl)
	tx := &stubTx{
		getRequestFn: func(context.Context, int64) (*domain.DeliveryRequest, error) { return pendingRequest(7), nil },
		getUserFn: func(context.Context, int64) (*domain.User, error) {
			return courierUser(3, domain.AvailabilityAvailable), nil
		},
		setAvailFn: func(context.Context, int64, domain.Availability) error { return wantErr },
	}
	repo.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runIn(tx))

	_, err := newService(repo, true).Assign(context.Background(), 7, 3)
	require.ErrorIs(t, err, wantErr)
}

func TestService_Assign_CommitFailure(t *testing.T) {
	t.Parallel()

	ctrl := newCtrl(t)
	repo := NewMockrequestRepository(ctrl)
	commitErr := apperr.E(apperr.ErrTransaction, "commit tx", errors.New("connection reset"))
	repo.EXPECT().WithTx(gomock.Any(), gomock.Any()).Return(commitErr)

	res, err := newService(repo, true).Assign(context.Background(), 7, 3)

	require.ErrorIs(t, err, apperr.ErrTransaction)
	require.Equal(t, domain.AssignResult{}, res)
}

func TestService_Assign_DeadlineIsRetryable(t *testing.T) {
	t.Parallel()

	ctrl := newCtrl(t)
	repo := NewMockrequestRepository(ctrl)
	repo.EXPECT().WithTx(gomock.Any(), gomock.Any()).Return(context.DeadlineExceeded)

	_, err := newService(repo, true).Assign(context.Background(), 7, 3)

	require.ErrorIs(t, err, apperr.ErrTimeout)
	require.True(t, apperr.Retryable(err))
}

func TestService_Assign_PassesBoundedContext(t *testing.T) {
	t.Parallel()

	ctrl := newCtrl(t)
	repo := NewMockrequestRepository(ctrl)
	repo.EXPECT().WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ interface{}) error {
			_, ok := ctx.Deadline()
			require.True(t, ok, "transaction must carry a deadline")
			return apperr.ErrNotFound
		})

	_, err := newService(repo, true).Assign(context.Background(), 7, 3)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}
