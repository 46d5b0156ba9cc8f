package delivery_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"delivery-coordinator/internal/domain"
	"delivery-coordinator/internal/logx"
	"delivery-coordinator/internal/ports/requesttx"
	"delivery-coordinator/internal/service/delivery"
)

func newCtrl(t *testing.T) *gomock.Controller {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return ctrl
}

// stubTx is an in-memory transaction. Writes are recorded, nothing is persisted.
type stubTx struct {
	getRequestFn func(context.Context, int64) (*domain.DeliveryRequest, error)
	getUserFn    func(context.Context, int64) (*domain.User, error)
	assignFn     func(context.Context, int64, int64) error
	updStateFn   func(context.Context, int64, domain.RequestState) error
	setAvailFn   func(context.Context, int64, domain.Availability) error

	assigned  bool
	newState  domain.RequestState
	available map[int64]domain.Availability
}

func (s *stubTx) GetRequestForUpdate(ctx context.Context, id int64) (*domain.DeliveryRequest, error) {
	if s.getRequestFn == nil {
		return nil, nil
	}
	return s.getRequestFn(ctx, id)
}

func (s *stubTx) GetUserForUpdate(ctx context.Context, id int64) (*domain.User, error) {
	if s.getUserFn == nil {
		return nil, nil
	}
	return s.getUserFn(ctx, id)
}

func (s *stubTx) AssignCourier(ctx context.Context, requestID, courierID int64) error {
	if s.assignFn != nil {
		if err := s.assignFn(ctx, requestID, courierID); err != nil {
			return err
		}
	}
	s.assigned = true
	return nil
}

func (s *stubTx) UpdateRequestState(ctx context.Context, id int64, st domain.RequestState) error {
	if s.updStateFn != nil {
		if err := s.updStateFn(ctx, id, st); err != nil {
			return err
		}
	}
	s.newState = st
	return nil
}

func (s *stubTx) SetAvailability(ctx context.Context, id int64, a domain.Availability) error {
	if s.setAvailFn != nil {
		if err := s.setAvailFn(ctx, id, a); err != nil {
			return err
		}
	}
	if s.available == nil {
		s.available = map[int64]domain.Availability{}
	}
	s.available[id] = a
	return nil
}

var _ requesttx.Repository = (*stubTx)(nil)

func runIn(tx *stubTx) func(context.Context, func(requesttx.Repository) error) error {
	return func(_ context.Context, fn func(requesttx.Repository) error) error {
		return fn(tx)
	}
}

func newService(repo *MockrequestRepository, strict bool) *delivery.Service {
	return delivery.NewService(repo, nil, logx.Nop(), delivery.Config{
		OperationTimeout:  3 * time.Second,
		StrictTransitions: strict,
	})
}

func ptr[T any](v T) *T { return &v }

func pendingRequest(id int64) *domain.DeliveryRequest {
	return &domain.DeliveryRequest{ID: id, ClientID: 1, Pickup: "A", Dropoff: "B", State: domain.StatePending}
}

func assignedRequest(id, courierID int64, st domain.RequestState) *domain.DeliveryRequest {
	return &domain.DeliveryRequest{ID: id, ClientID: 1, Pickup: "A", Dropoff: "B", CourierID: ptr(courierID), State: st}
}

func courierUser(id int64, a domain.Availability) *domain.User {
	return &domain.User{ID: id, Role: domain.RoleCourier, FirstName: "Luis", LastName: "Mora", Availability: a}
}
