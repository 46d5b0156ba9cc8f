package handlers

import (
	"context"

	"delivery-coordinator/internal/domain"
)

type stubIdentity struct {
	registerFn     func(ctx context.Context, r domain.Registration) (int64, error)
	authenticateFn func(ctx context.Context, key, pass string) (domain.Session, error)
	createUserFn   func(ctx context.Context, d domain.UserDraft) (int64, error)
	deleteUserFn   func(ctx context.Context, id int64) error
}

func (s *stubIdentity) Register(ctx context.Context, r domain.Registration) (int64, error) {
	if s.registerFn == nil {
		panic("Register not expected in this test")
	}
	return s.registerFn(ctx, r)
}

func (s *stubIdentity) Authenticate(ctx context.Context, key, pass string) (domain.Session, error) {
	if s.authenticateFn == nil {
		panic("Authenticate not expected in this test")
	}
	return s.authenticateFn(ctx, key, pass)
}

func (s *stubIdentity) CreateUser(ctx context.Context, d domain.UserDraft) (int64, error) {
	if s.createUserFn == nil {
		panic("CreateUser not expected in this test")
	}
	return s.createUserFn(ctx, d)
}

func (s *stubIdentity) DeleteUser(ctx context.Context, id int64) error {
	if s.deleteUserFn == nil {
		panic("DeleteUser not expected in this test")
	}
	return s.deleteUserFn(ctx, id)
}

type stubDelivery struct {
	createFn     func(ctx context.Context, in domain.NewRequest) (int64, error)
	assignFn     func(ctx context.Context, requestID, courierID int64) (domain.AssignResult, error)
	transitionFn func(ctx context.Context, requestID, courierID int64, target domain.RequestState) (domain.TransitionResult, error)
}

func (s *stubDelivery) Create(ctx context.Context, in domain.NewRequest) (int64, error) {
	if s.createFn == nil {
		panic("Create not expected in this test")
	}
	return s.createFn(ctx, in)
}

func (s *stubDelivery) Assign(ctx context.Context, requestID, courierID int64) (domain.AssignResult, error) {
	if s.assignFn == nil {
		panic("Assign not expected in this test")
	}
	return s.assignFn(ctx, requestID, courierID)
}

func (s *stubDelivery) Transition(ctx context.Context, requestID, courierID int64, target domain.RequestState) (domain.TransitionResult, error) {
	if s.transitionFn == nil {
		panic("Transition not expected in this test")
	}
	return s.transitionFn(ctx, requestID, courierID, target)
}

type stubQuery struct {
	pendingFn  func(ctx context.Context) ([]domain.PendingRequest, error)
	historyFn  func(ctx context.Context, clientID int64) ([]domain.ClientRequest, error)
	activeFn   func(ctx context.Context, courierID int64) (*domain.CourierRequest, error)
	couriersFn func(ctx context.Context) ([]domain.CourierSummary, error)
}

func (s *stubQuery) PendingQueue(ctx context.Context) ([]domain.PendingRequest, error) {
	if s.pendingFn == nil {
		panic("PendingQueue not expected in this test")
	}
	return s.pendingFn(ctx)
}

func (s *stubQuery) ClientHistory(ctx context.Context, clientID int64) ([]domain.ClientRequest, error) {
	if s.historyFn == nil {
		panic("ClientHistory not expected in this test")
	}
	return s.historyFn(ctx, clientID)
}

func (s *stubQuery) CourierActive(ctx context.Context, courierID int64) (*domain.CourierRequest, error) {
	if s.activeFn == nil {
		panic("CourierActive not expected in this test")
	}
	return s.activeFn(ctx, courierID)
}

func (s *stubQuery) Couriers(ctx context.Context) ([]domain.CourierSummary, error) {
	if s.couriersFn == nil {
		panic("Couriers not expected in this test")
	}
	return s.couriersFn(ctx)
}
