package handlers

import (
	"context"

	"delivery-coordinator/internal/domain"
)

type identityUsecase interface {
	Register(ctx context.Context, r domain.Registration) (int64, error)
	Authenticate(ctx context.Context, loginKey, password string) (domain.Session, error)
	CreateUser(ctx context.Context, d domain.UserDraft) (int64, error)
	DeleteUser(ctx context.Context, id int64) error
}

type deliveryUsecase interface {
	Create(ctx context.Context, in domain.NewRequest) (int64, error)
	Assign(ctx context.Context, requestID, courierID int64) (domain.AssignResult, error)
	Transition(ctx context.Context, requestID, courierID int64, target domain.RequestState) (domain.TransitionResult, error)
}

type queryUsecase interface {
	PendingQueue(ctx context.Context) ([]domain.PendingRequest, error)
	ClientHistory(ctx context.Context, clientID int64) ([]domain.ClientRequest, error)
	CourierActive(ctx context.Context, courierID int64) (*domain.CourierRequest, error)
	Couriers(ctx context.Context) ([]domain.CourierSummary, error)
}

// Pinger checks that the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
