package requesttx

import (
	"context"

	"delivery-coordinator/internal/domain"
)

// Repository is the set of row-locking operations available inside a request transaction.
// Lock order is always the request row first, then the courier row.
type Repository interface {
	GetRequestForUpdate(ctx context.Context, id int64) (*domain.DeliveryRequest, error)
	GetUserForUpdate(ctx context.Context, id int64) (*domain.User, error)
	AssignCourier(ctx context.Context, requestID, courierID int64) error
	UpdateRequestState(ctx context.Context, id int64, state domain.RequestState) error
	SetAvailability(ctx context.Context, userID int64, availability domain.Availability) error
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
