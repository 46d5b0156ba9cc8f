package query

import (
	"context"

	"delivery-coordinator/internal/domain"
)

// projectionRepository serves the read models.
type projectionRepository interface {
	PendingQueue(ctx context.Context) ([]domain.PendingRequest, error)
	ClientHistory(ctx context.Context, clientID int64) ([]domain.ClientRequest, error)
	CourierActive(ctx context.Context, courierID int64) (*domain.CourierRequest, error)
}

type userLister interface {
	ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
}
