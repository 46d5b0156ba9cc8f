package query

import (
	"context"
	"fmt"
	"time"

	"delivery-coordinator/internal/apperr"
	"delivery-coordinator/internal/domain"
)

// Service exposes side-effect free projections over requests and couriers.
type Service struct {
	repo             projectionRepository
	users            userLister
	operationTimeout time.Duration
}

// NewService creates and configures a query Service.
func NewService(r projectionRepository, users userLister, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: r, users: users, operationTimeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// PendingQueue lists pending requests, oldest first.
func (s *Service) PendingQueue(ctx context.Context) ([]domain.PendingRequest, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	list, err := s.repo.PendingQueue(ctx)
	if err != nil {
		return nil, apperr.FromContext("pending queue", fmt.Errorf("pending queue: %w", err))
	}
	return list, nil
}

// ClientHistory lists every request of the client, newest first.
func (s *Service) ClientHistory(ctx context.Context, clientID int64) ([]domain.ClientRequest, error) {
	if clientID <= 0 {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	list, err := s.repo.ClientHistory(ctx, clientID)
	if err != nil {
		return nil, apperr.FromContext("client history", fmt.Errorf("client history: %w", err))
	}
	return list, nil
}

// CourierActive returns the courier's current request or nil when idle.
func (s *Service) CourierActive(ctx context.Context, courierID int64) (*domain.CourierRequest, error) {
	if courierID <= 0 {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	r, err := s.repo.CourierActive(ctx, courierID)
	if err != nil {
		return nil, apperr.FromContext("courier active", fmt.Errorf("courier active: %w", err))
	}
	return r, nil
}

// Couriers lists every courier with its availability.
func (s *Service) Couriers(ctx context.Context) ([]domain.CourierSummary, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	users, err := s.users.ListByRole(ctx, domain.RoleCourier)
	if err != nil {
		return nil, apperr.FromContext("list couriers", fmt.Errorf("list couriers: %w", err))
	}
	out := make([]domain.CourierSummary, 0, len(users))
	for _, u := range users {
		out = append(out, domain.CourierSummary{
			ID:           u.ID,
			FirstName:    u.FirstName,
			LastName:     u.LastName,
			Availability: u.Availability,
		})
	}
	return out, nil
}
