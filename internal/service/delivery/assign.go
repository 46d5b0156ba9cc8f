package delivery

import (
	"context"
	"fmt"

	"delivery-coordinator/internal/apperr"
	"delivery-coordinator/internal/domain"
	"delivery-coordinator/internal/logx"
	"delivery-coordinator/internal/ports/requesttx"
)

// Assign binds a courier to a pending request and marks the courier busy, atomically.
// Concurrent calls for the same request serialise on its row lock; all but one fail with ErrConflict.
func (s *Service) Assign(ctx context.Context, requestID, courierID int64) (domain.AssignResult, error) {
	if requestID <= 0 || courierID <= 0 {
		return domain.AssignResult{}, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.repo.WithTx(ctx, func(tx requesttx.Repository) error {
		req, err := tx.GetRequestForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return fmt.Errorf("request %d: %w", requestID, apperr.ErrNotFound)
		}
		if req.State != domain.StatePending {
			return fmt.Errorf("request %d is %s: %w", requestID, req.State, apperr.ErrConflict)
		}

		courier, err := tx.GetUserForUpdate(ctx, courierID)
		if err != nil {
			return err
		}
		if courier == nil {
			return fmt.Errorf("courier %d: %w", courierID, apperr.ErrNotFound)
		}
		if courier.Role != domain.RoleCourier {
			return fmt.Errorf("user %d has role %s: %w", courierID, courier.Role, apperr.ErrInvalid)
		}
		if courier.Availability == domain.AvailabilityBusy {
			return fmt.Errorf("courier %d is busy: %w", courierID, apperr.ErrConflict)
		}

		if err := tx.AssignCourier(ctx, requestID, courierID); err != nil {
			return err
		}
		return tx.SetAvailability(ctx, courierID, domain.AvailabilityBusy)
	})
	if err != nil {
		return domain.AssignResult{}, apperr.FromContext("assign", err)
	}

	s.logger.Info("courier assigned",
		logx.String("event", "courier_assigned"),
		logx.Int64("request_id", requestID),
		logx.Int64("courier_id", courierID),
	)

	return domain.AssignResult{
		RequestID: requestID,
		CourierID: courierID,
		State:     domain.StatePickingUp,
	}, nil
}
