package delivery

import (
	"context"
	"fmt"

	"delivery-coordinator/internal/apperr"
	"delivery-coordinator/internal/domain"
	"delivery-coordinator/internal/logx"
	"delivery-coordinator/internal/ports/requesttx"
)

// Transition moves a request to target. Delivering releases the courier in the same transaction.
// Only picking_up, en_route and delivered are accepted targets.
func (s *Service) Transition(ctx context.Context, requestID, courierID int64, target domain.RequestState) (domain.TransitionResult, error) {
	if !target.TransitionTarget() {
		return domain.TransitionResult{}, fmt.Errorf("state %q: %w", target, apperr.ErrInvalid)
	}
	if requestID <= 0 || courierID <= 0 {
		return domain.TransitionResult{}, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res := domain.TransitionResult{RequestID: requestID, CourierID: courierID, State: target}

	err := s.repo.WithTx(ctx, func(tx requesttx.Repository) error {
		req, err := tx.GetRequestForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return fmt.Errorf("request %d: %w", requestID, apperr.ErrNotFound)
		}
		if s.strict {
			if err := checkTransition(req, courierID, target); err != nil {
				return err
			}
		}

		if err := tx.UpdateRequestState(ctx, requestID, target); err != nil {
			return err
		}
		if target != domain.StateDelivered {
			return nil
		}

		courier, err := tx.GetUserForUpdate(ctx, courierID)
		if err != nil {
			return err
		}
		if courier == nil {
			return fmt.Errorf("courier %d: %w", courierID, apperr.ErrNotFound)
		}
		if err := tx.SetAvailability(ctx, courierID, domain.AvailabilityAvailable); err != nil {
			return err
		}
		res.CourierReleased = true
		return nil
	})
	if err != nil {
		return domain.TransitionResult{}, apperr.FromContext("transition", err)
	}

	if s.transitions != nil {
		s.transitions.WithLabelValues(string(target)).Inc()
	}
	s.logger.Info("request state changed",
		logx.String("event", "request_transitioned"),
		logx.Int64("request_id", requestID),
		logx.Int64("courier_id", courierID),
		logx.String("state", string(target)),
		logx.Bool("courier_released", res.CourierReleased),
	)
	return res, nil
}

// checkTransition enforces assignee, terminal and immediate-successor rules.
func checkTransition(req *domain.DeliveryRequest, courierID int64, target domain.RequestState) error {
	if req.State.Terminal() {
		return fmt.Errorf("request %d already %s: %w", req.ID, req.State, apperr.ErrConflict)
	}
	if req.CourierID == nil || *req.CourierID != courierID {
		return fmt.Errorf("courier %d is not assigned to request %d: %w", courierID, req.ID, apperr.ErrConflict)
	}
	if next, ok := req.State.Next(); !ok || next != target {
		return fmt.Errorf("request %d cannot go from %s to %s: %w", req.ID, req.State, target, apperr.ErrConflict)
	}
	return nil
}
