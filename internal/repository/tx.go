package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"delivery-coordinator/internal/apperr"
	"delivery-coordinator/internal/domain"
	"delivery-coordinator/internal/ports/requesttx"
)

// TxRepo represents transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

var _ requesttx.Repository = (*TxRepo)(nil)

// GetRequestForUpdate - locks and returns the request, nil when absent.
func (r *TxRepo) GetRequestForUpdate(ctx context.Context, id int64) (*domain.DeliveryRequest, error) {
	row := r.tx.QueryRow(ctx, `
        SELECT id, client_id, pickup, dropoff, courier_id, state, created_at
        FROM delivery_requests
        WHERE id = $1
        FOR UPDATE
    `, id)

	var d domain.DeliveryRequest
	if err := row.Scan(&d.ID, &d.ClientID, &d.Pickup, &d.Dropoff, &d.CourierID, &d.State, &d.CreatedAt); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock request %d: %w", id, err)
	}
	return &d, nil
}

// GetUserForUpdate - locks and returns the user, nil when absent.
func (r *TxRepo) GetUserForUpdate(ctx context.Context, id int64) (*domain.User, error) {
	u, err := scanUser(r.tx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock user %d: %w", id, err)
	}
	return u, nil
}

// AssignCourier - binds the courier and moves the request to picking_up.
// Only a pending request is updated.
func (r *TxRepo) AssignCourier(ctx context.Context, requestID, courierID int64) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE delivery_requests
        SET courier_id = $2, state = $3, updated_at = now()
        WHERE id = $1 AND state = $4
    `, requestID, courierID, string(domain.StatePickingUp), string(domain.StatePending))
	if err != nil {
		return mapWriteErr("assign courier", err)
	}
	if ct.RowsAffected() == 0 {
		return apperr.E(apperr.ErrConflict, "assign courier", fmt.Errorf("request %d is not pending", requestID))
	}
	return nil
}

// UpdateRequestState - update request state.
func (r *TxRepo) UpdateRequestState(ctx context.Context, id int64, state domain.RequestState) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE delivery_requests
        SET state = $2, updated_at = now()
        WHERE id = $1
    `, id, string(state))
	if err != nil {
		return mapWriteErr("update request state", err)
	}
	if ct.RowsAffected() == 0 {
		return apperr.E(apperr.ErrNotFound, "update request state", fmt.Errorf("request %d", id))
	}
	return nil
}

// SetAvailability - update courier availability.
func (r *TxRepo) SetAvailability(ctx context.Context, userID int64, availability domain.Availability) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE users
        SET availability = $2, updated_at = now()
        WHERE id = $1
    `, userID, string(availability))
	if err != nil {
		return mapWriteErr("set availability", err)
	}
	if ct.RowsAffected() == 0 {
		return apperr.E(apperr.ErrNotFound, "set availability", fmt.Errorf("user %d", userID))
	}
	return nil
}

func mapWriteErr(op string, err error) error {
	switch {
	case IsCheckViolation(err):
		return apperr.E(apperr.ErrConflict, op, err)
	case IsForeignKey(err):
		return apperr.E(apperr.ErrNotFound, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
