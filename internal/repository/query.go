package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"delivery-coordinator/internal/domain"
)

// QueryRepo serves the read-only projections.
type QueryRepo struct{ db *pgxpool.Pool }

// NewQueryRepo creates a new QueryRepo.
func NewQueryRepo(db *pgxpool.Pool) *QueryRepo { return &QueryRepo{db: db} }

// PendingQueue returns pending requests, oldest first.
func (r *QueryRepo) PendingQueue(ctx context.Context) ([]domain.PendingRequest, error) {
	rows, err := r.db.Query(ctx, `
        SELECT r.id, r.pickup, r.dropoff, u.first_name, u.last_name, r.created_at
        FROM delivery_requests r
        JOIN users u ON u.id = r.client_id
        WHERE r.state = 'pending'
        ORDER BY r.created_at ASC, r.id ASC
    `)
	if err != nil {
		return nil, fmt.Errorf("pending queue: %w", err)
	}
	defer rows.Close()

	out := make([]domain.PendingRequest, 0)
	for rows.Next() {
		var p domain.PendingRequest
		if err := rows.Scan(&p.ID, &p.Pickup, &p.Dropoff, &p.ClientFirstName, &p.ClientLastName, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pending request: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ClientHistory returns every request of the client, newest first.
func (r *QueryRepo) ClientHistory(ctx context.Context, clientID int64) ([]domain.ClientRequest, error) {
	rows, err := r.db.Query(ctx, `
        SELECT r.id, r.pickup, r.dropoff, r.state,
               CASE WHEN c.id IS NULL THEN NULL ELSE c.first_name || ' ' || c.last_name END,
               r.created_at
        FROM delivery_requests r
        LEFT JOIN users c ON c.id = r.courier_id
        WHERE r.client_id = $1
        ORDER BY r.created_at DESC, r.id DESC
    `, clientID)
	if err != nil {
		return nil, fmt.Errorf("client history %d: %w", clientID, err)
	}
	defer rows.Close()

	out := make([]domain.ClientRequest, 0)
	for rows.Next() {
		var c domain.ClientRequest
		if err := rows.Scan(&c.ID, &c.Pickup, &c.Dropoff, &c.State, &c.CourierName, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan client request: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CourierActive returns the courier's non-delivered request, nil when idle.
// Should more than one exist, the oldest is returned.
func (r *QueryRepo) CourierActive(ctx context.Context, courierID int64) (*domain.CourierRequest, error) {
	var c domain.CourierRequest
	err := r.db.QueryRow(ctx, `
        SELECT r.id, r.pickup, r.dropoff, r.state, u.first_name, u.last_name, r.created_at
        FROM delivery_requests r
        JOIN users u ON u.id = r.client_id
        WHERE r.courier_id = $1 AND r.state <> 'delivered'
        ORDER BY r.created_at ASC, r.id ASC
        LIMIT 1
    `, courierID).Scan(&c.ID, &c.Pickup, &c.Dropoff, &c.State, &c.ClientFirstName, &c.ClientLastName, &c.CreatedAt)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("courier active %d: %w", courierID, err)
	}
	return &c, nil
}

// AvailabilityViolations returns ids of couriers whose availability disagrees with
// their count of active requests: busy needs exactly one, available needs none.
func (r *QueryRepo) AvailabilityViolations(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
        SELECT u.id
        FROM users u
        LEFT JOIN (
            SELECT courier_id, COUNT(*) AS active
            FROM delivery_requests
            WHERE state <> 'delivered' AND courier_id IS NOT NULL
            GROUP BY courier_id
        ) a ON a.courier_id = u.id
        WHERE u.role = 'courier'
          AND (
              (u.availability = 'busy' AND COALESCE(a.active, 0) <> 1)
              OR (u.availability = 'available' AND COALESCE(a.active, 0) <> 0)
          )
        ORDER BY u.id
    `)
	if err != nil {
		return nil, fmt.Errorf("availability violations: %w", err)
	}
	defer rows.Close()

	out := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan courier id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
