package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"delivery-coordinator/internal/apperr"
	"delivery-coordinator/internal/domain"
	"delivery-coordinator/internal/ports/requesttx"
)

const rollbackTimeout = 2 * time.Second

// RequestRepo represents the delivery request store.
type RequestRepo struct {
	db *pgxpool.Pool
}

// NewRequestRepo creates a new RequestRepo.
func NewRequestRepo(db *pgxpool.Pool) *RequestRepo {
	return &RequestRepo{db: db}
}

// Create files a pending request without a courier.
func (r *RequestRepo) Create(ctx context.Context, req *domain.NewRequest) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
        INSERT INTO delivery_requests (client_id, pickup, dropoff)
        VALUES ($1, $2, $3)
        RETURNING id
    `, req.ClientID, req.Pickup, req.Dropoff).Scan(&id)
	if err != nil {
		if IsForeignKey(err) {
			return 0, apperr.E(apperr.ErrNotFound, "create request", err)
		}
		return 0, fmt.Errorf("create request: %w", err)
	}
	return id, nil
}

// WithTx opens a read-committed transaction and executes fn within it.
// The transaction is rolled back when fn fails or panics and committed otherwise.
func (r *RequestRepo) WithTx(ctx context.Context, fn func(tx requesttx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return txFailure("begin tx", err)
	}

	// откатываем в случае паники
	defer func() {
		if p := recover(); p != nil {
			rollback(ctx, tx)
			panic(p)
		}
	}()

	if err := fn(&TxRepo{tx: tx}); err != nil {
		if rbErr := rollback(ctx, tx); rbErr != nil {
			return apperr.E(apperr.ErrTransaction, "rollback tx",
				fmt.Errorf("%w (original error: %s)", rbErr, err.Error()))
		}
		return apperr.FromContext("tx", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return txFailure("commit tx", err)
	}
	return nil
}

// rollback survives a cancelled parent context so the connection goes back clean.
func rollback(ctx context.Context, tx pgx.Tx) error {
	rbCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rollbackTimeout)
	defer cancel()
	if err := tx.Rollback(rbCtx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

func txFailure(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperr.E(apperr.ErrTimeout, op, err)
	}
	return apperr.E(apperr.ErrTransaction, op, err)
}
