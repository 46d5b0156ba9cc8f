//go:generate mockgen -source=contracts.go -destination=delivery_mocks_test.go -package=delivery_test

package delivery

import (
	"context"

	"delivery-coordinator/internal/domain"
	"delivery-coordinator/internal/ports/requesttx"
)

type requestRepository interface {
	Create(ctx context.Context, r *domain.NewRequest) (int64, error)
	WithTx(ctx context.Context, fn func(tx requesttx.Repository) error) error
}
