//go:generate mockgen -source=contracts.go -destination=statusevents_mocks_test.go -package=statusevents_test

package statusevents

import (
	"context"

	"delivery-coordinator/internal/domain"
)

// TransitionPort is the part of the delivery service the worker drives.
type TransitionPort interface {
	Transition(ctx context.Context, requestID, courierID int64, target domain.RequestState) (domain.TransitionResult, error)
}
