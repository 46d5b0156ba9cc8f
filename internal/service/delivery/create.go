package delivery

import (
	"context"
	"fmt"
	"strings"

	"delivery-coordinator/internal/apperr"
	"delivery-coordinator/internal/domain"
	"delivery-coordinator/internal/logx"
)

// Create files a new pending request for the client.
func (s *Service) Create(ctx context.Context, in domain.NewRequest) (int64, error) {
	in.Pickup = strings.TrimSpace(in.Pickup)
	in.Dropoff = strings.TrimSpace(in.Dropoff)
	if in.ClientID <= 0 || in.Pickup == "" || in.Dropoff == "" {
		return 0, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	id, err := s.repo.Create(ctx, &in)
	if err != nil {
		return 0, apperr.FromContext("create request", fmt.Errorf("create request: %w", err))
	}

	s.logger.Info("request created",
		logx.String("event", "request_created"),
		logx.Int64("request_id", id),
		logx.Int64("client_id", in.ClientID),
	)
	return id, nil
}
