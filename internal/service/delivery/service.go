package delivery

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"delivery-coordinator/internal/logx"
)

const defaultOperationTimeout = 3 * time.Second

// Config tunes the service.
type Config struct {
	// OperationTimeout bounds every transaction; <= 0 means 3s.
	OperationTimeout time.Duration
	// StrictTransitions enables assignee, terminal and successor checks in Transition.
	StrictTransitions bool
}

// Service - creates delivery requests, assigns couriers and moves requests through their lifecycle.
type Service struct {
	repo             requestRepository
	transitions      *prometheus.CounterVec
	logger           logx.Logger
	operationTimeout time.Duration
	strict           bool
}

// NewService - creates a new delivery Service. transitions may be nil.
func NewService(r requestRepository, transitions *prometheus.CounterVec, logger logx.Logger, cfg Config) *Service {
	if cfg.OperationTimeout <= 0 {
		cfg.OperationTimeout = defaultOperationTimeout
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		repo:             r,
		transitions:      transitions,
		logger:           logger.With(logx.String("component", "delivery")),
		operationTimeout: cfg.OperationTimeout,
		strict:           cfg.StrictTransitions,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}
