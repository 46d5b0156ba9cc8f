package statusevents

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"delivery-coordinator/internal/apperr"
	"delivery-coordinator/internal/domain"
	"delivery-coordinator/internal/logx"
)

// Event outcomes reported to the events counter
const (
	ResultApplied  = "applied"
	ResultRejected = "rejected"
	ResultFailed   = "failed"
)

// Processor applies courier status events through the lifecycle engine.
type Processor struct {
	delivery TransitionPort
	results  *prometheus.CounterVec
	logger   logx.Logger
}

// NewProcessor creates a Processor. results may be nil.
func NewProcessor(delivery TransitionPort, results *prometheus.CounterVec, logger logx.Logger) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Processor{
		delivery: delivery,
		results:  results,
		logger:   logger.With(logx.String("component", "statusevents")),
	}
}

// Handle applies a single event. Errors carrying ErrInvalid, ErrNotFound or ErrConflict
// will never succeed on retry; anything else may.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	target, ok := domain.ParseTransitionTarget(e.State)
	if !ok {
		p.count(ResultRejected)
		return fmt.Errorf("event %s: state %q: %w", e.ID, e.State, apperr.ErrInvalid)
	}

	res, err := p.delivery.Transition(ctx, e.RequestID, e.CourierID, target)
	if err != nil {
		if Permanent(err) {
			p.count(ResultRejected)
		} else {
			p.count(ResultFailed)
		}
		return fmt.Errorf("event %s: %w", e.ID, err)
	}

	p.count(ResultApplied)
	p.logger.Debug("status event applied",
		logx.String("event_id", e.ID.String()),
		logx.Int64("request_id", res.RequestID),
		logx.String("state", string(res.State)),
	)
	return nil
}

// Permanent reports whether err is a rejection rather than a transient failure.
func Permanent(err error) bool {
	return errors.Is(err, apperr.ErrInvalid) ||
		errors.Is(err, apperr.ErrNotFound) ||
		errors.Is(err, apperr.ErrConflict)
}

func (p *Processor) count(result string) {
	if p.results != nil {
		p.results.WithLabelValues(result).Inc()
	}
}
