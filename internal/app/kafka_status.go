package app

import (
	"context"

	"delivery-coordinator/internal/service/statusevents"
	"delivery-coordinator/internal/transport/kafka"
)

type statusHandler interface {
	Handle(ctx context.Context, e statusevents.Event) error
}

// makeStatusKafka adapts the processor to the consumer: rejections are
// marked permanent so the offset moves on, everything else is retried.
func makeStatusKafka(p statusHandler) kafka.HandleFunc {
	return func(ctx context.Context, event statusevents.Event) error {
		err := p.Handle(ctx, event)
		if err != nil && statusevents.Permanent(err) {
			return kafka.Permanent(err)
		}
		return err
	}
}
