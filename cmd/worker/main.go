// Command worker consumes courier status events from Kafka and applies them
// to delivery requests through the lifecycle engine.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"delivery-coordinator/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	worker := app.MustBuildWorkerContainer(ctx)
	app.NewWorkerRunner().MustRun(worker)
}
