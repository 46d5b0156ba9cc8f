// Command service-delivery serves the delivery coordination HTTP API.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"delivery-coordinator/internal/app"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	container := app.MustBuildContainer(ctx)
	app.NewRunner().MustRun(container)
}
