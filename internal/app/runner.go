package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"delivery-coordinator/internal/jobs"
	"delivery-coordinator/internal/logx"
)

const shutdownTimeout = 15 * time.Second

// Runner runs the HTTP API.
type Runner struct {
	runFn func(*dig.Container) error
}

// NewRunner returns a Runner.
func NewRunner() *Runner {
	return &Runner{runFn: run}
}

// MustRun starts the HTTP server using the provided DI container
func (r *Runner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil {
		return
	}

	var logger logx.Logger = logx.Nop()
	_ = container.Invoke(func(l logx.Logger) { logger = l })

	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("shutdown requested, exiting")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("startup aborted: startup timeout exceeded")
	default:
		logger.Error("run error", logx.Err(err))
		panic(err)
	}
}

type appIn struct {
	dig.In

	Ctx     context.Context
	Logger  logx.Logger
	Pool    *pgxpool.Pool
	Server  *http.Server
	Ops     *http.Server `name:"ops_server" optional:"true"`
	Auditor *jobs.AvailabilityAuditor
	Redis   *redis.Client `optional:"true"`
}

func run(container *dig.Container) error {
	return container.Invoke(appRun)
}

func appRun(in appIn) error {
	if err := in.Auditor.Start(); err != nil {
		return err
	}

	errCh := make(chan error, 2)
	startServer(in.Server, in.Logger, "api", errCh)
	if in.Ops != nil {
		startServer(in.Ops, in.Logger, "ops", errCh)
	}

	var runErr error
	select {
	case <-in.Ctx.Done():
		in.Logger.Info("shutting down delivery-coordinator")
		runErr = in.Ctx.Err()
	case runErr = <-errCh:
		in.Logger.Error("server stopped", logx.Err(runErr))
	}

	gracefulShutdown(in.Server, in.Logger, shutdownTimeout)
	if in.Ops != nil {
		gracefulShutdown(in.Ops, in.Logger, shutdownTimeout)
	}
	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	in.Auditor.Stop(stopCtx)
	cancel()
	closeResources(in.Pool, in.Redis, in.Logger)
	return runErr
}

func startServer(server *http.Server, logger logx.Logger, name string, errCh chan<- error) {
	go func() {
		logger.Info("listening", logx.String("server", name), logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Error("graceful shutdown error", logx.String("addr", srv.Addr), logx.Err(err))
	}
}

func closeResources(pool *pgxpool.Pool, rdb *redis.Client, logger logx.Logger) {
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Error("redis close error", logx.Err(err))
		}
	}
	if pool != nil {
		pool.Close()
	}
	_ = logger.Sync()
}
