package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"delivery-coordinator/internal/auth"
	"delivery-coordinator/internal/config"
	"delivery-coordinator/internal/logx"
	"delivery-coordinator/internal/repository"
	"delivery-coordinator/internal/service/delivery"
	"delivery-coordinator/internal/service/identity"
	"delivery-coordinator/internal/service/query"
)

const (
	dbConnectRetries = 10
	dbConnectDelay   = time.Second
)

type dbConnectFunc func(ctx context.Context, logger logx.Logger, dsn string, retries int, delay time.Duration) (*pgxpool.Pool, error)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect  dbConnectFunc
	loadConfig func() (*config.Config, error)
	logFatalf  func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect:  connectDbWithRetry,
		loadConfig: config.Load,
		logFatalf:  log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(fn dbConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithConfig replaces config.Load with a fixed configuration.
func (b *ContainerBuilder) WithConfig(cfg *config.Config) *ContainerBuilder {
	if cfg != nil {
		b.loadConfig = func() (*config.Config, error) { return cfg, nil }
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds the HTTP API container.
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// MustBuildWorker builds the courier-status worker container.
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container, err := b.buildBase(ctx)
	if err != nil {
		return nil, err
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	if err := registerJobs(container); err != nil {
		return nil, fmt.Errorf("jobs: %w", err)
	}
	return container, nil
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container, err := b.buildBase(ctx)
	if err != nil {
		return nil, err
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

func (b *ContainerBuilder) buildBase(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b.loadConfig); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerDomainServices(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds the HTTP API container with defaults.
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds the worker container with defaults.
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context, loadConfig func() (*config.Config, error)) error {
	return provideAll(container,
		func() context.Context { return ctx },
		loadConfig,
		NewLogger,
		newRegistry,
		provideMetrics,
	)
}

func registerDb(container *dig.Container, dbConnect dbConnectFunc) error {
	providerDB := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (*pgxpool.Pool, error) {
		pool, err := dbConnect(ctx, logger, cfg.DB.DSN(), dbConnectRetries, dbConnectDelay)
		if err != nil {
			return nil, err
		}
		if cfg.DB.Migrate {
			if err := migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
			logger.Info("schema applied")
		}
		return pool, nil
	}
	return provideAll(container, providerDB)
}

type deliveryIn struct {
	dig.In

	Repo        *repository.RequestRepo
	Config      *config.Config
	Logger      logx.Logger
	Transitions *prometheus.CounterVec `name:"delivery_transitions_total"`
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		repository.NewUserRepo,
		repository.NewRequestRepo,
		repository.NewQueryRepo,
		func() *auth.BcryptHasher { return auth.NewBcryptHasher(0) },
		func(cfg *config.Config) *auth.TokenIssuer {
			return auth.NewTokenIssuer(cfg.Auth.Secret, cfg.Auth.TokenTTL)
		},
		func(in deliveryIn) *delivery.Service {
			return delivery.NewService(in.Repo, in.Transitions, in.Logger, delivery.Config{
				OperationTimeout:  in.Config.Delivery.OperationTimeout,
				StrictTransitions: in.Config.Delivery.StrictTransitions,
			})
		},
		func(repo *repository.QueryRepo, users *repository.UserRepo, cfg *config.Config) *query.Service {
			return query.NewService(repo, users, cfg.Delivery.OperationTimeout)
		},
		func(
			users *repository.UserRepo,
			hasher *auth.BcryptHasher,
			tokens *auth.TokenIssuer,
			logger logx.Logger,
			cfg *config.Config,
		) *identity.Service {
			return identity.NewService(users, hasher, tokens, logger, cfg.Delivery.OperationTimeout)
		},
	)
}
