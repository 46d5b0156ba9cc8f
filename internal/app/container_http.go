package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"delivery-coordinator/internal/auth"
	"delivery-coordinator/internal/config"
	"delivery-coordinator/internal/http/handlers"
	"delivery-coordinator/internal/http/middleware"
	"delivery-coordinator/internal/http/middleware/ratelimit"
	"delivery-coordinator/internal/http/opsserver"
	"delivery-coordinator/internal/http/router"
	"delivery-coordinator/internal/logx"
	"delivery-coordinator/internal/service/delivery"
	"delivery-coordinator/internal/service/identity"
	"delivery-coordinator/internal/service/query"
)

const requestTimeout = 10 * time.Second

type routerIn struct {
	dig.In

	Config       *config.Config
	Logger       logx.Logger
	Base         *handlers.Handlers
	Auth         *handlers.AuthHandler
	Requests     *handlers.RequestHandler
	Users        *handlers.UserHandler
	Authn        *middleware.Authenticator
	LoginLimiter *ratelimit.Middleware
	Metrics      *middleware.HTTPMetrics
}

func newRouter(in routerIn) http.Handler {
	return router.New(router.Deps{
		Base:         in.Base,
		Auth:         in.Auth,
		Requests:     in.Requests,
		Users:        in.Users,
		Authn:        in.Authn,
		LoginLimiter: in.LoginLimiter,
		Metrics:      in.Metrics,
		Logger:       in.Logger,
		CORSOrigins:  in.Config.CORS.AllowedOrigins,
		Timeout:      requestTimeout,
	})
}

type serversOut struct {
	dig.Out

	Main *http.Server
	Ops  *http.Server `name:"ops_server"`
}

func newServers(cfg *config.Config, mux http.Handler, gatherer prometheus.Gatherer) serversOut {
	out := serversOut{
		Main: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
	if cfg.Ops.Addr != "" {
		out.Ops = &http.Server{
			Addr:              cfg.Ops.Addr,
			Handler:           opsserver.Handler(opsserver.Config{User: cfg.Ops.User, Pass: cfg.Ops.Pass}, gatherer),
			ReadHeaderTimeout: 5 * time.Second,
			// pprof profile and trace stream for up to 30s by default
			WriteTimeout: 60 * time.Second,
		}
	}
	return out
}

func registerHTTP(container *dig.Container) error {
	return provideAll(container,
		func(logger logx.Logger, pool *pgxpool.Pool) *handlers.Handlers {
			if pool == nil {
				return handlers.New(logger, nil)
			}
			return handlers.New(logger, pool)
		},
		func(logger logx.Logger, svc *identity.Service) *handlers.AuthHandler {
			return handlers.NewAuthHandler(logger, svc)
		},
		func(logger logx.Logger, d *delivery.Service, q *query.Service) *handlers.RequestHandler {
			return handlers.NewRequestHandler(logger, d, q)
		},
		func(logger logx.Logger, svc *identity.Service, q *query.Service) *handlers.UserHandler {
			return handlers.NewUserHandler(logger, svc, q)
		},
		func(cfg *config.Config, tokens *auth.TokenIssuer, logger logx.Logger) *middleware.Authenticator {
			return middleware.NewAuthenticator(tokens, cfg.Auth.Enforce, logger)
		},
		newRedisClient,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		newRouter,
		newServers,
	)
}
