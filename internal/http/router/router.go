package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"delivery-coordinator/internal/domain"
	"delivery-coordinator/internal/http/handlers"
	"delivery-coordinator/internal/http/middleware"
	"delivery-coordinator/internal/http/middleware/ratelimit"
	"delivery-coordinator/internal/logx"
)

const defaultTimeout = 5 * time.Second

// Deps are the handlers and middleware the router mounts.
type Deps struct {
	Base     *handlers.Handlers
	Auth     *handlers.AuthHandler
	Requests *handlers.RequestHandler
	Users    *handlers.UserHandler

	Authn        *middleware.Authenticator
	LoginLimiter *ratelimit.Middleware
	Metrics      *middleware.HTTPMetrics
	Logger       logx.Logger
	CORSOrigins  []string
	Timeout      time.Duration
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = logx.Nop()
	}
	if d.Timeout <= 0 {
		d.Timeout = defaultTimeout
	}
	if d.Authn == nil {
		d.Authn = middleware.NewAuthenticator(nil, false, d.Logger)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(d.CORSOrigins))
	r.Use(middleware.Observability(d.Logger, d.Metrics))
	r.Use(chimw.Timeout(d.Timeout))

	r.Get("/ping", d.Base.Ping)
	r.Get("/health", d.Base.Health)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	r.Post("/register", d.Auth.Register)
	r.Group(func(r chi.Router) {
		if d.LoginLimiter != nil {
			r.Use(d.LoginLimiter.Handler())
		}
		r.Post("/login", d.Auth.Login)
	})

	admin := d.Authn.Require(domain.RoleAdmin)
	r.Route("/api", func(r chi.Router) {
		r.Route("/servicios", func(r chi.Router) {
			r.With(d.Authn.Require(domain.RoleClient, domain.RoleAdmin)).Post("/", d.Requests.Create)
			r.With(admin).Get("/pendientes", d.Requests.Pending)
			r.With(admin).Post("/asignar", d.Requests.Assign)
			r.With(d.Authn.Require(domain.RoleClient, domain.RoleAdmin)).Get("/cliente/{id}", d.Requests.ClientHistory)
			r.With(d.Authn.Require(domain.RoleCourier, domain.RoleAdmin)).Get("/motorizado/{id}", d.Requests.CourierActive)
			r.With(d.Authn.Require(domain.RoleCourier, domain.RoleAdmin)).Post("/actualizar", d.Requests.UpdateState)
		})
		r.With(admin).Get("/motorizados", d.Users.ListCouriers)
		r.Route("/usuarios", func(r chi.Router) {
			r.Use(admin)
			r.Post("/", d.Users.Create)
			r.Delete("/{id}", d.Users.Delete)
		})
	})

	return r
}
