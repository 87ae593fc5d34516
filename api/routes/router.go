package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/saikrishna-dev/mandimitra-backend/api/controllers"
	"github.com/saikrishna-dev/mandimitra-backend/api/middleware"
	"github.com/saikrishna-dev/mandimitra-backend/internal/auth"
	"github.com/saikrishna-dev/mandimitra-backend/internal/cart"
	checkoutsvc "github.com/saikrishna-dev/mandimitra-backend/internal/checkout"
	"github.com/saikrishna-dev/mandimitra-backend/internal/orders"
	"github.com/saikrishna-dev/mandimitra-backend/internal/products"
	"github.com/saikrishna-dev/mandimitra-backend/internal/voice"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/auth/session"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/config"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/db/models"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/enums"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/logger"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/metrics"
)

// Pinger is implemented by the backing stores checked by the ready probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type rateLimiterStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// UserStore is the slice of the users repository the HTTP layer consumes.
type UserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListByRole(ctx context.Context, role enums.Role) ([]models.User, error)
	UpdatePreferredLanguage(ctx context.Context, id uuid.UUID, lang enums.Language) error
}

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       Pinger
	Redis    Pinger
	Limiter  rateLimiterStore
	Sessions session.AccessSessionChecker
	Registry *prometheus.Registry

	AuthService     auth.Service
	UserRepo        UserStore
	ProductService  products.Service
	CartService     cart.Service
	CheckoutService checkoutsvc.Service
	OrderService    orders.Service
	VoiceService    voice.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	var httpMetrics *metrics.HTTPMetrics
	if deps.Registry != nil {
		httpMetrics = metrics.NewHTTPMetrics(deps.Registry)
		r.Use(middleware.Metrics(httpMetrics))
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readyDeps(deps)))
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Limiter, logg)).Post("/register", controllers.AuthRegister(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Limiter, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
		r.With(middleware.Auth(cfg.JWT, deps.Sessions, logg)).Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Route("/users/me", func(r chi.Router) {
			r.Get("/", controllers.CurrentUser(deps.UserRepo, logg))
			r.Put("/language", controllers.UpdateLanguage(deps.UserRepo, logg))
		})
		r.Get("/wholesalers", controllers.Wholesalers(deps.UserRepo, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(deps.ProductService, logg))
			r.Get("/{productId}", controllers.ProductGet(deps.ProductService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(enums.RoleWholesaler, logg))
				r.Post("/", controllers.ProductCreate(deps.ProductService, logg))
				r.Put("/{productId}", controllers.ProductUpdate(deps.ProductService, logg))
				r.Delete("/{productId}", controllers.ProductDelete(deps.ProductService, logg))
			})
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.RoleVendor, logg))
			r.Get("/", controllers.CartGet(deps.CartService, logg))
			r.Post("/", controllers.CartAdd(deps.CartService, logg))
			r.Delete("/", controllers.CartClear(deps.CartService, logg))
			r.Delete("/{cartItemId}", controllers.CartRemove(deps.CartService, logg))
		})

		r.With(middleware.RequireRole(enums.RoleVendor, logg)).
			Post("/checkout", controllers.Checkout(deps.CheckoutService, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(deps.OrderService, logg))
			r.Get("/{orderId}", controllers.OrderGet(deps.OrderService, logg))
			r.With(middleware.RequireRole(enums.RoleVendor, logg)).
				Post("/", controllers.OrderCreate(deps.OrderService, logg))
			r.Put("/{orderId}/status", controllers.OrderUpdateStatus(deps.OrderService, logg))
		})

		r.Route("/voice", func(r chi.Router) {
			r.Get("/commands", controllers.VoiceCommands())
			r.With(middleware.RequireRole(enums.RoleVendor, logg)).
				Post("/interpret", controllers.VoiceInterpret(deps.VoiceService, logg))
		})
	})

	return r
}

func readyDeps(deps Deps) map[string]controllers.Pinger {
	out := map[string]controllers.Pinger{}
	if deps.DB != nil {
		out["postgres"] = deps.DB
	}
	if deps.Redis != nil {
		out["redis"] = deps.Redis
	}
	return out
}
