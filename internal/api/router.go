package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/storepulse/store-rating/docs"
	"github.com/storepulse/store-rating/internal/api/handler"
	"github.com/storepulse/store-rating/internal/api/middleware"
	"github.com/storepulse/store-rating/internal/core/domain"
	"github.com/storepulse/store-rating/internal/core/ports"
)

// Dependencies are the services and probes the router wires into handlers.
// Denylist may be nil.
type Dependencies struct {
	Auth      ports.AuthService
	Users     ports.UserService
	Stores    ports.StoreService
	Ratings   ports.RatingService
	Dashboard ports.DashboardService
	Verifier  ports.TokenVerifier
	Denylist  ports.TokenDenylist
	Checks    map[string]handler.Checker
}

// Options tune the HTTP surface.
type Options struct {
	CORSOrigins []string
	// AuthRateLimit is requests per second per client IP on login and
	// register. Zero or less disables the limiter.
	AuthRateLimit float64
	AuthRateBurst int
	// DisableMetrics skips the Prometheus middleware and /metrics. Tests that
	// build several routers in one process set it.
	DisableMetrics bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies, opts Options, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	if len(opts.CORSOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins: opts.CORSOrigins,
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		}))
	}
	if !opts.DisableMetrics {
		e.Use(echoprometheus.NewMiddleware("store_rating"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	// --- Docs and health probes (no auth required) ---
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	healthHandler := handler.NewHealthHandler(deps.Checks, log)
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	// The same API is served at the root and under /api.
	h := newHandlers(deps)
	limiter := authRateLimiter(opts)
	for _, g := range []*echo.Group{e.Group(""), e.Group("/api")} {
		registerRoutes(g, h, deps, limiter, log)
	}

	return e
}

type handlers struct {
	auth      *handler.AuthHandler
	users     *handler.UserHandler
	stores    *handler.StoreHandler
	ratings   *handler.RatingHandler
	dashboard *handler.DashboardHandler
}

func newHandlers(deps Dependencies) handlers {
	return handlers{
		auth:      handler.NewAuthHandler(deps.Auth, deps.Users),
		users:     handler.NewUserHandler(deps.Users),
		stores:    handler.NewStoreHandler(deps.Stores, deps.Ratings),
		ratings:   handler.NewRatingHandler(deps.Ratings),
		dashboard: handler.NewDashboardHandler(deps.Dashboard),
	}
}

func registerRoutes(g *echo.Group, h handlers, deps Dependencies, limiter echo.MiddlewareFunc, log zerolog.Logger) {
	authn := middleware.Auth(deps.Verifier, deps.Denylist, log)
	optional := middleware.OptionalAuth(deps.Verifier, deps.Denylist, log)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	raters := middleware.RBAC(domain.RoleUser, domain.RoleAdmin)

	// --- Auth routes ---
	auth := g.Group("/auth")
	auth.POST("/register", h.auth.Register, limiter, optional)
	auth.POST("/login", h.auth.Login, limiter)
	auth.POST("/update-password", h.auth.UpdatePassword, authn)
	auth.POST("/logout", h.auth.Logout, authn)
	auth.GET("/user-details", h.auth.Profile, authn)
	auth.GET("/users", h.users.List, authn, adminOnly)
	auth.GET("/users/:id", h.users.Get, authn, adminOnly)

	// --- Dashboard ---
	dashboard := g.Group("/dashboard", authn, adminOnly)
	dashboard.GET("/stats", h.dashboard.Stats)
	dashboard.GET("/activity", h.dashboard.Activity)

	// --- Stores ---
	store := g.Group("/store", authn)
	store.POST("/createStore", h.stores.Create, adminOnly)
	store.GET("/getAllStores", h.stores.List)
	store.GET("/getStoreDetails/:id", h.stores.Details)
	store.GET("/getStoreDetailsFromUserId", h.stores.Owned)
	store.GET("/:id/ratings", h.stores.Ratings)

	// --- Ratings ---
	rating := g.Group("/rating", authn)
	rating.POST("/createRating", h.ratings.Create, raters)
	rating.POST("/updateRating", h.ratings.Update, raters)
	rating.PUT("/updateRating", h.ratings.Update, raters)
	rating.POST("/submit", h.ratings.Submit, raters)
	rating.GET("/store/:id/mine", h.ratings.Mine)
}

// authRateLimiter guards the credential endpoints with a per-IP token bucket.
// Both route groups share one store, so /auth/login and /api/auth/login draw
// from the same budget.
func authRateLimiter(opts Options) echo.MiddlewareFunc {
	if opts.AuthRateLimit <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(opts.AuthRateLimit),
		Burst:     opts.AuthRateBurst,
		ExpiresIn: 3 * time.Minute,
	})
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "unable to identify client").SetInternal(err)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests").SetInternal(err)
		},
	})
}
