package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"                   // the Echo web framework handles routing
	echomw "github.com/labstack/echo/v4/middleware" // stock Echo middleware (CORS, recover, body limit)
	"go.uber.org/zap"

	"github.com/iliyamo/client-accounts/internal/handler"
	"github.com/iliyamo/client-accounts/internal/middleware"
)

// Options carries the pieces New wires into the Echo instance.  Cache and
// RateLimit may be nil, in which case the routes are served without them.
type Options struct {
	Log       *zap.SugaredLogger
	BodyLimit string
	Health    echo.HandlerFunc
	Cache     echo.MiddlewareFunc
	RateLimit echo.MiddlewareFunc
}

// New builds the Echo instance with global middleware, the envelope error
// handler, and every route.
func New(clients *handler.ClientHandler, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(opts.Log)

	// The logger sits outside Recover so that panics are logged as 500s.
	e.Use(middleware.RequestLogger(opts.Log))
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	if opts.BodyLimit != "" {
		e.Use(echomw.BodyLimit(opts.BodyLimit))
	}

	RegisterRoutes(e, opts.Health)
	RegisterClients(e, clients, opts.RateLimit, opts.Cache) // cached hits still consume tokens
	return e
}

// RegisterRoutes registers routes outside the client API.  Currently it
// exposes only a health check for load balancers.
func RegisterRoutes(e *echo.Echo, health echo.HandlerFunc) {
	if health == nil {
		health = handler.Health(nil)
	}
	e.GET("/healthz", health)
}

// RegisterClients mounts the client API under /client.  The collection
// routes answer with and without the trailing slash.  Middleware apply in the
// order given, outermost first.
func RegisterClients(e *echo.Echo, h *handler.ClientHandler, mws ...echo.MiddlewareFunc) {
	var use []echo.MiddlewareFunc
	for _, m := range mws {
		if m != nil {
			use = append(use, m)
		}
	}
	// Per-route middleware rather than Group.Use, which would also install
	// catch-all routes under /client.
	g := e.Group("/client")
	for _, p := range []string{"", "/"} {
		g.POST(p, h.CreateClient, use...)
		g.GET(p, h.ListClients, use...)
		g.HEAD(p, h.ListClients, use...)
	}
	g.GET("/soldeminmax", h.BalanceSummary, use...)
	g.HEAD("/soldeminmax", h.BalanceSummary, use...)
	g.PUT("/:numCompte", h.UpdateClient, use...)
	g.DELETE("/:numCompte", h.DeleteClient, use...)
}
