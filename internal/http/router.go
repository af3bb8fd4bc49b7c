package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/preston-bernstein/hooponomics-service/internal/http/handlers"
	"github.com/preston-bernstein/hooponomics-service/internal/http/middleware"
	"github.com/preston-bernstein/hooponomics-service/internal/http/requestutil"
	"github.com/preston-bernstein/hooponomics-service/internal/metrics"
)

// Routes collects everything the router mounts. Nil handlers are skipped.
type Routes struct {
	API       *handlers.Handler
	Admin     *handlers.AdminHandler
	Dashboard nethttp.Handler
	MCP       nethttp.Handler

	Logger      *slog.Logger
	Recorder    *metrics.Recorder
	RateLimiter *middleware.RateLimiter
	CORSOrigins []string
}

// NewRouter registers HTTP routes on a chi router.
func NewRouter(rt Routes) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logging(rt.Logger, rt.Recorder))
	if len(rt.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: rt.CORSOrigins,
			AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodPost, nethttp.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", requestutil.HeaderRequestID},
			ExposedHeaders: []string{requestutil.HeaderRequestID},
			MaxAge:         300,
		}))
	}
	if rt.RateLimiter != nil {
		r.Use(rt.RateLimiter.Middleware)
	}

	if rt.API != nil {
		rt.API.Register(r)
	}
	if rt.Admin != nil {
		r.Post("/admin/reload", rt.Admin.Reload)
	}
	if rt.Dashboard != nil {
		r.Method(nethttp.MethodGet, "/", rt.Dashboard)
	}
	if rt.MCP != nil {
		r.Handle("/mcp", rt.MCP)
		r.Handle("/mcp/*", rt.MCP)
	}
	return r
}
