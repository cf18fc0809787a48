package httpapi

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/cloud-ru/compound-interest-go/internal/config"
	"github.com/cloud-ru/compound-interest-go/internal/logging"
	"github.com/cloud-ru/compound-interest-go/internal/tools"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server holds the dependencies of the HTTP handlers
type Server struct {
	cfg       *config.Config
	logger    *logging.Logger
	tracer    trace.Tracer
	tools     *tools.Registry
	limiter   *rate.Limiter
	templates *template.Template
	started   time.Time
}

// NewServer wires routes and middleware into an *http.Server
func NewServer(cfg *config.Config, logger *logging.Logger, tracer trace.Tracer) *http.Server {
	s := &Server{
		cfg:       cfg,
		logger:    logger.WithComponent(logging.ComponentHTTP),
		tracer:    tracer,
		tools:     tools.NewRegistry(cfg, tracer),
		limiter:   rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		templates: template.Must(template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")),
		started:   time.Now(),
	}

	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.routes(),
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	s.handle(mux, "GET /{$}", s.handleIndex, true)
	s.handle(mux, "POST /calculate", s.handleCalculateForm, true)
	s.handle(mux, "POST /clear", s.handleClear, true)

	s.handle(mux, "POST /api/calculate", s.handleCalculateAPI, true)
	s.handle(mux, "POST /api/compare", s.handleCompareAPI, true)
	s.handle(mux, "GET /api/tools", s.handleListTools, true)
	s.handle(mux, "POST /api/tools/{name}", s.handleCallTool, true)

	s.handle(mux, "GET /healthz", s.handleHealth, false)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s.requestID(s.logRequests(mux))
}

// handle registers a route with tracing, metrics and optional rate limiting
func (s *Server) handle(mux *http.ServeMux, pattern string, h http.HandlerFunc, limited bool) {
	var handler http.Handler = h
	if limited {
		handler = s.rateLimit(handler)
	}
	mux.Handle(pattern, s.instrument(pattern, handler))
}
