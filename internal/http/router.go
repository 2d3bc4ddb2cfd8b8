package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/geocoder89/tourneyhub/internal/config"
	"github.com/geocoder89/tourneyhub/internal/http/handlers"
	"github.com/geocoder89/tourneyhub/internal/http/middlewares"
	"github.com/geocoder89/tourneyhub/internal/observability"
	"github.com/geocoder89/tourneyhub/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// TournamentService is what the API needs from the tournaments use cases.
type TournamentService interface {
	handlers.TournamentLister
	handlers.Registrar
}

// NewRouter wires the API. st is nil when no database is configured; the
// diagnostics still answer and the data endpoints fail with a 500. prom may
// be nil in tests.
func NewRouter(log *slog.Logger, cfg config.Config, svc TournamentService, st store.Store, prom *observability.Prom) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.OTELServiceName))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger())
	if prom != nil {
		r.Use(prom.GinHandleMiddleware())
	}
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	if cfg.MaxBodyBytes > 0 {
		r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))
	}

	// health
	ping := func() error {
		if st == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return st.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if prom != nil {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// a nil store must stay a nil interface for the diagnostics check
	var inspector handlers.DatabaseInspector
	if st != nil {
		inspector = st
	}

	diag := handlers.NewDiagnosticsHandler(inspector, cfg.DBURL != "", cfg.DBName != "")
	r.GET("/", diag.Root)
	r.GET("/api/hello", diag.Hello)
	r.GET("/test", diag.Test)

	tournamentsHandler := handlers.NewTournamentsHandler(svc)
	registrationHandler := handlers.NewRegistrationHandler(svc)

	r.GET("/tournaments", tournamentsHandler.ListTournaments)

	limit := cfg.RegisterRateLimit
	if limit <= 0 {
		limit = 30
	}
	registerLimiter := middlewares.NewRateLimiter(limit, time.Minute)

	r.POST("/register",
		middlewares.RequireJSON(),
		registerLimiter.RateLimiterMiddleware(middlewares.KeyByIP),
		registrationHandler.Register,
	)

	log.Debug("routes registered", "routes", len(r.Routes()))

	return r
}
