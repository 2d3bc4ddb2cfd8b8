package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/geocoder89/tourneyhub/internal/cache"
	"github.com/geocoder89/tourneyhub/internal/config"
	"github.com/geocoder89/tourneyhub/internal/db"
	httpx "github.com/geocoder89/tourneyhub/internal/http"
	"github.com/geocoder89/tourneyhub/internal/observability"
	"github.com/geocoder89/tourneyhub/internal/redisclient"
	"github.com/geocoder89/tourneyhub/internal/seed"
	"github.com/geocoder89/tourneyhub/internal/tournaments"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Load the config set up
	cfg := config.Load()

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	ctx := context.Background()

	shutdownTracer, err := observability.InitTracer(ctx, observability.TracerConfig{
		ServiceName: cfg.OTELServiceName,
		Endpoint:    cfg.OTELEndpoint,
		Env:         cfg.Env,
		SampleRatio: cfg.OTELSampleRatio,
	})
	if err != nil {
		log.Error("tracer init failed", "err", err)
		os.Exit(1)
	}

	prom := observability.NewProm(prometheus.DefaultRegisterer)

	st, err := db.Open(ctx, cfg, log, prom)
	if err != nil {
		log.Error("store init failed", "err", err)
		os.Exit(1)
	}

	// redis is optional; without it the cache and the seed guard stay in process
	var (
		listCache cache.Cache
		guard     seed.Guard = seed.NewLocalGuard()
		rc        *redisclient.Client
	)

	if cfg.RedisAddr != "" {
		rc = redisclient.New(redisclient.Config{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})

		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := rc.Ping(pctx); err != nil {
			log.Warn("redis ping failed, continuing", "addr", cfg.RedisAddr, "err", err)
		}
		cancel()

		guard = seed.NewRedisGuard(rc.Raw(), instanceID(), 30*time.Second)
		if cfg.CacheTTL > 0 {
			listCache = cache.NewRedis(rc.Raw(), cfg.CacheTTL)
		}
	} else if cfg.CacheTTL > 0 {
		listCache = cache.New(cfg.CacheTTL)
	}

	var seeder *seed.Seeder
	if st != nil {
		seeder = seed.New(st, guard, log, prom)
	}

	svc := tournaments.NewService(st, tournaments.Options{
		Seeder:  seeder,
		Cache:   listCache,
		Timeout: cfg.StoreTimeout,
		Log:     log,
		Prom:    prom,
	})

	// set up routers with the log
	router := httpx.NewRouter(log, cfg, svc, st, prom)

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// start server using a concurrent go-routine driven anonymous function.

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.StoreDriver)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}

		if st != nil {
			if err := st.Close(ctx); err != nil {
				log.Error("store close failed", "err", err)
			}
		}

		if rc != nil {
			_ = rc.Close()
		}

		if err := shutdownTracer(ctx); err != nil {
			log.Error("tracer shutdown failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}

func instanceID() string {
	host, _ := os.Hostname()
	if host == "" {
		host = "tourneyhub"
	}
	return host + "-" + strconv.Itoa(os.Getpid())
}
