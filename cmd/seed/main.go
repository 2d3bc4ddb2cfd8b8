// Command seed fills an empty tournament collection with the demo records
// ahead of the first listing, e.g. as a deploy step.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/geocoder89/tourneyhub/internal/config"
	"github.com/geocoder89/tourneyhub/internal/db"
	"github.com/geocoder89/tourneyhub/internal/observability"
	"github.com/geocoder89/tourneyhub/internal/redisclient"
	"github.com/geocoder89/tourneyhub/internal/seed"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	timeout := flag.Duration("timeout", 30*time.Second, "overall deadline for seeding")
	flag.Parse()

	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)

	defer stop()

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	prom := observability.NewProm(prometheus.NewRegistry())

	st, err := db.Open(ctx, cfg, log, prom)
	if err != nil {
		log.Error("store init failed", "err", err)
		os.Exit(1)
	}
	if st == nil {
		log.Error("DATABASE_URL is required for seeding")
		os.Exit(1)
	}

	defer func() { _ = st.Close(context.Background()) }()

	// share the api's lock when redis is configured
	var guard seed.Guard = seed.NewLocalGuard()

	if cfg.RedisAddr != "" {
		rc := redisclient.New(redisclient.Config{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		defer func() { _ = rc.Close() }()

		host, _ := os.Hostname()
		guard = seed.NewRedisGuard(rc.Raw(), host+"-seed-"+strconv.Itoa(os.Getpid()), 30*time.Second)
	}

	n := seed.New(st, guard, log, prom).Seed(ctx)

	log.Info("seeding finished", "inserted", n, "store", cfg.StoreDriver)
}
