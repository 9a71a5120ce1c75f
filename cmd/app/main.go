// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"buildcost-premium/internal/config"
	"buildcost-premium/internal/domain/model"
	"buildcost-premium/internal/domain/ports/adapter"
	pg "buildcost-premium/internal/infra/db/postgres"
	"buildcost-premium/internal/infra/identity"
	"buildcost-premium/internal/infra/logging"
	"buildcost-premium/internal/infra/metrics"
	"buildcost-premium/internal/infra/payment"
	red "buildcost-premium/internal/infra/redis"
	"buildcost-premium/internal/infra/security"
	"buildcost-premium/internal/infra/web"
	"buildcost-premium/internal/usecase"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, relaxed CORS)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("dev mode enabled")
	}

	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()
	rateLimiter := red.NewRateLimiter(redisClient)

	// ---- Plan registry ----
	plans := make([]*model.Plan, 0, len(cfg.Plans))
	for _, pc := range cfg.Plans {
		p, err := model.NewPlan(pc.ID, pc.AmountPaise, pc.Currency, pc.Term)
		if err != nil {
			log.Fatalf("plan %q: %v", pc.ID, err)
		}
		plans = append(plans, p)
	}
	registry, err := model.NewPlanRegistry(plans)
	if err != nil {
		log.Fatalf("plan registry: %v", err)
	}

	// ---- Repositories ----
	entRepo := pg.NewEntitlementRepo(pool)
	entStore := pg.NewEntitlementRepoCacheDecorator(entRepo, redisClient, cfg.Redis.TTL.Std())

	// ---- Gateway ----
	gateway, err := payment.NewRazorpayGateway(cfg.Gateway.Razorpay.KeyID, cfg.Gateway.Razorpay.KeySecret)
	if err != nil {
		log.Fatalf("razorpay gateway: %v", err)
	}

	// ---- Identity verifier (gotrue -> jwt by config) ----
	var verifier adapter.IdentityVerifier
	switch cfg.Identity.Mode {
	case "jwt":
		verifier, err = identity.NewJWTVerifier(cfg.Identity.JWTSecret)
	default:
		verifier, err = identity.NewGoTrueVerifier(cfg.Identity.ProjectURL, cfg.Identity.ServiceKey)
	}
	if err != nil {
		log.Fatalf("identity verifier: %v", err)
	}
	logger.Info().Str("provider", verifier.Name()).Msg("identity verifier configured")

	// ---- Use cases ----
	signatures := security.NewSignatureVerifier(cfg.Gateway.Razorpay.KeySecret)
	orderUC := usecase.NewOrderUseCase(registry, gateway, logger)
	verifyUC := usecase.NewVerificationUseCase(signatures, entStore, logger)
	entUC := usecase.NewEntitlementUseCase(entStore)

	// ---- HTTP server ----
	srv := web.NewServer(orderUC, verifyUC, entUC, verifier, rateLimiter, web.Options{
		CORSOrigins:     cfg.Server.CORSOrigins,
		RequestTimeout:  cfg.Server.RequestTimeout.Std(),
		RateLimitPerMin: cfg.Server.RateLimitPerMin,
		Dev:             cfg.Runtime.Dev,
	}, logger)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
}
