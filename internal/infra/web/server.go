package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"buildcost-premium/internal/domain/ports/adapter"
	"buildcost-premium/internal/infra/logging"
	red "buildcost-premium/internal/infra/redis"
	"buildcost-premium/internal/usecase"
)

type Server struct {
	orderUC  usecase.OrderUseCase
	verifyUC usecase.VerificationUseCase
	entUC    usecase.EntitlementUseCase
	identity adapter.IdentityVerifier
	limiter  *red.RateLimiter

	corsOrigins     []string
	requestTimeout  time.Duration
	rateLimitPerMin int
	dev             bool
	log             *zerolog.Logger
}

type Options struct {
	CORSOrigins     []string
	RequestTimeout  time.Duration
	RateLimitPerMin int
	Dev             bool
}

func NewServer(
	orderUC usecase.OrderUseCase,
	verifyUC usecase.VerificationUseCase,
	entUC usecase.EntitlementUseCase,
	identity adapter.IdentityVerifier,
	limiter *red.RateLimiter,
	opts Options,
	logger *zerolog.Logger,
) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 15 * time.Second
	}
	if opts.RateLimitPerMin <= 0 {
		opts.RateLimitPerMin = 30
	}
	return &Server{
		orderUC:         orderUC,
		verifyUC:        verifyUC,
		entUC:           entUC,
		identity:        identity,
		limiter:         limiter,
		corsOrigins:     opts.CORSOrigins,
		requestTimeout:  opts.RequestTimeout,
		rateLimitPerMin: opts.RateLimitPerMin,
		dev:             opts.Dev,
		log:             logger,
	}
}

// Router assembles the full middleware chain and routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(TraceID())
	r.Use(RequestLog(s.log))
	r.Use(Recover(s.log))
	r.Use(Timeout(s.requestTimeout))
	r.Use(CORS(s.corsOrigins))

	r.Get("/status", s.handleStatus)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(pr chi.Router) {
		pr.Use(s.RequireAuth)
		pr.Use(s.rateLimit)
		pr.Post("/create-order", s.handleCreateOrder)
		pr.Post("/verify-payment", s.handleVerifyPayment)
		pr.Get("/entitlement", s.handleEntitlement)
	})
	return r
}

// rateLimit applies a fixed window per authenticated subject and route.
// Redis trouble fails open; checkout must survive a cache outage.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}
		ident := IdentityFrom(r.Context())
		key := red.RouteKey(ident.SubjectID, r.URL.Path)
		ok, err := s.limiter.Allow(r.Context(), key, s.rateLimitPerMin, time.Minute)
		if err != nil {
			logging.With(r.Context(), s.log).Warn().Err(err).Msg("rate limiter unavailable")
			next.ServeHTTP(w, r)
			return
		}
		if !ok {
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limited"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
