package api

import (
	"net/http"

	"github.com/ayo6706/loan-origination/internal/api/handler"
	"github.com/ayo6706/loan-origination/internal/api/middleware"
	"github.com/ayo6706/loan-origination/internal/api/spec"
	"github.com/ayo6706/loan-origination/internal/config"
	"github.com/ayo6706/loan-origination/internal/observability"
	"github.com/ayo6706/loan-origination/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type Router struct {
	cfg         *config.Config
	logger      *zap.Logger
	store       handler.Pinger
	merchantSvc *service.MerchantConfigService
	loanSvc     *service.LoanApplicationService
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	store handler.Pinger,
	merchantSvc *service.MerchantConfigService,
	loanSvc *service.LoanApplicationService,
) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		cfg:         cfg,
		logger:      logger,
		store:       store,
		merchantSvc: merchantSvc,
		loanSvc:     loanSvc,
	}
}

func (api *Router) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.TraceMiddleware)
	r.Use(middleware.RecoverMiddleware(api.logger))
	r.Use(middleware.LoggingMiddleware(api.logger))
	r.Use(middleware.MetricsMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handler.RespondError(w, r, http.StatusNotFound, "route/not-found", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handler.RespondError(w, r, http.StatusMethodNotAllowed, "route/method-not-allowed", "method not allowed")
	})

	// Handlers
	healthHandler := handler.NewHealthHandler(api.store)
	merchantHandler := handler.NewMerchantConfigHandler(api.merchantSvc)
	loanHandler := handler.NewLoanApplicationHandler(api.loanSvc)

	// Operational Routes
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)
	r.Handle("/metrics", observability.Handler())
	r.Get("/api-docs/openapi.yaml", spec.OpenAPIHandler())
	r.Get("/api-docs/*", httpSwagger.Handler(httpSwagger.URL("/api-docs/openapi.yaml")))

	// Business Routes
	business := func(r chi.Router) {
		r.Use(middleware.PublicRateLimiter(api.cfg.RateLimitRPS))

		// Loan applications
		r.Post("/loan_application", loanHandler.CreateLoanApplication)
		r.Get("/loan_application/{id}", loanHandler.GetLoanApplication)
		r.Post("/loan_application/{id}/exit", loanHandler.SubmitExit)

		// Merchant configuration
		r.Post("/merchant_config/set_merchant_config", merchantHandler.CreateMerchantConfig)
		r.Put("/merchant_config/set_merchant_config", merchantHandler.UpdateMerchantConfig)
		r.Get("/merchant_config/{merchantId}", merchantHandler.GetMerchantConfig)
	}
	if api.cfg.APIPrefix == "" {
		r.Group(business)
	} else {
		r.Route(api.cfg.APIPrefix, business)
	}

	return r
}
