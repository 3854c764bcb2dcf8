package observability

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce           sync.Once
	httpDurationHistogram  *prometheus.HistogramVec
	merchantConfigCounter  *prometheus.CounterVec
	loanApplicationCounter *prometheus.CounterVec
	requestedAmountSummary *prometheus.SummaryVec
	storedMerchantsGauge   prometheus.Gauge
)

// Init registers all Prometheus collectors.
func Init() {
	registerOnce.Do(func() {
		httpDurationHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"})

		merchantConfigCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "merchant_config_operations_total",
			Help: "Merchant configuration get/create/update outcomes",
		}, []string{"operation", "outcome"})

		loanApplicationCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "loan_application_intake_total",
			Help: "Loan application submissions by outcome",
		}, []string{"outcome"})

		requestedAmountSummary = prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Name:       "loan_application_requested_amount",
			Help:       "Requested amounts of accepted loan applications, in currency units",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		}, []string{"currency"})

		storedMerchantsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "merchant_configurations_stored",
			Help: "Number of merchant configurations held in memory",
		})

		prometheus.MustRegister(
			httpDurationHistogram,
			merchantConfigCounter,
			loanApplicationCounter,
			requestedAmountSummary,
			storedMerchantsGauge,
		)
	})
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func ObserveHTTP(method, path string, status int, duration time.Duration) {
	if httpDurationHistogram == nil {
		return
	}
	httpDurationHistogram.WithLabelValues(method, path, strconv.Itoa(status)).Observe(duration.Seconds())
}

func IncrementMerchantConfig(operation, outcome string) {
	if merchantConfigCounter == nil {
		return
	}
	merchantConfigCounter.WithLabelValues(operation, outcome).Inc()
}

func IncrementLoanApplication(outcome string) {
	if loanApplicationCounter == nil {
		return
	}
	loanApplicationCounter.WithLabelValues(outcome).Inc()
}

func ObserveRequestedAmount(currency string, amount float64) {
	if requestedAmountSummary == nil {
		return
	}
	requestedAmountSummary.WithLabelValues(currency).Observe(amount)
}

func SetStoredMerchants(n int) {
	if storedMerchantsGauge == nil {
		return
	}
	storedMerchantsGauge.Set(float64(n))
}
