package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sessions_created_total",
		Help: "Total number of storefront sessions created",
	})

	CatalogQueriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_queries_total",
		Help: "Total number of catalog queries",
	})

	CatalogQueryResults = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_query_results",
		Help:    "Number of products returned per catalog query",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
	})

	CartItemsAddedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_items_added_total",
		Help: "Total number of add-to-cart actions",
	})

	CartItemsRemovedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_items_removed_total",
		Help: "Total number of cart lines removed",
	})

	DiscountActivationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "discount_activations_total",
		Help: "Total number of sessions that activated the promo discount",
	})

	CheckoutsStartedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkouts_started_total",
		Help: "Total number of payment dialogs opened",
	})

	CheckoutsRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkouts_rejected_total",
		Help: "Total number of rejected checkout actions",
	}, []string{"reason"})

	PaymentMethodsChosenTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_methods_chosen_total",
		Help: "Total number of payment method selections",
	}, []string{"method"})

	PendingPurchasesRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pending_purchases_recorded_total",
		Help: "Total number of pending purchases recorded from checkout events",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "http_rate_limited_total",
		Help: "Total number of requests rejected by the rate limiter",
	})
)
