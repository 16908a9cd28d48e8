package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"rocketshop/internal/profile"
	"rocketshop/internal/session"
	"rocketshop/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Pinger reports whether a backing dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options configure the handler's non-session data
type Options struct {
	DefaultUsername string
	SupportHandle   string
	ReviewsHandle   string
	RateLimitRPS    float64
	RateLimitBurst  int
	// Readiness lists dependencies that must answer for /ready to succeed
	Readiness map[string]Pinger
}

// Handler contains HTTP handlers
type Handler struct {
	sessions  *session.Service
	purchases profile.PurchaseSource
	opts      Options
	startedAt time.Time
	logger    *zap.Logger
}

func NewHandler(sessions *session.Service, purchases profile.PurchaseSource, opts Options) *Handler {
	if purchases == nil {
		purchases = profile.EmptySource{}
	}
	return &Handler{
		sessions:  sessions,
		purchases: purchases,
		opts:      opts,
		startedAt: time.Now(),
		logger:    util.GetLogger(),
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	if h.opts.RateLimitRPS > 0 {
		v1.Use(NewRateLimiter(h.opts.RateLimitRPS, h.opts.RateLimitBurst).Middleware())
	}
	{
		v1.GET("/catalog", h.findProducts)
		v1.GET("/catalog/facets", h.catalogFacets)

		v1.POST("/sessions", h.createSession)
		v1.GET("/sessions/:id", h.getSession)
		v1.DELETE("/sessions/:id", h.deleteSession)
		v1.PUT("/sessions/:id/filters", h.setFilters)
		v1.GET("/sessions/:id/catalog", h.browse)

		v1.GET("/sessions/:id/cart", h.getCart)
		v1.DELETE("/sessions/:id/cart", h.clearCart)
		v1.POST("/sessions/:id/cart/items", h.addToCart)
		v1.PATCH("/sessions/:id/cart/items/:productId", h.updateQuantity)
		v1.DELETE("/sessions/:id/cart/items/:productId", h.removeFromCart)
		v1.POST("/sessions/:id/cart/items/:productId/increment", h.incrementQuantity)
		v1.POST("/sessions/:id/cart/items/:productId/decrement", h.decrementQuantity)
		v1.POST("/sessions/:id/cart/open", h.openCart)
		v1.POST("/sessions/:id/cart/close", h.closeCart)
		v1.POST("/sessions/:id/discount", h.activateDiscount)

		v1.GET("/sessions/:id/checkout", h.getCheckout)
		v1.POST("/sessions/:id/checkout", h.openCheckout)
		v1.DELETE("/sessions/:id/checkout", h.closeCheckout)
		v1.POST("/sessions/:id/checkout/method", h.chooseMethod)
		v1.POST("/sessions/:id/checkout/back", h.backToMethods)

		v1.GET("/profile", h.getProfile)
		v1.GET("/contacts", h.getContacts)
	}
}

func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

func (h *Handler) readinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	for name, p := range h.opts.Readiness {
		if err := p.Ping(ctx); err != nil {
			h.logger.Warn("Readiness check failed", zap.String("dependency", name), zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "not ready",
				"error":   name + " unavailable",
				"details": err.Error(),
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		util.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		util.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}
