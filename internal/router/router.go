package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/joshu-sajeev/staybook/common"
	"github.com/joshu-sajeev/staybook/internal/payment"
	"github.com/joshu-sajeev/staybook/internal/review"
	"github.com/joshu-sajeev/staybook/internal/webhook"
	"github.com/joshu-sajeev/staybook/middleware"
)

type Handlers struct {
	Review  review.ReviewHandlerInterface
	Payment payment.PaymentHandlerInterface
	Webhook webhook.WebhookHandlerInterface

	// Health reports whether dependencies are reachable. Optional.
	Health func(ctx context.Context) error
}

func New(log zerolog.Logger, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestContext(log),
		middleware.RequestLogger(),
		middleware.ErrorHandler(log),
	)

	r.NoRoute(func(c *gin.Context) {
		common.TerminateRequest(c, "Not Found", map[string]any{}, http.StatusNotFound)
	})

	r.GET("/health", health(h.Health))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	reviews := r.Group("/reviews")
	{
		reviews.GET("", h.Review.Index)
		reviews.POST("", middleware.RequireUser(), h.Review.Store)
		reviews.GET("/:room_id", h.Review.Show)
		reviews.PUT("/:room_id", h.Review.Update)
		reviews.DELETE("/:room_id", h.Review.Destroy)
	}

	methods := r.Group("/payment-methods", middleware.RequireUser())
	{
		methods.GET("", h.Payment.Index)
		methods.POST("", h.Payment.Store)
		methods.GET("/:id", h.Payment.Show)
		methods.PUT("/:id", h.Payment.Update)
		methods.DELETE("/:id", h.Payment.Destroy)
	}

	r.POST("/webhooks", h.Webhook.Handle)

	return r
}

func health(check func(ctx context.Context) error) gin.HandlerFunc {
	nop := zerolog.Nop()

	return func(c *gin.Context) {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := check(ctx); err != nil {
				middleware.LoggerFrom(c, &nop).Warn().Err(err).Msg("health check failed")
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
