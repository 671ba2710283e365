package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/joshu-sajeev/staybook/common"
	"github.com/joshu-sajeev/staybook/internal/metrics"
)

const (
	RequestIDHeader = "X-Request-ID"
	// UserIDHeader is set by the upstream auth gateway.
	UserIDHeader = "X-User-ID"

	requestIDKey = "request_id"
	userIDKey    = "user_id"
	loggerKey    = "logger"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// RequestContext attaches a request-scoped logger to the gin context and to
// the request context, where services pick it up with zerolog.Ctx.
func RequestContext(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := base.With().
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Logger()

		c.Set(loggerKey, &logger)
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))
		c.Next()
	}
}

func LoggerFrom(c *gin.Context, fallback *zerolog.Logger) *zerolog.Logger {
	if logger, ok := c.Get(loggerKey); ok {
		if l, ok := logger.(*zerolog.Logger); ok {
			return l
		}
	}
	return fallback
}

// RequestLogger records one access log entry and the HTTP metrics per request.
// Requests whose fault was already logged by ErrorHandler are not logged again.
func RequestLogger() gin.HandlerFunc {
	nop := zerolog.Nop()

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(latency.Seconds())

		if c.GetBool(faultLoggedKey) {
			return
		}

		logger := LoggerFrom(c, &nop)
		var e *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			e = logger.Error()
		case status >= http.StatusBadRequest:
			e = logger.Warn()
		default:
			e = logger.Info()
		}

		e.Int("status", status).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Msg("API")
	}
}

// RequireUser rejects requests without a caller identity.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(strings.TrimSpace(c.GetHeader(UserIDHeader)), 10, 64)
		if err != nil || id < 1 {
			common.TerminateRequest(c, "Unauthenticated.", map[string]any{}, http.StatusUnauthorized)
			return
		}

		c.Set(userIDKey, uint(id))
		c.Next()
	}
}

func UserID(c *gin.Context) uint {
	id, _ := c.Get(userIDKey)
	uid, _ := id.(uint)
	return uid
}
