package httpserver

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"minitweet/internal/apperr"
	"minitweet/internal/handler"
	"minitweet/pkg/logger"
	"minitweet/pkg/metrics"
	"minitweet/pkg/trace"
	"minitweet/pkg/util"
)

// Authenticator resolves a raw access token into its claims.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*util.Claims, error)
}

// TraceMiddleware 为每个请求注入 trace id，并回写到响应头
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := trace.FromHeader(c.GetHeader(trace.HeaderName))
		c.Request = c.Request.WithContext(trace.WithContext(c.Request.Context(), traceID))
		c.Header(trace.HeaderName, traceID)
		c.Next()
	}
}

// RequestLogger logs one line per request and records its latency.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()
		metrics.RecordHTTPRequestDuration(c.Request.Method, path, strconv.Itoa(status), elapsed)

		logger.WithTrace(c.Request.Context(), log).Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", elapsed),
		)
	}
}

func AuthMiddleware(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := util.ExtractToken(c.Request)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := authn.Authenticate(c.Request.Context(), token)
		if err != nil {
			status := apperr.HTTPStatus(err)
			msg := "invalid token"
			if status == http.StatusInternalServerError {
				msg = "internal error"
			}
			c.AbortWithStatusJSON(status, gin.H{"error": msg})
			return
		}

		// store user_id in context so handlers can use it
		c.Set(handler.ContextUserID, claims.UserID)
		c.Set(handler.ContextClaims, claims)

		c.Next()
	}
}
