package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIDHeader = "X-Request-ID"
	callerIDHeader  = "X-Caller-ID"

	contextKeyRequestID = "request_id"
	contextKeyCallerID  = "caller_id"
)

// RequestID attaches a request ID to the context and response, generating
// one when the caller did not send one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(contextKeyRequestID, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// CallerID records the opaque caller identity header for audit logging.
// Authentication is handled upstream at the gateway.
func CallerID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if caller := c.GetHeader(callerIDHeader); caller != "" {
			c.Set(contextKeyCallerID, caller)
		}
		c.Next()
	}
}

// GetCallerID returns the caller identity recorded by CallerID, if any.
func GetCallerID(c *gin.Context) (string, bool) {
	caller := c.GetString(contextKeyCallerID)
	return caller, caller != ""
}

// RequestLogger logs one structured line per request.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", c.GetString(contextKeyRequestID)),
		}
		if caller, ok := GetCallerID(c); ok {
			fields = append(fields, zap.String("caller_id", caller))
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.Error("request", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

// Recovery converts panics into 500 responses and logs the panic value.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
					zap.String("request_id", c.GetString(contextKeyRequestID)),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody{Error: "internal server error"})
			}
		}()
		c.Next()
	}
}
