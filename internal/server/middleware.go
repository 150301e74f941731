package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/resolver"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	intentKey       = "intent"
)

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = s.newID()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]interface{}{
			"request_id": c.GetString(requestIDKey),
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"took_ms":    time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}
		if intent := c.GetString(intentKey); intent != "" {
			fields["intent"] = intent
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			s.log.Warn("request failed", fields)
			return
		}
		s.log.Info("request", fields)
	}
}

// recovery turns a handler panic into the same apology the resolver gives.
func (s *Server) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if p := recover(); p != nil {
				s.log.Error("handler panic", map[string]interface{}{
					"request_id": c.GetString(requestIDKey),
					"panic":      p,
				})
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"response": resolver.ApologyEN})
			}
		}()
		c.Next()
	}
}

// cors stamps the cross-origin headers on every response, errors included.
func (s *Server) cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", s.opts.AllowOrigin)
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+requestIDHeader)
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Next()
	}
}
