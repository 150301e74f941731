package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/document"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/resolver"
)

const (
	MissingMessage = "Missing 'message' field in request body"

	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"

	pingTimeout = 3 * time.Second
)

type chatRequest struct {
	Message *string `json:"message"`
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": MissingMessage})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.opts.RequestTimeout)
	defer cancel()

	res, err := s.resolver.Answer(ctx, resolver.Request{
		Message: *req.Message,
		Context: map[string]any{
			"channel":    "http",
			"request_id": c.GetString(requestIDKey),
		},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"response": res.Text})
		return
	}
	c.Set(intentKey, res.Intent)
	c.JSON(http.StatusOK, gin.H{"response": res.Text})
}

func (s *Server) handlePreflight(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{})
}

func (s *Server) handleReload(c *gin.Context) {
	snap, err := s.resolver.Reload(c.Request.Context())
	if err != nil {
		s.log.WithError(err).Warn("reload request failed", nil)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"products": snap.Products.Len(),
		"services": snap.Services.Len(),
		"version":  snap.Version,
	})
}

type health struct {
	Status          string `json:"status"`
	LLM             string `json:"llm"`
	Provider        string `json:"provider"`
	Model           string `json:"model"`
	Document        string `json:"document"`
	DocumentExists  bool   `json:"document_exists"`
	KnowledgeLoaded bool   `json:"knowledge_loaded"`
	Products        int    `json:"products"`
	Services        int    `json:"services"`
	LoadedAt        string `json:"loaded_at,omitempty"`
	Version         uint64 `json:"version"`
	LastError       string `json:"last_error,omitempty"`
}

func (s *Server) handleHealth(c *gin.Context) {
	snap := s.resolver.Snapshot()
	h := health{
		Provider:        s.opts.Provider,
		Model:           s.opts.Model,
		Document:        s.opts.Document,
		DocumentExists:  document.Exists(s.opts.Document),
		KnowledgeLoaded: snap.Available(),
		Products:        snap.Products.Len(),
		Services:        snap.Services.Len(),
		Version:         snap.Version,
	}
	if !snap.LoadedAt.IsZero() {
		h.LoadedAt = snap.LoadedAt.Format(time.RFC3339)
	}
	if err := s.resolver.LastLoadError(); err != nil {
		h.LastError = err.Error()
	}

	llmUp := s.pingLLM(c.Request.Context())
	h.LLM = "disconnected"
	if llmUp {
		h.LLM = "connected"
	}
	h.Status = status(llmUp, h.KnowledgeLoaded)
	c.JSON(http.StatusOK, h)
}

func (s *Server) pingLLM(ctx context.Context) bool {
	if s.llm == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.llm.Ping(ctx); err != nil {
		s.log.Debug("llm ping failed", map[string]interface{}{"error": err.Error()})
		return false
	}
	return true
}

func status(llmUp, catalogLoaded bool) string {
	switch {
	case llmUp && catalogLoaded:
		return StatusHealthy
	case !llmUp && !catalogLoaded:
		return StatusUnhealthy
	default:
		return StatusDegraded
	}
}

