// Package server is the HTTP front-end: chat, pre-flight, health, reload and
// metrics routes on a gin engine.
package server

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/logger"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/metrics"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/resolver"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/store"
)

// Resolver is what the routes need from the intent resolver.
type Resolver interface {
	Answer(ctx context.Context, req resolver.Request) (resolver.Result, error)
	Reload(ctx context.Context) (*store.Snapshot, error)
	Snapshot() *store.Snapshot
	LastLoadError() error
}

// Pinger checks the language model backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	Addr            string
	AllowOrigin     string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	// Provider, Model and Document are reported by /health.
	Provider string
	Model    string
	Document string
}

type Server struct {
	resolver Resolver
	llm      Pinger
	opts     Options
	log      logger.Logger

	idMu    sync.Mutex
	entropy *rand.Rand
}

func New(r Resolver, llm Pinger, opts Options, log logger.Logger) *Server {
	if log == nil {
		log = logger.NewNop()
	}
	if opts.AllowOrigin == "" {
		opts.AllowOrigin = "*"
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	return &Server{
		resolver: r,
		llm:      llm,
		opts:     opts,
		log:      log,
		entropy:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Handler builds the gin engine.
func (s *Server) Handler() http.Handler {
	engine := gin.New()
	engine.Use(s.requestID(), s.accessLog(), s.recovery(), s.cors())

	engine.POST("/api/chat", s.handleChat)
	engine.OPTIONS("/api/chat", s.handlePreflight)
	engine.POST("/api/reload", s.handleReload)
	engine.GET("/health", s.handleHealth)
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	return engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", map[string]interface{}{"addr": s.opts.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen %s: %w", s.opts.Addr, err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("http server shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func (s *Server) newID() string {
	s.idMu.Lock()
	defer s.idMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}
