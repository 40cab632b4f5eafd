// Package server exposes the resolver and the restaurant collections over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/jbdamask/dinebot/pkg/history"
	"github.com/jbdamask/dinebot/pkg/llm"
	"github.com/jbdamask/dinebot/pkg/session"
	"github.com/jbdamask/dinebot/pkg/tools"
)

// Replier turns one utterance plus prior turns into a reply.
type Replier interface {
	Reply(ctx context.Context, utterance string, history []llm.Message) string
}

type Server struct {
	replier       Replier
	dispatcher    *tools.Dispatcher
	store         tools.Store
	sessions      session.Store
	transcriptDir string
	log           logrus.FieldLogger
	engine        *gin.Engine

	// transcriptMu guards transcripts and orders appends so each session
	// keeps a single parent chain.
	transcriptMu sync.Mutex
	transcripts  map[string]*history.Transcript
}

type Option func(*Server)

// WithTranscripts records every server-held conversation under dir.
func WithTranscripts(dir string) Option {
	return func(s *Server) { s.transcriptDir = dir }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Server) { s.log = log }
}

func New(replier Replier, dispatcher *tools.Dispatcher, st tools.Store, sessions session.Store, opts ...Option) *Server {
	s := &Server{
		replier:     replier,
		dispatcher:  dispatcher,
		store:       st,
		sessions:    sessions,
		log:         logrus.StandardLogger(),
		transcripts: make(map[string]*history.Transcript),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	v1.POST("/chat", s.chat)
	v1.DELETE("/chat/:session_id", s.resetChat)
	v1.GET("/restaurants", s.listRestaurants)
	v1.GET("/reservations", s.listReservations)
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func requestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		}).Info("request")
	}
}
