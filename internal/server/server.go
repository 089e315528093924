// Package server exposes exam sessions over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/certprep/internal/cache"
	"github.com/abhisek/certprep/internal/clock"
	"github.com/abhisek/certprep/internal/questions"
	"github.com/abhisek/certprep/internal/store"
)

// Config holds the HTTP settings of the server.
type Config struct {
	Addr           string
	GinMode        string
	AllowedOrigins []string

	// SessionTTL is how long an untouched live session stays in memory
	// before it is saved and evicted.
	SessionTTL time.Duration

	ShutdownGrace time.Duration
}

// Deps are the collaborators of the server. Cache and Snapshots are
// optional; without either, sessions cannot be saved.
type Deps struct {
	Source    questions.Source
	Results   store.ResultRepo
	Snapshots store.SnapshotRepo
	Cache     *cache.SnapshotCache

	// NewClock returns the clock of each timed session. Defaults to a
	// one-second ticker.
	NewClock func() clock.Clock

	// Registry receives the server metrics. A fresh registry is created
	// when nil.
	Registry *prometheus.Registry
}

type Server struct {
	cfg      Config
	deps     Deps
	manager  *Manager
	registry *prometheus.Registry
	engine   *gin.Engine
	http     *http.Server
}

func New(cfg Config, deps Deps) *Server {
	if cfg.ShutdownGrace <= 0 {
		cfg.ShutdownGrace = 10 * time.Second
	}
	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	m := newMetrics(reg)

	s := &Server{
		cfg:      cfg,
		deps:     deps,
		manager:  newManager(deps, m),
		registry: reg,
	}
	s.engine = s.newEngine(m)
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Manager returns the live session manager.
func (s *Server) Manager() *Manager {
	return s.manager
}

func (s *Server) newEngine(m *metrics) *gin.Engine {
	if s.cfg.GinMode != "" {
		gin.SetMode(s.cfg.GinMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(m))
	r.Use(cors.New(corsConfig(s.cfg.AllowedOrigins)))

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := &handlers{manager: s.manager, results: s.deps.Results}
	h.register(r.Group("/api"))
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	cfg.MaxAge = 12 * time.Hour
	return cfg
}

// Serve listens until ctx is cancelled, then shuts the HTTP server down
// and saves every open session.
func (s *Server) Serve(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", s.cfg.Addr).Msg("http server listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		s.sweep(ctx)
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down http server")

		sctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownGrace)
		defer cancel()

		err := s.http.Shutdown(sctx)
		if serr := s.manager.Shutdown(sctx); serr != nil {
			log.Error().Err(serr).Msg("save open sessions")
		}
		return err
	})

	return g.Wait()
}

func (s *Server) sweep(ctx context.Context) {
	if s.cfg.SessionTTL <= 0 {
		return
	}
	interval := s.cfg.SessionTTL / 4
	if interval > time.Minute {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.manager.Sweep(ctx, s.cfg.SessionTTL)
		}
	}
}
