package spectator

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed static/index.html
var indexHTML []byte

const shutdownWait = 5 * time.Second

// Options configures the spectator server.
type Options struct {
	Addr string
	// PublicURL is the address phones should open. Empty means the Host
	// the request came in on.
	PublicURL string
	// Registry, if set, is exposed on /metrics.
	Registry *prometheus.Registry
	Logger   *slog.Logger
}

// Server ties the HTTP routes to one Hub.
type Server struct {
	hub    *Hub
	opts   Options
	router *gin.Engine
	log    *slog.Logger
}

func New(hub *Hub, opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		hub:    hub,
		opts:   opts,
		router: gin.New(),
		log:    log.With("component", "http"),
	}
	if opts.PublicURL != "" {
		hub.setJoinURL(opts.PublicURL)
	}

	s.router.Use(gin.Recovery(), s.requestLog)
	s.router.GET("/", s.handleIndex)
	s.router.GET("/ws", s.handleWS)
	s.router.GET("/api/state", s.handleState)
	s.router.GET("/api/qr", s.handleQR)
	if opts.Registry != nil {
		s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	}
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

// JoinURL is the link encoded in the QR code.
func (s *Server) JoinURL(r *http.Request) string {
	if s.opts.PublicURL != "" {
		return s.opts.PublicURL
	}
	host := s.opts.Addr
	if r != nil && r.Host != "" {
		host = r.Host
	}
	if strings.HasPrefix(host, ":") {
		host = "localhost" + host
	}
	return fmt.Sprintf("http://%s/", host)
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{Addr: s.opts.Addr, Handler: s.router}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWait)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	s.log.Info("spectator view listening", "addr", s.opts.Addr, "url", s.JoinURL(nil))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("spectator server: %w", err)
	}
	return nil
}

func (s *Server) requestLog(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.log.Debug("request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"took", time.Since(start),
	)
}
