package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/goliatone/go-codeclash/internal/display"
	"github.com/goliatone/go-codeclash/internal/logging"
	"github.com/goliatone/go-codeclash/pkg/interfaces"
)

var errResolverRequired = errors.New("server: content resolver is required")

const defaultShutdownTimeout = 10 * time.Second

// Config captures listener and rendering options.
type Config struct {
	Addr            string
	BaseURL         string
	Mode            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Dependencies lists the collaborators required by the server.
type Dependencies struct {
	Resolver interfaces.ContentResolver
	Renderer *display.Renderer
	Logger   interfaces.Logger
}

// Server routes HTTP requests to the content resolver.
type Server struct {
	cfg      Config
	resolver interfaces.ContentResolver
	renderer *display.Renderer
	logger   interfaces.Logger
	engine   *gin.Engine
}

// New builds the gin engine and registers every route.
func New(cfg Config, deps Dependencies) (*Server, error) {
	if deps.Resolver == nil {
		return nil, errResolverRequired
	}
	if mode := strings.TrimSpace(cfg.Mode); mode != "" {
		gin.SetMode(mode)
	}

	s := &Server{
		cfg:      cfg,
		resolver: deps.Resolver,
		renderer: deps.Renderer,
		logger:   logging.OrNoOp(deps.Logger),
	}
	if s.renderer == nil {
		s.renderer = display.NewRenderer(nil, display.WithLogger(s.logger))
	}

	engine := gin.New()
	// Raw paths keep "%23" and "%20" intact so the resolver decodes slugs once.
	engine.UseRawPath = true
	engine.UnescapePathValues = false
	engine.Use(gin.Recovery(), requestLogger(s.logger))
	s.engine = engine
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.health)
	s.engine.GET("/sitemap.xml", s.sitemap)
	s.engine.GET("/compare", s.compare)

	api := s.engine.Group("/api")
	api.GET("/technologies", s.technologies)
	api.GET("/pairings", s.pairings)
	api.GET("/:category", s.listEntries)
	api.GET("/:category/:slug", s.resolveEntry)
	api.GET("/:category/:slug/related", s.related)
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server.listen", "addr", s.cfg.Addr)
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

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("server.shutdown")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

const requestIDHeader = "X-Request-ID"

func requestLogger(logger interfaces.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)
		ctx := logging.ContextWithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
		logger.WithContext(ctx).Debug("server.request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
