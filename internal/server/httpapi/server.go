// Package httpapi is the public HTTP surface of the authentication service.
package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/amitEt25/aiven-auth-assigment/internal/logging"
	"github.com/amitEt25/aiven-auth-assigment/internal/server/observability"
	"github.com/amitEt25/aiven-auth-assigment/internal/server/ratelimit"
	"github.com/amitEt25/aiven-auth-assigment/internal/server/users"
)

type Server struct {
	address   string
	users     *users.Service
	limiter   *ratelimit.Limiter
	metrics   *observability.Metrics
	logger    logging.Logger
	jwtSecret []byte
}

func NewServer(a string, l logging.Logger, us *users.Service, limiter *ratelimit.Limiter,
	m *observability.Metrics, secretKey string) (*Server, error) {
	return &Server{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		limiter:   limiter,
		metrics:   m,
		jwtSecret: []byte(secretKey),
	}, nil
}

func (s *Server) routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())
	r.Use(securityHeaders())

	r.GET("/health", s.health)

	authGroup := r.Group("/api/auth")
	authGroup.Use(s.rateLimit())
	{
		authGroup.POST("/register", s.register)
		authGroup.POST("/login", s.login)
		authGroup.GET("/profile", s.authenticate(), s.profile)
	}

	r.GET("/api/users", s.authenticate(), s.listUsers)

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Header("X-Request-ID", id)

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		if s.metrics != nil {
			s.metrics.RequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		}

		s.logger.Info(c.Request.Context(), "request",
			"request_id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"client", c.ClientIP(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "Error stopping HTTP server", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
