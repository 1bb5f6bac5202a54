package api

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/strictenc/strictenc"
	"github.com/strictenc/strictenc/internal/config"
	"github.com/strictenc/strictenc/internal/metrics"
)

// Server represents the REST API server wrapping an Encoder.
type Server struct {
	router  *gin.Engine
	encoder *strictenc.Encoder
	cfg     *config.Config
	metrics *metrics.Metrics // optional; nil disables instrumentation
}

// NewServer creates a new API server. Pass nil metrics to run without
// instrumentation (tests do).
func NewServer(encoder *strictenc.Encoder, cfg *config.Config, m *metrics.Metrics) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		router:  gin.New(),
		encoder: encoder,
		cfg:     cfg,
		metrics: m,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.router.Use(gin.Recovery())

	// Logging middleware
	s.router.Use(func(c *gin.Context) {
		c.Next()
		slog.Info("API request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
		)
	})

	// CORS
	origins := s.cfg.CORS.Origins
	s.router.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if slices.Contains(origins, "*") {
			c.Header("Access-Control-Allow-Origin", "*")
		} else if origin != "" && slices.Contains(origins, origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	s.router.Use(brotliCompression(s.cfg.Server.CompressMinBytes))
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")

	api.POST("/encode", s.encodeOne)
	api.POST("/encode/batch", s.encodeBatch)
	api.POST("/encode/text", s.encodeText)
	api.POST("/encode/bytes", s.encodeBytes)

	api.DELETE("/cache", s.clearCache)
	api.GET("/status", s.getStatus)

	if s.metrics != nil {
		s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Error response helper
func errorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
