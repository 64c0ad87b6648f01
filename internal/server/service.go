package server

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"layoutctl/internal/observability"
	"layoutctl/internal/runner"
	"layoutctl/internal/task"
)

// ServiceConfig configures the HTTP invocation surface.
type ServiceConfig struct {
	ListenAddr  string
	ServiceName string
	Version     string
	CorsOrigins []string
}

// DefaultServiceConfig returns the stock daemon configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		ListenAddr:  ":9400",
		ServiceName: "layoutd",
		Version:     "0.1.0",
		CorsOrigins: []string{"http://localhost:3000"},
	}
}

// WithDefaults fills unset fields from DefaultServiceConfig.
func (c ServiceConfig) WithDefaults() ServiceConfig {
	def := DefaultServiceConfig()
	if strings.TrimSpace(c.ListenAddr) == "" {
		c.ListenAddr = def.ListenAddr
	}
	if strings.TrimSpace(c.ServiceName) == "" {
		c.ServiceName = def.ServiceName
	}
	if strings.TrimSpace(c.Version) == "" {
		c.Version = def.Version
	}
	// nil means unset; an explicit empty list disables cross-origin
	// access entirely.
	if c.CorsOrigins == nil {
		c.CorsOrigins = def.CorsOrigins
	}
	return c
}

// Service exposes the task catalog over HTTP for orchestration callers.
type Service struct {
	cfg       ServiceConfig
	registry  *task.Registry
	runner    *runner.Runner
	startedAt time.Time
}

// NewService builds the HTTP service around a registry and runner.
func NewService(cfg ServiceConfig, registry *task.Registry, run *runner.Runner) *Service {
	return &Service{
		cfg:       cfg.WithDefaults(),
		registry:  registry,
		runner:    run,
		startedAt: time.Now(),
	}
}

// Router assembles the gin engine with middleware and routes.
func (s *Service) Router() *gin.Engine {
	observability.RegisterMetrics()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetrics())
	if len(s.cfg.CorsOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: s.cfg.CorsOrigins,
			AllowMethods: []string{"GET", "POST"},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
	}

	s.registerRoutes(r)
	return r
}

// Run serves until the listener fails.
func (s *Service) Run() error {
	log.Info().
		Str("service", s.cfg.ServiceName).
		Str("addr", s.cfg.ListenAddr).
		Msg("listening")
	return s.Router().Run(s.cfg.ListenAddr)
}
