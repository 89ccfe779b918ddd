package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	billingdomain "github.com/thititongumpun/uoobpremium/internal/billing/domain"
	"github.com/thititongumpun/uoobpremium/internal/clock"
	"github.com/thititongumpun/uoobpremium/internal/config"
	"github.com/thititongumpun/uoobpremium/internal/observability/logger"
	"github.com/thititongumpun/uoobpremium/internal/observability/metrics"
)

const livenessMessage = "👋 Hello! Discord Bot Worker is active (Native Crypto Mode)."

type Params struct {
	fx.In

	Config      config.Config
	Log         *zap.Logger
	Engine      *gin.Engine
	BillingSvc  billingdomain.Service
	Clock       clock.Clock
	HTTPMetrics *metrics.HTTPMetrics `optional:"true"`
}

// Server hosts the liveness endpoint and the interaction callback.
type Server struct {
	cfg        config.Config
	log        *zap.Logger
	engine     *gin.Engine
	billingSvc billingdomain.Service
	clk        clock.Clock
	limiter    *rateLimiter
}

// NewEngine builds the gin engine with the shared middleware stack.
func NewEngine(cfg config.Config, log *zap.Logger, httpMetrics *metrics.HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{Logger: log}))
	engine.Use(metrics.GinMiddleware(httpMetrics))
	return engine
}

func NewServer(p Params) *Server {
	return &Server{
		cfg:        p.Config,
		log:        p.Log.Named("server"),
		engine:     p.Engine,
		billingSvc: p.BillingSvc,
		clk:        p.Clock,
		limiter:    newRateLimiter(30, time.Minute),
	}
}

// RegisterRoutes mounts the public endpoints.
func (s *Server) RegisterRoutes() {
	s.engine.GET("/", s.Liveness)
	s.engine.POST("/interactions", s.RateLimit(), s.HandleInteraction)
}

// Liveness answers browser GETs with a static string.
func (s *Server) Liveness(c *gin.Context) {
	c.String(http.StatusOK, livenessMessage)
}

// RateLimit guards the interaction endpoint per client address.
func (s *Server) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Allow(c.ClientIP()) {
			AbortWithError(c, ErrTooManyRequests)
			return
		}
		c.Next()
	}
}

// RunHTTP starts the HTTP listener under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, s *Server, log *zap.Logger) {
	srv := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", s.cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
