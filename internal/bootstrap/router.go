package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	httpapi "github.com/sarayu-labs/chat-insights/internal/api/http"
	"github.com/sarayu-labs/chat-insights/internal/api/http/middleware"
	fihttp "github.com/sarayu-labs/chat-insights/internal/flow_insights/http"
	"github.com/sarayu-labs/chat-insights/internal/flow_insights/service"
	"github.com/sarayu-labs/chat-insights/internal/observability"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowOrigins   []string
	RateLimitRPS   float64
	RateLimitBurst int
	MaxUploadBytes int64

	Flow    *service.Service
	Logger  *zap.Logger
	Metrics *observability.Collector
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(dep.Logger))
	if dep.Metrics != nil {
		r.Use(middleware.Metrics(dep.Metrics))
	}
	r.Use(cors.New(corsConfig(dep.AllowOrigins)))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version)
	healthHandler.RegisterRoutes(r)
	if dep.Metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(dep.Metrics.Registry(), promhttp.HandlerOpts{})))
	}

	api := r.Group("/api/v1")

	fi := api.Group("/flow-insights")
	fi.Use(middleware.RateLimit(dep.RateLimitRPS, dep.RateLimitBurst))
	fihttp.New(dep.Flow, dep.MaxUploadBytes, dep.Logger).Register(fi)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
