package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/filmvault/theater-backend/internal/http/handlers"
	httpMW "github.com/filmvault/theater-backend/internal/http/middleware"
	"github.com/filmvault/theater-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	HealthHandler *httpH.HealthHandler
	MovieHandler  *httpH.MovieHandler

	ServiceName string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "theater-backend"
	}
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	theater := r.Group("/theater")
	{
		if cfg.MovieHandler != nil {
			movies := theater.Group("/movies")
			movies.GET("/", cfg.MovieHandler.List)
			movies.POST("/", cfg.MovieHandler.Create)
			movies.GET("/:id/", cfg.MovieHandler.Get)
			movies.PATCH("/:id/", cfg.MovieHandler.Update)
			movies.DELETE("/:id/", cfg.MovieHandler.Delete)
		}
	}

	return r
}
