package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/docugraph/docugraph-backend/internal/handlers"
	"github.com/docugraph/docugraph-backend/internal/middleware"
	"github.com/docugraph/docugraph-backend/internal/observability"
)

type RouterConfig struct {
	AllowOrigins  []string
	IngestHandler *handlers.IngestHandler
	QAHandler     *handlers.QAHandler
	GraphHandler  *handlers.GraphHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Request-ID"},
		AllowCredentials: true,
	}))
	router.Use(middleware.RequestID())
	if observability.Enabled() {
		router.Use(otelgin.Middleware("docugraph"))
	}

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/ingest", cfg.IngestHandler.Ingest)
		api.POST("/ask", cfg.QAHandler.Ask)
		api.GET("/questions", cfg.QAHandler.Questions)
		api.POST("/graph/subgraph", cfg.GraphHandler.Subgraph)
		api.GET("/graph/schema", cfg.GraphHandler.Schema)
		api.GET("/graph/exists", cfg.GraphHandler.Exists)

		admin := api.Group("/admin")
		admin.DELETE("/graph", cfg.GraphHandler.Clear)
	}

	return router
}
