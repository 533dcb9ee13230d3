package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/PWalkow/ElasticsearchBundle/internal/logger"
	"github.com/PWalkow/ElasticsearchBundle/internal/service"
)

// ClusterHealthChecker reports the health of the search cluster.
type ClusterHealthChecker interface {
	GetClusterHealth(ctx context.Context) (map[string]any, error)
}

// SetupRouter configures the gin router with all API routes
func SetupRouter(indexService *service.IndexService, health ClusterHealthChecker, log logger.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))
	router.Use(requestMetrics())

	handler := NewHandler(indexService, log)

	router.GET("/health", func(c *gin.Context) {
		payload := gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}
		if health != nil {
			cluster, err := health.GetClusterHealth(c.Request.Context())
			if err != nil {
				payload["status"] = "degraded"
				payload["elasticsearch"] = gin.H{"error": err.Error()}
			} else {
				payload["elasticsearch"] = cluster
			}
		}
		c.JSON(http.StatusOK, payload)
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/managers", handler.ListManagers)
		v1.GET("/operations", handler.ListOperations)

		mgr := v1.Group("/managers/:manager")
		{
			mgr.GET("/index", handler.GetStatus)
			mgr.POST("/index", handler.CreateIndex)
			mgr.DELETE("/index", handler.DropIndex)
			mgr.POST("/index/recreate", handler.RecreateIndex)
			mgr.POST("/index/refresh", handler.RefreshIndex)
			mgr.POST("/index/flush", handler.FlushIndex)
			mgr.POST("/index/clear-cache", handler.ClearCache)

			mgr.POST("/mappings/sync", handler.SyncMappings)

			mgr.POST("/bulk", handler.EnqueueBulk)
			mgr.PUT("/bulk/params", handler.SetBulkParams)
			mgr.POST("/bulk/commit", handler.Commit)

			mgr.POST("/documents/:type", handler.PersistDocument)

			mgr.PUT("/read-only", handler.SetReadOnly)
		}
	}

	return router
}
