package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"edaboard/api/middleware"
)

// NewRouter wires the dashboard routes behind the request logger and CORS.
func NewRouter(h *DashboardHandlers, logger *zap.Logger, frontendOrigin string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORSMiddleware(frontendOrigin))

	r.GET("/healthz", Health)
	r.GET("/", h.Index)
	r.GET("/dashboards/:name", h.GetDashboardPage)
	r.GET("/charts/:name/:file", h.GetChartImage)

	api := r.Group("/api")
	{
		api.GET("/dashboards", func(c *gin.Context) {
			c.JSON(http.StatusOK, h.Runner.Dashboards())
		})
		api.GET("/dashboards/:name", h.GetDashboardData)
	}

	return r
}
