package restapi

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the v1 API group on the given engine.
func SetupRoutes(router *gin.Engine, handler *PortfolioHandler) {
	v1 := router.Group("/api/v1")
	{
		v1.GET("/networks", handler.GetNetworksHandler)
		v1.GET("/portfolio", handler.GetPortfolioHandler)
		v1.GET("/portfolio/scan", handler.ScanPortfolioHandler)
	}
}
