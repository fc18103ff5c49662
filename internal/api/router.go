package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/route-simplex/internal/config"
	"github.com/jengzang/route-simplex/internal/handler"
	"github.com/jengzang/route-simplex/internal/middleware"
	"github.com/jengzang/route-simplex/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, explorer *service.ExplorerService) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"message":  "Route simplex explorer is running",
			"sessions": explorer.SessionCount(),
		})
	})

	tokens := middleware.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL())
	h := handler.NewExplorerHandler(explorer, tokens)
	limit := middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateWindow())

	api := r.Group("/api/v1")
	{
		api.POST("/sessions", limit, h.CreateSession)
		api.GET("/map/bounds", limit, h.GetMapBounds)

		// 指针事件和画布读取不限流, 只限制访问路由后端的请求
		session := api.Group("", middleware.Auth(tokens))
		{
			session.DELETE("/sessions", h.DeleteSession)
			session.POST("/pointer", h.Pointer)
			session.GET("/state", h.GetState)
			session.GET("/canvas/:mode", h.GetCanvas)
			session.GET("/overlay", h.GetOverlay)
			session.GET("/debuglog", h.GetDebugLog)
			session.POST("/debuglog/toggle", h.ToggleDebugLog)

			session.PUT("/nodes/:which", limit, h.SetNode)
			session.POST("/alternatives/:kind", limit, h.RequestAlternatives)
			session.POST("/triangulation", limit, h.RequestTriangulation)
		}
	}

	return r
}
