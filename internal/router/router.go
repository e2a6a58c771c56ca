package router

import (
	"github.com/martcart-next/internal/config"
	uihandlers "github.com/martcart-next/internal/http/handlers/ui"
	"github.com/martcart-next/internal/logger"
	"github.com/martcart-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	uiHandler := uihandlers.New(c)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		cart := apiV1.Group("/cart")
		{
			cart.GET("", uiHandler.GetCart)
			cart.POST("/items", uiHandler.AddCartItem)
			cart.PUT("/items/:sku", uiHandler.SetCartItemQuantity)
			cart.POST("/items/:sku/decrement", uiHandler.DecrementCartItem)
			cart.DELETE("/items/:sku", uiHandler.DeleteCartItem)
			cart.POST("/clear", uiHandler.ClearCart)
			cart.POST("/sync", uiHandler.ForceSync)
			cart.POST("/express-notice/close", uiHandler.CloseExpressNotice)
		}

		session := apiV1.Group("/session")
		{
			session.POST("", uiHandler.CreateSession)
			session.DELETE("", uiHandler.DeleteSession)
			session.PUT("/zone", uiHandler.SetZone)
		}
	}

	return r
}
