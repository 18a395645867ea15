package router

import (
	"github.com/actcode-admin/internal/config"
	adminhandlers "github.com/actcode-admin/internal/http/handlers/admin"
	"github.com/actcode-admin/internal/logger"
	"github.com/actcode-admin/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	adminHandler := adminhandlers.New(c)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		admin := apiV1.Group("/admin")
		{
			// 激活码管理
			activationCode := admin.Group("/activation-code")
			{
				activationCode.GET("", adminHandler.ListActivationCodes)
				activationCode.POST("", adminHandler.CreateActivationCode)
				activationCode.GET("/export", adminHandler.ExportActivationCodes)
				activationCode.POST("/batch-import", adminHandler.BatchImportActivationCodes)
				activationCode.GET("/:id", adminHandler.GetActivationCode)
				activationCode.PUT("/:id", adminHandler.UpdateActivationCode)
				activationCode.DELETE("/:id", adminHandler.DeleteActivationCode)
				activationCode.PATCH("/:id/activate", adminHandler.ActivateActivationCode)
				activationCode.PATCH("/:id/refund", adminHandler.RefundActivationCode)
				activationCode.PATCH("/:id/revoke", adminHandler.RevokeActivationCode)
			}

			// 激活码类型管理
			codeType := admin.Group("/code-type")
			{
				codeType.GET("", adminHandler.ListCodeTypes)
				codeType.POST("", adminHandler.CreateCodeType)
				codeType.GET("/:id", adminHandler.GetCodeType)
				codeType.PUT("/:id", adminHandler.UpdateCodeType)
				codeType.DELETE("/:id", adminHandler.DeleteCodeType)
			}
		}
	}

	return r
}
