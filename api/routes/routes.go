package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/feichai0017/document-intake/api/handlers"
	"github.com/feichai0017/document-intake/api/middleware"
)

// SetupRoutes 配置所有路由
func SetupRoutes(r *gin.Engine, h *handlers.Handlers) {
	// 全局中间件
	r.Use(middleware.CORS())

	// API 版本组
	v1 := r.Group("/api/v1")

	// 文档处理路由组
	docs := v1.Group("/documents")
	{
		docs.POST("/process", h.Document.ProcessDocument)
		docs.POST("/sync", h.Document.ProcessSync)
		docs.POST("/batch", h.Document.ProcessBatch)
		docs.GET("/status/:taskId", h.Document.GetStatus)
		docs.GET("/record/:taskId", h.Document.GetRecord)
		docs.DELETE("/task/:taskId", h.Document.CancelTask)
	}
}
