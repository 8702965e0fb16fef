package history

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	history := router.Group("/history")
	history.GET("", ListHistory)
	history.POST("/rate/:id", RateInteraction)
	history.GET("/export/csv", ExportHistoryCSV)
	history.POST("/delete", BulkDelete)
}
