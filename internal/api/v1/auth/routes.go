package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/mortan11/app-prompts/internal/middleware"
)

func RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	auth.POST("/register", Register)
	auth.POST("/login", Login)
	auth.POST("/logout", middleware.AuthMiddleware(), Logout)
	auth.POST("/forgot-password", ForgotPassword)
	auth.GET("/reset-password", CheckResetToken)
	auth.POST("/reset-password", ResetPassword)
}
