package user

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the current-user endpoint. It lives under /auth to
// match the login/logout surface the frontend already talks to.
func RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	auth.GET("/user", CurrentUser)
}
