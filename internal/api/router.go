package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/mortan11/app-prompts/config"
	_ "github.com/mortan11/app-prompts/docs"
	"github.com/mortan11/app-prompts/internal/api/v1/auth"
	"github.com/mortan11/app-prompts/internal/api/v1/history"
	"github.com/mortan11/app-prompts/internal/api/v1/prompt"
	userRoutes "github.com/mortan11/app-prompts/internal/api/v1/user"
	"github.com/mortan11/app-prompts/internal/database"
	"github.com/mortan11/app-prompts/internal/middleware"
	"github.com/mortan11/app-prompts/internal/services"
)

func NewRouter() (*gin.Engine, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	_, err = database.Connect(cfg.DSN())
	if err != nil {
		return nil, err
	}

	err = database.ConnectRedis(cfg)
	if err != nil {
		return nil, err
	}

	services.Gateway = services.NewOpenAIGateway(cfg)

	router := gin.New()
	router.Use(middleware.Logger(), gin.Recovery())

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1
	v1 := router.Group("/api/v1")
	{
		auth.RegisterRoutes(v1)

		authorized := v1.Group("/")
		authorized.Use(middleware.AuthMiddleware())
		{
			userRoutes.RegisterRoutes(authorized)
			prompt.RegisterRoutes(authorized)
			history.RegisterRoutes(authorized)
		}
	}

	return router, nil
}
