package routes

import (
	"StoryPals/controllers"
	"StoryPals/middleware"
	"StoryPals/services/redis"
	utils "StoryPals/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "StoryPals/docs"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient) {
	router.Use(utils.ErrorHandler())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.POST("/signup", controllers.SignUp(db))

	api.POST("/login", controllers.Login(db))

	authentication := api.Group("/auth")
	authentication.Use(middleware.AuthRequired)
	{
		authentication.DELETE("/logout", controllers.Logout)

		authentication.GET("/me", controllers.GetUserPrivateInfo(db))

		// Room coordination dispatch: one endpoint, action-routed
		authentication.POST("/rooms", controllers.ManageGameRooms(db, redisClient))

		authentication.POST("/profiles", controllers.ManageProfiles(db))

		authentication.POST("/friends", controllers.ManageFriends(db))
	}
}
