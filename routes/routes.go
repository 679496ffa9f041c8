package routes

import (
	"Veinticuatro/controllers"
	"Veinticuatro/middleware"
	"Veinticuatro/services/game"
	"Veinticuatro/services/redis"
	utils "Veinticuatro/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient, manager *game.RoomManager) {
	// utils global
	router.Use(utils.ErrorHandler())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.POST("/signup", controllers.SignUp(db))

	api.POST("/login", controllers.Login(db))

	api.GET("/users/:username", controllers.GetUserPublicInfo(db))

	api.GET("/users/:username/matches", controllers.GetUserMatches(db))

	api.GET("/rankings", controllers.GetRankings(db))

	api.GET("/rooms", controllers.GetActiveRooms(redisClient))

	api.GET("/rooms/live", controllers.GetLiveRooms(manager))

	authentication := api.Group("/auth")
	authentication.Use(middleware.AuthRequired)
	{
		authentication.DELETE("/logout", controllers.Logout)

		authentication.GET("/me", controllers.GetUserPrivateInfo(db))
	}
}
