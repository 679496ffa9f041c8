package main

import (
	"Veinticuatro/config"
	_ "Veinticuatro/config/swagger"
	"Veinticuatro/middleware"
	"Veinticuatro/routes"
	"Veinticuatro/services/game"
	"Veinticuatro/services/redis"
	"Veinticuatro/services/socket_io"
	socketio_types "Veinticuatro/services/socket_io/types"
	socketio_utils "Veinticuatro/services/socket_io/utils"
	"Veinticuatro/sync"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// @title Veinticuatro API
// @version 1.0
// @description Gin-Gonic server for the "Veinticuatro" duel game API
// @host localhost:8080
// @BasePath /
// @paths
func main() {
	godotenv.Load()
	log.Println("Setting up server...")

	if os.Getenv("PROD") == "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	gormDB, err := config.ConnectGORM()
	if err != nil {
		log.Fatalf("Error connecting to PostgreSQL: %v", err)
	}
	log.Println("GORM Connected")

	// Only migrate in development or during deployment
	if os.Getenv("MIGRATE_POSTGRES") == "true" {
		log.Println("Migrating PostgreSQL database...")
		if err := config.MigrateDatabase(gormDB); err != nil {
			log.Printf("Warning: Database migration failed: %v", err)
			// Continue execution even if migration fails
		} else {
			log.Println("Database migrated successfully")
		}
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("Error reading GORM PostgreSQL instance: %v", err)
	}
	defer sqlDB.Close()

	redisClient, err := config.ConnectRedis()
	if err != nil {
		log.Fatalf("Error connecting to Redis: %v", err)
	}
	log.Println("Connection to Redis successful")
	defer redis.CloseRedis(redisClient)

	r := gin.Default()

	middleware.SetUpMiddleware(r)

	// Game room registry broadcasting through the socket server, with the
	// stats layer persisting finished matches and feeding the badge service
	sioServer := socketio_types.NewSocketServer()
	roomManager := game.NewRoomManager(socketio_utils.NewRoomBroadcaster(sioServer))
	syncManager := sync.NewSyncManager(gormDB, redisClient)
	roomManager.SetOutcomeRecorder(syncManager)
	roomManager.SetBadgeHook(syncManager)

	routes.SetupRoutes(r, gormDB, redisClient, roomManager)

	(*socket_io.MySocketServer)(sioServer).Start(r, gormDB, redisClient, roomManager)

	// Configure port
	port := os.Getenv("PORT")
	if port == "" && os.Getenv("USE_HTTPS") == "true" {
		port = "443"
	} else if port == "" {
		port = "8080"
	}

	if os.Getenv("USE_HTTPS") == "true" {
		certFile := os.Getenv("TLS_CERT_FILE")
		keyFile := os.Getenv("TLS_KEY_FILE")

		if err := r.RunTLS(":"+port, certFile, keyFile); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	} else {
		if err := r.Run(":" + port); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}
}
