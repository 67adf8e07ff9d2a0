package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	handlerHttp "github.com/mikiasgoitom/likesync/internal/handler/http"
	"github.com/mikiasgoitom/likesync/internal/infrastructure/api"
	"github.com/mikiasgoitom/likesync/internal/infrastructure/auth"
	"github.com/mikiasgoitom/likesync/internal/infrastructure/config"
	"github.com/mikiasgoitom/likesync/internal/infrastructure/gate"
	"github.com/mikiasgoitom/likesync/internal/infrastructure/logger"
	"github.com/mikiasgoitom/likesync/internal/infrastructure/store"
	"github.com/mikiasgoitom/likesync/internal/infrastructure/uuidgen"
	"github.com/mikiasgoitom/likesync/internal/infrastructure/validator"
	"github.com/mikiasgoitom/likesync/internal/usecase"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	appConfig := config.NewConfig()
	appLogger := logger.NewStdLogger()

	// Register custom validators
	validator.RegisterCustomValidators()

	// Initialize Gin router
	router := gin.Default()

	// Dependency Injection: Infrastructure
	tokenProvider := auth.NewStaticTokenProvider(appConfig.GetAccessToken())
	uuidGenerator := uuidgen.NewGenerator()
	likeAPI := api.NewLikeClient(appConfig.GetAPIBaseURL(), appConfig.GetRequestTimeout(), tokenProvider, uuidGenerator)
	likeStore := store.NewLikeStateStore()
	requestGate := gate.NewRequestGate(appConfig.GetMinToggleInterval())

	// Dependency Injection: Usecases
	executor := usecase.NewMutationExecutor(likeAPI, appLogger, appConfig.GetMaxAttempts(), appConfig.GetBaseBackoff())
	resolver := usecase.NewConflictResolver(likeStore, likeAPI)
	likeSync := usecase.NewLikeSyncUsecase(likeStore, requestGate, executor, resolver, appLogger)

	// Setup API routes
	appRouter := handlerHttp.NewRouter(likeSync)
	appRouter.SetupRoutes(router)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Like sync daemon running on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
