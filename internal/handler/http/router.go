package http

import (
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/likesync/internal/handler/http/middleware"
	usecasecontract "github.com/mikiasgoitom/likesync/internal/usecase/contract"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	likeHandler *LikeHandler
}

// NewRouter wires the sync engine into the HTTP handlers.
func NewRouter(likeSync usecasecontract.ILikeSyncUseCase) *Router {
	return &Router{
		likeHandler: NewLikeHandler(likeSync),
	}
}

// SetupRoutes registers middleware and all API routes on the gin engine.
func (r *Router) SetupRoutes(router *gin.Engine) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	// rate limiter configuration
	lmt := tollbooth.NewLimiter(20, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})
	lmt.SetMessage("Too many requests, please try again later.")
	router.Use(middleware.RateLimiter(lmt))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	items := v1.Group("/items")
	{
		items.GET("/:itemID", r.likeHandler.GetStateHandler)
		items.GET("/:itemID/subscribe", r.likeHandler.SubscribeHandler)
		items.POST("/:itemID/toggle", r.likeHandler.ToggleHandler)
		items.POST("/:itemID/refresh", r.likeHandler.RefreshHandler)
		items.POST("/:itemID/clear-error", r.likeHandler.ClearErrorHandler)
		items.POST("/preload", r.likeHandler.PreloadHandler)
	}
}
