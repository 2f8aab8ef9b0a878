package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Adarsh8067/Recipe-Sharing-Platform/config"
	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/cache"
	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/middleware"
	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/service"
)

const cacheTTL = 5 * time.Minute

// SetupAPI wires services, middleware and handlers onto the router.
// redisClient and store may be nil; caching and rate limiting then turn
// into no-ops and images are kept in memory paths only.
func SetupAPI(router *gin.Engine, db *gorm.DB, redisClient *redis.Client, store service.ImageStore, cfg *config.Config) {
	var c *cache.Cache
	if redisClient != nil {
		c = cache.New(redisClient, cacheTTL)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	profileService := service.NewProfileService(db)
	recipeService := service.NewRecipeService(db, c)
	socialService := service.NewSocialService(db, c)

	var authLimiter, writeLimiter *middleware.RateLimiter
	if redisClient != nil {
		authLimiter = middleware.NewAuthRateLimiter(redisClient)
		writeLimiter = middleware.NewRecipeWriteRateLimiter(redisClient)
	}

	authHandler := NewAuthHandler(authService, authLimiter)
	profileHandler := NewProfileHandler(profileService, socialService, authService)
	recipeHandler := NewRecipeHandler(recipeService, socialService, authService, store, writeLimiter, cfg.BaseURL)

	router.GET("/api/health", HealthCheck)
	router.Static("/uploads/recipes", cfg.UploadDir)

	grp := router.Group("/api")
	{
		authHandler.RegisterRoutes(grp)
		profileHandler.RegisterRoutes(grp)
		recipeHandler.RegisterRoutes(grp)
	}
}

// HealthCheck reports service liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
