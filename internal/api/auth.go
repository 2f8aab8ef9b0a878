package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/middleware"
	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/service"
	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/types"
)

// AuthHandler serves registration, login and session lookup.
type AuthHandler struct {
	auth    *service.AuthService
	limiter *middleware.RateLimiter
}

func NewAuthHandler(auth *service.AuthService, limiter *middleware.RateLimiter) *AuthHandler {
	return &AuthHandler{auth: auth, limiter: limiter}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	if h.limiter != nil {
		auth.Use(h.limiter.RateLimitMiddleware())
	}
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/me", middleware.AuthMiddleware(h.auth), h.Me)
		auth.POST("/logout", middleware.AuthMiddleware(h.auth), h.Logout)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("register validation error: %v", err)
		badRequest(c, "All required fields must be provided")
		return
	}

	user, token, err := h.auth.Register(&req)
	if err != nil {
		fail(c, err, "Registration failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"token":   token,
		"user":    types.FormatUser(user),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Email and password are required")
		return
	}

	user, token, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		fail(c, err, "Login failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    types.FormatUser(user),
	})
}

// Me returns the account behind the presented token.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access token required"})
		return
	}

	user, err := h.auth.GetUserByID(userID)
	if err != nil {
		fail(c, err, "Failed to load user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    types.FormatUser(user),
	})
}

// Logout exists for client symmetry. Tokens are stateless, so the server
// has nothing to revoke.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}
