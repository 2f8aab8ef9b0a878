package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Adarsh8067/Recipe-Sharing-Platform/config"
	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/middleware"
	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/service"
)

// statusFor maps service errors to HTTP statuses. Unknown errors are
// internal.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrCommentRequired),
		errors.Is(err, service.ErrSelfFollow):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, service.ErrRecipeNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// messageFor picks the client-facing message for a service error.
var messages = map[error]string{
	service.ErrInvalidCredentials: "Invalid email or password",
	service.ErrEmailTaken:         "User with this email already exists",
	service.ErrUsernameTaken:      "Username is already taken",
	service.ErrPasswordMismatch:   "Passwords do not match",
	service.ErrPasswordTooShort:   "Password must be at least 6 characters long",
	service.ErrInvalidToken:       "Invalid or expired token",
	service.ErrRecipeNotFound:     "Recipe not found",
	service.ErrUserNotFound:       "User not found",
	service.ErrCommentRequired:    "Comment text is required",
	service.ErrSelfFollow:         "Cannot follow yourself",
	service.ErrMissingFields:      "Title, description and category are required",
}

func messageFor(err error, fallback string) string {
	for sentinel, msg := range messages {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	return fallback
}

// fail writes the error envelope. Internal error details are only echoed
// outside production.
func fail(c *gin.Context, err error, fallback string) {
	status := statusFor(err)
	body := gin.H{
		"success": false,
		"message": messageFor(err, fallback),
	}
	if status == http.StatusInternalServerError && !config.IsProduction() {
		body["error"] = err.Error()
	}
	c.JSON(status, body)
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
}

func forbidden(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, gin.H{"success": false, "message": message})
}

// optionalUserID resolves the caller from a Bearer token when one is
// presented. Public endpoints use it to personalize responses without
// requiring auth.
func optionalUserID(c *gin.Context, validator middleware.TokenValidator) (uint, bool) {
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}
	claims, err := validator.ValidateToken(parts[1])
	if err != nil {
		return 0, false
	}
	return claims.UserID, true
}
