package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/middleware"
	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/models"
	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/service"
	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/types"
)

// ProfileHandler serves profile reads and updates plus follow toggles.
type ProfileHandler struct {
	profiles *service.ProfileService
	social   *service.SocialService
	auth     *service.AuthService
}

func NewProfileHandler(profiles *service.ProfileService, social *service.SocialService, auth *service.AuthService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, social: social, auth: auth}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		authed := users.Group("")
		authed.Use(middleware.AuthMiddleware(h.auth))
		{
			authed.GET("/profile", h.GetOwnProfile)
			authed.PUT("/profile", h.UpdateProfile)
			authed.PATCH("/profile", h.PatchProfile)
			authed.POST("/:id/follow", h.ToggleFollow)
		}

		users.GET("/profile/:userId", h.GetProfileByID)
		users.GET("/:username", h.GetProfileByUsername)
	}
}

func (h *ProfileHandler) GetOwnProfile(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	user, err := h.profiles.GetByID(c.Request.Context(), userID)
	if err != nil {
		fail(c, err, "Failed to load profile")
		return
	}

	view := types.FormatUser(user)
	view.CreatedAt = &user.CreatedAt
	view.UpdatedAt = &user.UpdatedAt
	c.JSON(http.StatusOK, gin.H{"success": true, "user": view})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "First name and last name are required")
		return
	}

	user, err := h.profiles.Update(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"user":    types.FormatUser(user),
	})
}

func (h *ProfileHandler) PatchProfile(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req types.PatchProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if req.IsEmpty() {
		badRequest(c, "No fields provided to update")
		return
	}

	user, err := h.profiles.Patch(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"user":    types.FormatUser(user),
	})
}

func (h *ProfileHandler) GetProfileByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		badRequest(c, "Invalid user id")
		return
	}

	user, err := h.profiles.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		fail(c, err, "Failed to load profile")
		return
	}
	h.respondPublicProfile(c, user)
}

func (h *ProfileHandler) GetProfileByUsername(c *gin.Context) {
	user, err := h.profiles.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		fail(c, err, "Failed to load profile")
		return
	}
	h.respondPublicProfile(c, user)
}

// respondPublicProfile hides the email and, when the caller is known,
// annotates ownership and follow state.
func (h *ProfileHandler) respondPublicProfile(c *gin.Context, user *models.User) {
	view := types.FormatUser(user)
	view.Email = ""
	view.CreatedAt = &user.CreatedAt

	body := gin.H{"success": true, "user": view}
	if callerID, ok := optionalUserID(c, h.auth); ok {
		isOwn := callerID == user.ID
		view.IsOwnProfile = &isOwn
		body["user"] = view
		if !isOwn {
			if following, err := h.social.IsFollowing(c.Request.Context(), callerID, user.ID); err == nil {
				body["isFollowing"] = following
			}
		}
	}
	c.JSON(http.StatusOK, body)
}

func (h *ProfileHandler) ToggleFollow(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "Invalid user id")
		return
	}

	state, err := h.social.ToggleFollow(c.Request.Context(), userID, uint(id))
	if err != nil {
		fail(c, err, "Failed to toggle follow")
		return
	}

	message := "Unfollowed successfully"
	if state.IsFollowing {
		message = "Followed successfully"
	}
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        message,
		"isFollowing":    state.IsFollowing,
		"followersCount": state.FollowersCount,
	})
}
