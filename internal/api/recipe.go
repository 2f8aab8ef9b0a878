package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/middleware"
	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/service"
	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/types"
)

// maxImageSize caps uploaded recipe images at 5 MB.
const maxImageSize = 5 << 20

// RecipeHandler serves recipe CRUD, listings and social actions.
type RecipeHandler struct {
	recipes *service.RecipeService
	social  *service.SocialService
	auth    *service.AuthService
	images  service.ImageStore
	limiter *middleware.RateLimiter
	baseURL string
}

func NewRecipeHandler(recipes *service.RecipeService, social *service.SocialService, auth *service.AuthService, images service.ImageStore, limiter *middleware.RateLimiter, baseURL string) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		social:  social,
		auth:    auth,
		images:  images,
		limiter: limiter,
		baseURL: baseURL,
	}
}

func (h *RecipeHandler) RegisterRoutes(r *gin.RouterGroup) {
	recipes := r.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)

		authed := recipes.Group("")
		authed.Use(middleware.AuthMiddleware(h.auth))
		{
			writes := authed.Group("")
			if h.limiter != nil {
				writes.Use(h.limiter.RateLimitMiddleware())
			}
			writes.POST("", h.CreateRecipe)
			writes.PUT("/:id", h.UpdateRecipe)
			writes.DELETE("/:id", h.DeleteRecipe)

			authed.GET("/:id/edit", h.GetRecipeForEdit)
			authed.GET("/user/my-recipes", h.ListMyRecipes)
			authed.GET("/saved", h.ListSavedRecipes)
			authed.POST("/:id/toggle-like", h.ToggleLike)
			authed.POST("/:id/toggle-save", h.ToggleSave)
			authed.POST("/:id/comments", h.AddComment)
		}
	}
}

func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func recipeIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "Invalid recipe id")
		return 0, false
	}
	return uint(id), true
}

// bindRecipeInput accepts either a JSON body or a multipart form whose
// "data" field holds the recipe JSON and whose optional "image" field
// holds the picture.
func (h *RecipeHandler) bindRecipeInput(c *gin.Context) (*types.RecipeInput, []byte, string, string, bool) {
	contentType := c.GetHeader("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		var input types.RecipeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, "Invalid request body")
			return nil, nil, "", "", false
		}
		return &input, nil, "", "", true
	}

	raw := c.PostForm("data")
	if raw == "" {
		badRequest(c, "Recipe data is required")
		return nil, nil, "", "", false
	}
	var input types.RecipeInput
	if err := json.Unmarshal([]byte(raw), &input); err != nil {
		badRequest(c, "Invalid recipe data")
		return nil, nil, "", "", false
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return &input, nil, "", "", true
	}
	if fileHeader.Size > maxImageSize {
		badRequest(c, "Image must be smaller than 5MB")
		return nil, nil, "", "", false
	}
	file, err := fileHeader.Open()
	if err != nil {
		fail(c, err, "Failed to read image")
		return nil, nil, "", "", false
	}
	defer func() { _ = file.Close() }()
	data, err := io.ReadAll(file)
	if err != nil {
		fail(c, err, "Failed to read image")
		return nil, nil, "", "", false
	}

	// Only image uploads are accepted. The declared type is sniffed when
	// the client sends none, since the stored file is served statically.
	imageType := fileHeader.Header.Get("Content-Type")
	if imageType == "" || imageType == "application/octet-stream" {
		imageType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(imageType, "image/") {
		badRequest(c, "Only image files are allowed")
		return nil, nil, "", "", false
	}
	return &input, data, fileHeader.Filename, imageType, true
}

func (h *RecipeHandler) storeImage(c *gin.Context, data []byte, name, contentType string) (string, bool) {
	if len(data) == 0 || h.images == nil {
		return "", true
	}
	location, err := h.images.Save(c.Request.Context(), data, name, contentType)
	if err != nil {
		fail(c, err, "Failed to store image")
		return "", false
	}
	return location, true
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	page, limit := parsePagination(c)

	result, err := h.recipes.List(c.Request.Context(), page, limit)
	if err != nil {
		fail(c, err, "Failed to load recipes")
		return
	}
	h.respondRecipePage(c, result, page, limit, false)
}

func (h *RecipeHandler) ListMyRecipes(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	page, limit := parsePagination(c)

	result, err := h.recipes.ListByUser(c.Request.Context(), userID, page, limit)
	if err != nil {
		fail(c, err, "Failed to load recipes")
		return
	}
	h.respondRecipePage(c, result, page, limit, true)
}

func (h *RecipeHandler) ListSavedRecipes(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	page, limit := parsePagination(c)

	result, err := h.recipes.ListSaved(c.Request.Context(), userID, page, limit)
	if err != nil {
		fail(c, err, "Failed to load saved recipes")
		return
	}
	h.respondRecipePage(c, result, page, limit, false)
}

// respondRecipePage writes a page of recipe summaries. Publication state
// is only exposed on the owner's own listing.
func (h *RecipeHandler) respondRecipePage(c *gin.Context, result *service.RecipePage, page, limit int, showPublished bool) {
	views := make([]types.RecipeView, 0, len(result.Recipes))
	for i := range result.Recipes {
		entry := &result.Recipes[i]
		view := types.FormatRecipe(&entry.Recipe, &entry.Author, h.baseURL)
		if showPublished {
			published := entry.Recipe.IsPublished
			view.IsPublished = &published
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"recipes":    views,
		"pagination": types.NewPagination(page, limit, result.Total),
	})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	input, imageData, imageName, imageType, ok := h.bindRecipeInput(c)
	if !ok {
		return
	}
	location, ok := h.storeImage(c, imageData, imageName, imageType)
	if !ok {
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), userID, input, location)
	if err != nil {
		service.RemoveImage(c.Request.Context(), h.images, location)
		fail(c, err, "Failed to create recipe")
		return
	}

	author, err := h.auth.GetUserByID(userID)
	if err != nil {
		fail(c, err, "Failed to create recipe")
		return
	}

	log.Printf("recipe %d created by user %d", recipe.ID, userID)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Recipe created successfully",
		"recipe":  types.FormatRecipe(recipe, author, h.baseURL),
	})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := recipeIDParam(c)
	if !ok {
		return
	}

	detail, err := h.recipes.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err, "Failed to load recipe")
		return
	}

	view := types.FormatRecipe(&detail.Recipe, &detail.Author, h.baseURL)
	view.Author.Bio = detail.Author.Bio
	view.Ingredients = types.FormatIngredients(detail.Ingredients)
	view.Instructions = types.FormatInstructions(detail.Instructions)
	view.CommentsCount = int(detail.CommentsCount)
	view.Comments = make([]types.CommentView, 0, len(detail.Comments))
	for i := range detail.Comments {
		entry := &detail.Comments[i]
		view.Comments = append(view.Comments, types.FormatComment(&entry.Comment, &entry.Author))
	}

	body := gin.H{"success": true, "recipe": view}
	if callerID, ok := optionalUserID(c, h.auth); ok {
		if liked, err := h.social.IsLiked(c.Request.Context(), callerID, id); err == nil {
			body["isLiked"] = liked
		}
		if saved, err := h.social.IsSaved(c.Request.Context(), callerID, id); err == nil {
			body["isSaved"] = saved
		}
	}
	c.JSON(http.StatusOK, body)
}

// GetRecipeForEdit returns the raw editable fields, unpublished included,
// to the recipe's owner.
func (h *RecipeHandler) GetRecipeForEdit(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, ok := recipeIDParam(c)
	if !ok {
		return
	}

	detail, err := h.recipes.GetForEdit(c.Request.Context(), userID, id)
	if err != nil {
		if err == service.ErrNotOwner {
			forbidden(c, "Unauthorized to edit this recipe")
			return
		}
		fail(c, err, "Failed to load recipe")
		return
	}

	view := types.FormatRecipe(&detail.Recipe, &detail.Author, h.baseURL)
	view.Ingredients = types.FormatIngredients(detail.Ingredients)
	view.Instructions = types.FormatInstructions(detail.Instructions)
	published := detail.Recipe.IsPublished
	view.IsPublished = &published

	c.JSON(http.StatusOK, gin.H{"success": true, "recipe": view})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, ok := recipeIDParam(c)
	if !ok {
		return
	}

	input, imageData, imageName, imageType, ok := h.bindRecipeInput(c)
	if !ok {
		return
	}

	var newImage *string
	if len(imageData) > 0 {
		location, ok := h.storeImage(c, imageData, imageName, imageType)
		if !ok {
			return
		}
		newImage = &location
	}

	recipe, oldImage, err := h.recipes.Update(c.Request.Context(), userID, id, input, newImage)
	if err != nil {
		if newImage != nil {
			service.RemoveImage(c.Request.Context(), h.images, *newImage)
		}
		if err == service.ErrNotOwner {
			forbidden(c, "Unauthorized to edit this recipe")
			return
		}
		fail(c, err, "Failed to update recipe")
		return
	}
	service.RemoveImage(c.Request.Context(), h.images, oldImage)

	author, err := h.auth.GetUserByID(userID)
	if err != nil {
		fail(c, err, "Failed to update recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Recipe updated successfully",
		"recipe":  types.FormatRecipe(recipe, author, h.baseURL),
	})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, ok := recipeIDParam(c)
	if !ok {
		return
	}

	imageURL, err := h.recipes.Delete(c.Request.Context(), userID, id)
	if err != nil {
		if err == service.ErrNotOwner {
			forbidden(c, "Unauthorized to delete this recipe")
			return
		}
		fail(c, err, "Failed to delete recipe")
		return
	}
	service.RemoveImage(c.Request.Context(), h.images, imageURL)

	log.Printf("recipe %d deleted by user %d", id, userID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Recipe deleted successfully",
	})
}

func (h *RecipeHandler) ToggleLike(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, ok := recipeIDParam(c)
	if !ok {
		return
	}

	state, err := h.social.ToggleLike(c.Request.Context(), userID, id)
	if err != nil {
		fail(c, err, "Failed to toggle like")
		return
	}

	message := "Recipe unliked"
	if state.IsLiked {
		message = "Recipe liked"
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    message,
		"isLiked":    state.IsLiked,
		"likesCount": state.LikesCount,
	})
}

func (h *RecipeHandler) ToggleSave(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, ok := recipeIDParam(c)
	if !ok {
		return
	}

	state, err := h.social.ToggleSave(c.Request.Context(), userID, id)
	if err != nil {
		fail(c, err, "Failed to toggle save")
		return
	}

	message := "Recipe removed from saved"
	if state.IsSaved {
		message = "Recipe saved"
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"isSaved": state.IsSaved,
	})
}

func (h *RecipeHandler) AddComment(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, ok := recipeIDParam(c)
	if !ok {
		return
	}

	var req types.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Comment text is required")
		return
	}

	result, err := h.social.AddComment(c.Request.Context(), userID, id, &req)
	if err != nil {
		fail(c, err, "Failed to add comment")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Comment added successfully",
		"comment": types.FormatComment(&result.Comment, &result.Author),
	})
}
