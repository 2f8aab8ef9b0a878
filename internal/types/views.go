package types

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/models"
)

// UserView is the user object returned by auth and profile endpoints.
type UserView struct {
	ID             uint       `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email,omitempty"`
	Name           string     `json:"name"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Role           string     `json:"role"`
	UserType       string     `json:"userType"`
	Bio            string     `json:"bio,omitempty"`
	Experience     string     `json:"experience,omitempty"`
	Speciality     string     `json:"speciality,omitempty"`
	IsVerified     bool       `json:"isVerified"`
	RecipesCount   int        `json:"recipesCount"`
	FollowersCount int        `json:"followersCount"`
	IsOwnProfile   *bool      `json:"isOwnProfile,omitempty"`
	CreatedAt      *time.Time `json:"createdAt,omitempty"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}

// AuthorView is the nested author sub-object on recipes and comments.
type AuthorView struct {
	Username   string `json:"username"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	IsVerified bool   `json:"isVerified"`
	Bio        string `json:"bio,omitempty"`
}

// IngredientView is one formatted ingredient row.
type IngredientView struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
	Unit     string `json:"unit,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// InstructionView is one formatted instruction row.
type InstructionView struct {
	ID          uint   `json:"id"`
	StepNumber  int    `json:"stepNumber"`
	Instruction string `json:"instruction"`
	Duration    *int   `json:"duration,omitempty"`
	Tips        string `json:"tips,omitempty"`
}

// CommentView is one formatted comment with its author.
type CommentView struct {
	ID        uint       `json:"id"`
	Text      string     `json:"text"`
	Rating    *int       `json:"rating,omitempty"`
	Author    AuthorView `json:"author"`
	CreatedAt time.Time  `json:"createdAt"`
}

// RecipeView is the nested recipe object returned by recipe endpoints.
// Optional fields are omitted rather than reported as errors.
type RecipeView struct {
	ID            uint              `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Image         *string           `json:"image"`
	Author        AuthorView        `json:"author"`
	CookTime      *int              `json:"cookTime,omitempty"`
	PrepTime      *int              `json:"prepTime,omitempty"`
	Servings      *int              `json:"servings,omitempty"`
	Difficulty    string            `json:"difficulty"`
	Category      string            `json:"category"`
	Cuisine       string            `json:"cuisine,omitempty"`
	Tags          []string          `json:"tags"`
	NutritionInfo map[string]any    `json:"nutritionInfo"`
	Ingredients   []IngredientView  `json:"ingredients,omitempty"`
	Instructions  []InstructionView `json:"instructions,omitempty"`
	Likes         int               `json:"likes"`
	CommentsCount int               `json:"commentsCount"`
	Comments      []CommentView     `json:"comments,omitempty"`
	IsPublished   *bool             `json:"isPublished,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// Pagination is the metadata block on paginated list responses.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// NewPagination derives the full metadata block from page, limit and total.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// FormatUser shapes a user row into the response user object.
func FormatUser(u *models.User) UserView {
	return UserView{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Name:           u.FullName(),
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Role:           u.UserType,
		UserType:       u.UserType,
		Bio:            u.Bio,
		Experience:     u.Experience,
		Speciality:     u.Speciality,
		IsVerified:     u.IsVerified,
		RecipesCount:   u.RecipesCount,
		FollowersCount: u.FollowersCount,
	}
}

// FormatAuthor shapes a user row into the nested author sub-object.
func FormatAuthor(u *models.User) AuthorView {
	return AuthorView{
		Username:   u.Username,
		Name:       u.FullName(),
		Role:       u.UserType,
		IsVerified: u.IsVerified,
	}
}

// SplitTags converts the comma-joined tag column into a list. An empty
// column yields an empty list, not nil.
func SplitTags(tags string) []string {
	if tags == "" {
		return []string{}
	}
	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ParseNutrition decodes the stored nutrition JSON. Null, empty or
// malformed text is treated as absent.
func ParseNutrition(raw []byte) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

// ImageURL computes the absolute URL of a stored relative image path, or
// nil when the recipe has no image.
func ImageURL(baseURL, path string) *string {
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return &path
	}
	u := strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(path, "/")
	return &u
}

// FormatIngredients shapes ordered ingredient rows for a response.
func FormatIngredients(rows []models.Ingredient) []IngredientView {
	out := make([]IngredientView, len(rows))
	for i, ing := range rows {
		out[i] = IngredientView{
			ID:       ing.ID,
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
			Notes:    ing.Notes,
		}
	}
	return out
}

// FormatInstructions shapes ordered instruction rows for a response.
func FormatInstructions(rows []models.Instruction) []InstructionView {
	out := make([]InstructionView, len(rows))
	for i, inst := range rows {
		out[i] = InstructionView{
			ID:          inst.ID,
			StepNumber:  inst.StepNumber,
			Instruction: inst.Text,
			Duration:    inst.DurationMinutes,
			Tips:        inst.Tips,
		}
	}
	return out
}

// FormatComment shapes a comment row and its author for a response.
func FormatComment(c *models.Comment, author *models.User) CommentView {
	return CommentView{
		ID:        c.ID,
		Text:      c.Text,
		Rating:    c.Rating,
		Author:    FormatAuthor(author),
		CreatedAt: c.CreatedAt,
	}
}

// FormatRecipe shapes a recipe row plus its author into the nested view.
func FormatRecipe(r *models.Recipe, author *models.User, baseURL string) RecipeView {
	return RecipeView{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		Image:         ImageURL(baseURL, r.ImageURL),
		Author:        FormatAuthor(author),
		CookTime:      r.CookTime,
		PrepTime:      r.PrepTime,
		Servings:      r.Servings,
		Difficulty:    r.DifficultyLevel,
		Category:      r.Category,
		Cuisine:       r.Cuisine,
		Tags:          SplitTags(r.Tags),
		NutritionInfo: ParseNutrition(r.NutritionInfo),
		Likes:         r.LikesCount,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
