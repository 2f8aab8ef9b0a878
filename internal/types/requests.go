package types

import (
	"encoding/json"
)

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
	FirstName       string `json:"firstName" binding:"required"`
	LastName        string `json:"lastName" binding:"required"`
	UserType        string `json:"userType"`
	Bio             string `json:"bio"`
	Experience      string `json:"experience"`
	Speciality      string `json:"speciality"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest replaces the mutable profile fields as a whole.
type UpdateProfileRequest struct {
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName" binding:"required"`
	Bio        string `json:"bio"`
	Experience string `json:"experience"`
	Speciality string `json:"speciality"`
}

// PatchProfileRequest enumerates the optional fields a partial profile
// update may set. A nil field is left untouched.
type PatchProfileRequest struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Bio        *string `json:"bio"`
	Experience *string `json:"experience"`
	Speciality *string `json:"speciality"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (p *PatchProfileRequest) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Bio == nil &&
		p.Experience == nil && p.Speciality == nil
}

// IngredientInput is one entry of the ordered ingredient list submitted
// with a recipe write. Position in the slice determines order_index.
type IngredientInput struct {
	Name     string `json:"name" binding:"required"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
	Notes    string `json:"notes"`
}

// InstructionInput is one entry of the ordered instruction list. Position
// in the slice determines step_number.
type InstructionInput struct {
	Text     string `json:"text" binding:"required"`
	Duration *int   `json:"duration"`
	Tips     string `json:"tips"`
}

// RecipeInput carries the scalar fields and full child collections of a
// recipe create or full update.
type RecipeInput struct {
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Category      string             `json:"category"`
	Cuisine       string             `json:"cuisine"`
	Difficulty    string             `json:"difficulty"`
	CookTime      *int               `json:"cookTime"`
	PrepTime      *int               `json:"prepTime"`
	Servings      *int               `json:"servings"`
	Tags          string             `json:"tags"`
	Ingredients   []IngredientInput  `json:"ingredients"`
	Instructions  []InstructionInput `json:"instructions"`
	NutritionInfo json.RawMessage    `json:"nutritionInfo"`
}

// CommentRequest represents the request body for appending a comment
type CommentRequest struct {
	Comment string `json:"comment" binding:"required"`
	Rating  *int   `json:"rating"`
}
