package models

import (
	"time"

	"gorm.io/datatypes"
)

type Recipe struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	Title           string         `gorm:"size:255;not null" json:"title"`
	Description     string         `gorm:"type:text;not null" json:"description"`
	Category        string         `gorm:"size:50;not null" json:"category"`
	Cuisine         string         `gorm:"size:50" json:"cuisine"`
	DifficultyLevel string         `gorm:"size:20;not null;default:'Medium'" json:"difficulty_level"`
	CookTime        *int           `json:"cook_time"`
	PrepTime        *int           `json:"prep_time"`
	Servings        *int           `json:"servings"`
	Tags            string         `gorm:"size:500" json:"tags"`
	ImageURL        string         `gorm:"size:255" json:"image_url"`
	NutritionInfo   datatypes.JSON `gorm:"type:jsonb" json:"nutrition_info"`
	IsPublished     bool           `gorm:"not null;default:true" json:"is_published"`
	LikesCount      int            `gorm:"not null;default:0" json:"likes_count"`
	SavesCount      int            `gorm:"not null;default:0" json:"saves_count"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// Ingredient is an ordered child row of a recipe. OrderIndex is 1-based and
// contiguous: the full set is replaced on every write, never patched.
type Ingredient struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	RecipeID   uint   `gorm:"not null;index" json:"recipe_id"`
	Name       string `gorm:"size:255;not null" json:"name"`
	Quantity   string `gorm:"size:50" json:"quantity"`
	Unit       string `gorm:"size:50" json:"unit"`
	Notes      string `gorm:"size:255" json:"notes"`
	OrderIndex int    `gorm:"not null" json:"order_index"`
}

func (Ingredient) TableName() string {
	return "recipe_ingredients"
}

// Instruction is an ordered child row of a recipe, keyed by StepNumber.
type Instruction struct {
	ID              uint   `gorm:"primarykey" json:"id"`
	RecipeID        uint   `gorm:"not null;index" json:"recipe_id"`
	StepNumber      int    `gorm:"not null" json:"step_number"`
	Text            string `gorm:"type:text;not null" json:"text"`
	DurationMinutes *int   `json:"duration_minutes"`
	Tips            string `gorm:"size:500" json:"tips"`
}

func (Instruction) TableName() string {
	return "recipe_instructions"
}
