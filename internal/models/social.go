package models

import (
	"time"
)

// Like and Save are toggle relations: the row is inserted when the user
// toggles on and deleted when they toggle off.

type Like struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_recipe" json:"user_id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_like_user_recipe;index" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string {
	return "recipe_likes"
}

type Save struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_save_user_recipe" json:"user_id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_save_user_recipe;index" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Save) TableName() string {
	return "saved_recipes"
}

// Comment is append-only: no update or delete endpoints exist.
type Comment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	RecipeID  uint      `gorm:"not null;index" json:"recipe_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Rating    *int      `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

func (Comment) TableName() string {
	return "recipe_comments"
}
