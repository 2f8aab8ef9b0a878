package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/cache"
	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/models"
	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/types"
)

// RecipeWithAuthor pairs a recipe row with its author for list responses.
type RecipeWithAuthor struct {
	Recipe models.Recipe `json:"recipe"`
	Author models.User   `json:"author"`
}

// RecipePage is one page of a recipe listing.
type RecipePage struct {
	Recipes []RecipeWithAuthor `json:"recipes"`
	Total   int64              `json:"total"`
}

// CommentWithAuthor pairs a comment row with the user who wrote it.
type CommentWithAuthor struct {
	Comment models.Comment `json:"comment"`
	Author  models.User    `json:"author"`
}

// RecipeDetail carries everything the detail view renders.
type RecipeDetail struct {
	Recipe        models.Recipe        `json:"recipe"`
	Author        models.User          `json:"author"`
	Ingredients   []models.Ingredient  `json:"ingredients"`
	Instructions  []models.Instruction `json:"instructions"`
	CommentsCount int64                `json:"commentsCount"`
	Comments      []CommentWithAuthor  `json:"comments"`
}

type RecipeService struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewRecipeService(db *gorm.DB, c *cache.Cache) *RecipeService {
	return &RecipeService{db: db, cache: c}
}

// transact runs fn in a transaction. Read committed is requested
// explicitly on Postgres; other dialects use their default.
func (s *RecipeService) transact(ctx context.Context, fn func(tx *gorm.DB) error) error {
	db := s.db.WithContext(ctx)
	if s.db.Dialector.Name() == "postgres" {
		return db.Transaction(fn, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	}
	return db.Transaction(fn)
}

func validateRecipeInput(input *types.RecipeInput) error {
	if strings.TrimSpace(input.Title) == "" ||
		strings.TrimSpace(input.Description) == "" ||
		strings.TrimSpace(input.Category) == "" {
		return ErrMissingFields
	}
	return nil
}

func recipeFromInput(input *types.RecipeInput) models.Recipe {
	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = "Medium"
	}
	var nutrition datatypes.JSON
	if len(input.NutritionInfo) > 0 && json.Valid(input.NutritionInfo) {
		nutrition = datatypes.JSON(input.NutritionInfo)
	}
	return models.Recipe{
		Title:           strings.TrimSpace(input.Title),
		Description:     strings.TrimSpace(input.Description),
		Category:        strings.TrimSpace(input.Category),
		Cuisine:         strings.TrimSpace(input.Cuisine),
		DifficultyLevel: difficulty,
		CookTime:        input.CookTime,
		PrepTime:        input.PrepTime,
		Servings:        input.Servings,
		Tags:            strings.TrimSpace(input.Tags),
		NutritionInfo:   nutrition,
		IsPublished:     true,
	}
}

// insertChildren writes the ingredient and instruction rows with 1-based
// positions matching the request's order.
func insertChildren(tx *gorm.DB, recipeID uint, input *types.RecipeInput) error {
	if len(input.Ingredients) > 0 {
		ingredients := make([]models.Ingredient, 0, len(input.Ingredients))
		for i, ing := range input.Ingredients {
			name := strings.TrimSpace(ing.Name)
			if name == "" {
				continue
			}
			ingredients = append(ingredients, models.Ingredient{
				RecipeID:   recipeID,
				Name:       name,
				Quantity:   strings.TrimSpace(ing.Quantity),
				Unit:       strings.TrimSpace(ing.Unit),
				Notes:      strings.TrimSpace(ing.Notes),
				OrderIndex: i + 1,
			})
		}
		if len(ingredients) > 0 {
			if err := tx.Create(&ingredients).Error; err != nil {
				return err
			}
		}
	}

	if len(input.Instructions) > 0 {
		instructions := make([]models.Instruction, 0, len(input.Instructions))
		for i, inst := range input.Instructions {
			text := strings.TrimSpace(inst.Text)
			if text == "" {
				continue
			}
			instructions = append(instructions, models.Instruction{
				RecipeID:        recipeID,
				StepNumber:      i + 1,
				Text:            text,
				DurationMinutes: inst.Duration,
				Tips:            strings.TrimSpace(inst.Tips),
			})
		}
		if len(instructions) > 0 {
			if err := tx.Create(&instructions).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// Create inserts the recipe with its children and bumps the author's
// recipe counter, all in one transaction.
func (s *RecipeService) Create(ctx context.Context, userID uint, input *types.RecipeInput, imageURL string) (*models.Recipe, error) {
	if err := validateRecipeInput(input); err != nil {
		return nil, err
	}

	recipe := recipeFromInput(input)
	recipe.UserID = userID
	recipe.ImageURL = imageURL

	err := s.transact(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		if err := insertChildren(tx, recipe.ID, input); err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("recipes_count", gorm.Expr("recipes_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidateLists(ctx)
	return &recipe, nil
}

// Update replaces the recipe's scalar fields and rewrites its child rows.
// Only the owner may edit. A non-nil newImageURL swaps the stored image
// and the previous location is returned for cleanup after commit.
func (s *RecipeService) Update(ctx context.Context, userID, recipeID uint, input *types.RecipeInput, newImageURL *string) (*models.Recipe, string, error) {
	if err := validateRecipeInput(input); err != nil {
		return nil, "", err
	}

	var recipe models.Recipe
	var oldImage string
	err := s.transact(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&recipe, recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}
		if recipe.UserID != userID {
			return ErrNotOwner
		}

		next := recipeFromInput(input)
		recipe.Title = next.Title
		recipe.Description = next.Description
		recipe.Category = next.Category
		recipe.Cuisine = next.Cuisine
		recipe.DifficultyLevel = next.DifficultyLevel
		recipe.CookTime = next.CookTime
		recipe.PrepTime = next.PrepTime
		recipe.Servings = next.Servings
		recipe.Tags = next.Tags
		recipe.NutritionInfo = next.NutritionInfo
		if newImageURL != nil {
			oldImage = recipe.ImageURL
			recipe.ImageURL = *newImageURL
		}
		if err := tx.Save(&recipe).Error; err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Instruction{}).Error; err != nil {
			return err
		}
		return insertChildren(tx, recipe.ID, input)
	})
	if err != nil {
		return nil, "", err
	}

	s.invalidate(ctx, recipeID)
	return &recipe, oldImage, nil
}

// Delete removes the recipe with all dependent rows and decrements the
// author's counter. The stored image location is returned so the caller
// can remove the file after the transaction commits.
func (s *RecipeService) Delete(ctx context.Context, userID, recipeID uint) (string, error) {
	var imageURL string
	err := s.transact(ctx, func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}
		if recipe.UserID != userID {
			return ErrNotOwner
		}
		imageURL = recipe.ImageURL

		for _, dependent := range []interface{}{
			&models.Ingredient{}, &models.Instruction{},
			&models.Like{}, &models.Comment{}, &models.Save{},
		} {
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(dependent).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&recipe).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ? AND recipes_count > 0", userID).
			UpdateColumn("recipes_count", gorm.Expr("recipes_count - 1")).Error
	})
	if err != nil {
		return "", err
	}

	s.invalidate(ctx, recipeID)
	return imageURL, nil
}

// GetByID loads the full published detail view: recipe, author, ordered
// children, the comment total and the ten newest comments.
func (s *RecipeService) GetByID(ctx context.Context, recipeID uint) (*RecipeDetail, error) {
	key := fmt.Sprintf("recipe:%d", recipeID)
	var detail RecipeDetail
	if s.cache.Get(ctx, key, &detail) {
		return &detail, nil
	}

	db := s.db.WithContext(ctx)
	if err := db.Where("is_published = ?", true).First(&detail.Recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	if err := db.First(&detail.Author, detail.Recipe.UserID).Error; err != nil {
		return nil, err
	}
	if err := db.Where("recipe_id = ?", recipeID).Order("order_index").Find(&detail.Ingredients).Error; err != nil {
		return nil, err
	}
	if err := db.Where("recipe_id = ?", recipeID).Order("step_number").Find(&detail.Instructions).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Comment{}).Where("recipe_id = ?", recipeID).Count(&detail.CommentsCount).Error; err != nil {
		return nil, err
	}

	var comments []models.Comment
	if err := db.Where("recipe_id = ?", recipeID).
		Order("created_at DESC").Limit(10).Find(&comments).Error; err != nil {
		return nil, err
	}
	withAuthors, err := s.attachCommentAuthors(db, comments)
	if err != nil {
		return nil, err
	}
	detail.Comments = withAuthors

	s.cache.Set(ctx, key, &detail)
	return &detail, nil
}

// GetForEdit loads a recipe with its children for the owner's edit form.
// Unpublished recipes are visible here, unlike the public detail view.
func (s *RecipeService) GetForEdit(ctx context.Context, userID, recipeID uint) (*RecipeDetail, error) {
	db := s.db.WithContext(ctx)
	var detail RecipeDetail
	if err := db.First(&detail.Recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	if detail.Recipe.UserID != userID {
		return nil, ErrNotOwner
	}
	if err := db.First(&detail.Author, detail.Recipe.UserID).Error; err != nil {
		return nil, err
	}
	if err := db.Where("recipe_id = ?", recipeID).Order("order_index").Find(&detail.Ingredients).Error; err != nil {
		return nil, err
	}
	if err := db.Where("recipe_id = ?", recipeID).Order("step_number").Find(&detail.Instructions).Error; err != nil {
		return nil, err
	}
	return &detail, nil
}

// List returns one page of published recipes, newest first.
func (s *RecipeService) List(ctx context.Context, page, limit int) (*RecipePage, error) {
	key := fmt.Sprintf("recipes:list:%d:%d", page, limit)
	var cached RecipePage
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	db := s.db.WithContext(ctx)
	var total int64
	if err := db.Model(&models.Recipe{}).Where("is_published = ?", true).Count(&total).Error; err != nil {
		return nil, err
	}

	var recipes []models.Recipe
	if err := db.Where("is_published = ?", true).
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, err
	}

	result, err := s.attachAuthors(db, recipes, total)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, result)
	return result, nil
}

// ListByUser returns the given user's recipes, unpublished included.
func (s *RecipeService) ListByUser(ctx context.Context, userID uint, page, limit int) (*RecipePage, error) {
	db := s.db.WithContext(ctx)
	var total int64
	if err := db.Model(&models.Recipe{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, err
	}

	var recipes []models.Recipe
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return s.attachAuthors(db, recipes, total)
}

// ListSaved returns the user's saved recipes, most recently saved first.
func (s *RecipeService) ListSaved(ctx context.Context, userID uint, page, limit int) (*RecipePage, error) {
	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Save{}).
		Joins("JOIN recipes ON recipes.id = saved_recipes.recipe_id").
		Where("saved_recipes.user_id = ? AND recipes.is_published = ?", userID, true).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var recipes []models.Recipe
	if err := db.
		Select("recipes.*").
		Joins("JOIN saved_recipes ON saved_recipes.recipe_id = recipes.id").
		Where("saved_recipes.user_id = ? AND recipes.is_published = ?", userID, true).
		Order("saved_recipes.created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return s.attachAuthors(db, recipes, total)
}

func (s *RecipeService) attachAuthors(db *gorm.DB, recipes []models.Recipe, total int64) (*RecipePage, error) {
	page := &RecipePage{Recipes: make([]RecipeWithAuthor, 0, len(recipes)), Total: total}
	if len(recipes) == 0 {
		return page, nil
	}

	ids := make([]uint, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.UserID)
	}
	var authors []models.User
	if err := db.Where("id IN ?", ids).Find(&authors).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.User, len(authors))
	for _, a := range authors {
		byID[a.ID] = a
	}
	for _, r := range recipes {
		page.Recipes = append(page.Recipes, RecipeWithAuthor{Recipe: r, Author: byID[r.UserID]})
	}
	return page, nil
}

func (s *RecipeService) attachCommentAuthors(db *gorm.DB, comments []models.Comment) ([]CommentWithAuthor, error) {
	out := make([]CommentWithAuthor, 0, len(comments))
	if len(comments) == 0 {
		return out, nil
	}

	ids := make([]uint, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.UserID)
	}
	var authors []models.User
	if err := db.Where("id IN ?", ids).Find(&authors).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.User, len(authors))
	for _, a := range authors {
		byID[a.ID] = a
	}
	for _, c := range comments {
		out = append(out, CommentWithAuthor{Comment: c, Author: byID[c.UserID]})
	}
	return out, nil
}

func (s *RecipeService) invalidate(ctx context.Context, recipeID uint) {
	s.cache.Delete(ctx, fmt.Sprintf("recipe:%d", recipeID))
	s.invalidateLists(ctx)
}

func (s *RecipeService) invalidateLists(ctx context.Context) {
	s.cache.DeletePattern(ctx, "recipes:list:*")
}

// RemoveImage deletes a stored image outside any transaction. Failures
// are logged, never propagated to the API response.
func RemoveImage(ctx context.Context, store ImageStore, location string) {
	if store == nil || location == "" {
		return
	}
	if err := store.Remove(ctx, location); err != nil {
		log.Printf("failed to remove image %s: %v", location, err)
	}
}
