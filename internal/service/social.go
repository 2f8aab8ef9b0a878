package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/cache"
	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/models"
	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/types"
)

// LikeState is the outcome of a like toggle.
type LikeState struct {
	IsLiked    bool `json:"isLiked"`
	LikesCount int  `json:"likesCount"`
}

// SaveState is the outcome of a save toggle.
type SaveState struct {
	IsSaved    bool `json:"isSaved"`
	SavesCount int  `json:"savesCount"`
}

// FollowState is the outcome of a follow toggle.
type FollowState struct {
	IsFollowing    bool `json:"isFollowing"`
	FollowersCount int  `json:"followersCount"`
}

type SocialService struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewSocialService(db *gorm.DB, c *cache.Cache) *SocialService {
	return &SocialService{db: db, cache: c}
}

func (s *SocialService) transact(ctx context.Context, fn func(tx *gorm.DB) error) error {
	db := s.db.WithContext(ctx)
	if s.db.Dialector.Name() == "postgres" {
		return db.Transaction(fn, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	}
	return db.Transaction(fn)
}

// ToggleLike flips the user's like on a recipe and keeps the stored
// counter in lockstep. The returned count is re-read from the row after
// the update so concurrent toggles never report a drifted value.
func (s *SocialService) ToggleLike(ctx context.Context, userID, recipeID uint) (*LikeState, error) {
	state := &LikeState{}
	err := s.transact(ctx, func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Where("is_published = ?", true).First(&recipe, recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}

		var like models.Like
		err := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).First(&like).Error
		switch {
		case err == nil:
			if err := tx.Delete(&like).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Recipe{}).Where("id = ? AND likes_count > 0", recipeID).
				UpdateColumn("likes_count", gorm.Expr("likes_count - 1")).Error; err != nil {
				return err
			}
			state.IsLiked = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.Like{UserID: userID, RecipeID: recipeID}).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Recipe{}).Where("id = ?", recipeID).
				UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error; err != nil {
				return err
			}
			state.IsLiked = true
		default:
			return err
		}

		if err := tx.First(&recipe, recipeID).Error; err != nil {
			return err
		}
		state.LikesCount = recipe.LikesCount
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.cache.Delete(ctx, fmt.Sprintf("recipe:%d", recipeID))
	return state, nil
}

// ToggleSave flips the user's bookmark on a recipe.
func (s *SocialService) ToggleSave(ctx context.Context, userID, recipeID uint) (*SaveState, error) {
	state := &SaveState{}
	err := s.transact(ctx, func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Where("is_published = ?", true).First(&recipe, recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}

		var saved models.Save
		err := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).First(&saved).Error
		switch {
		case err == nil:
			if err := tx.Delete(&saved).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Recipe{}).Where("id = ? AND saves_count > 0", recipeID).
				UpdateColumn("saves_count", gorm.Expr("saves_count - 1")).Error; err != nil {
				return err
			}
			state.IsSaved = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.Save{UserID: userID, RecipeID: recipeID}).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Recipe{}).Where("id = ?", recipeID).
				UpdateColumn("saves_count", gorm.Expr("saves_count + 1")).Error; err != nil {
				return err
			}
			state.IsSaved = true
		default:
			return err
		}

		if err := tx.First(&recipe, recipeID).Error; err != nil {
			return err
		}
		state.SavesCount = recipe.SavesCount
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.cache.Delete(ctx, fmt.Sprintf("recipe:%d", recipeID))
	return state, nil
}

// ToggleFollow flips whether follower follows followed. Following
// yourself is rejected before touching storage.
func (s *SocialService) ToggleFollow(ctx context.Context, followerID, followedID uint) (*FollowState, error) {
	if followerID == followedID {
		return nil, ErrSelfFollow
	}

	state := &FollowState{}
	err := s.transact(ctx, func(tx *gorm.DB) error {
		var target models.User
		if err := tx.First(&target, followedID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var follow models.Follow
		err := tx.Where("follower_id = ? AND followed_id = ?", followerID, followedID).First(&follow).Error
		switch {
		case err == nil:
			if err := tx.Delete(&follow).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.User{}).Where("id = ? AND followers_count > 0", followedID).
				UpdateColumn("followers_count", gorm.Expr("followers_count - 1")).Error; err != nil {
				return err
			}
			state.IsFollowing = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.Follow{FollowerID: followerID, FollowedID: followedID}).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.User{}).Where("id = ?", followedID).
				UpdateColumn("followers_count", gorm.Expr("followers_count + 1")).Error; err != nil {
				return err
			}
			state.IsFollowing = true
		default:
			return err
		}

		if err := tx.First(&target, followedID).Error; err != nil {
			return err
		}
		state.FollowersCount = target.FollowersCount
		return nil
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// AddComment appends a comment to a published recipe and returns it with
// its author for immediate rendering.
func (s *SocialService) AddComment(ctx context.Context, userID, recipeID uint, req *types.CommentRequest) (*CommentWithAuthor, error) {
	if strings.TrimSpace(req.Comment) == "" {
		return nil, ErrCommentRequired
	}

	db := s.db.WithContext(ctx)
	var recipe models.Recipe
	if err := db.Where("is_published = ?", true).First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	comment := models.Comment{
		RecipeID: recipeID,
		UserID:   userID,
		Text:     strings.TrimSpace(req.Comment),
		Rating:   req.Rating,
	}
	if err := db.Create(&comment).Error; err != nil {
		return nil, err
	}

	var author models.User
	if err := db.First(&author, userID).Error; err != nil {
		return nil, err
	}

	s.cache.Delete(ctx, fmt.Sprintf("recipe:%d", recipeID))
	return &CommentWithAuthor{Comment: comment, Author: author}, nil
}

// IsLiked reports whether the user has liked the recipe.
func (s *SocialService) IsLiked(ctx context.Context, userID, recipeID uint) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).Count(&n).Error
	return n > 0, err
}

// IsSaved reports whether the user has saved the recipe.
func (s *SocialService) IsSaved(ctx context.Context, userID, recipeID uint) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Save{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).Count(&n).Error
	return n > 0, err
}

// IsFollowing reports whether follower currently follows followed.
func (s *SocialService) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).Count(&n).Error
	return n > 0, err
}
