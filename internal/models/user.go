package models

import (
	"time"
)

type User struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	Username       string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash   string    `gorm:"size:255;not null" json:"-"`
	FirstName      string    `gorm:"size:100;not null" json:"first_name"`
	LastName       string    `gorm:"size:100;not null" json:"last_name"`
	UserType       string    `gorm:"size:20;not null;default:'user'" json:"user_type"`
	Bio            string    `gorm:"type:text" json:"bio"`
	Experience     string    `gorm:"size:100" json:"experience"`
	Speciality     string    `gorm:"size:100" json:"speciality"`
	IsVerified     bool      `gorm:"not null;default:false" json:"is_verified"`
	RecipesCount   int       `gorm:"not null;default:0" json:"recipes_count"`
	FollowersCount int       `gorm:"not null;default:0" json:"followers_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FullName returns "First Last", falling back to the username when both
// name fields are empty.
func (u *User) FullName() string {
	name := u.FirstName + " " + u.LastName
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.FirstName == "" || u.LastName == "" {
		return u.FirstName + u.LastName
	}
	return name
}

// Follow is a join row expressing that FollowerID follows FollowedID.
// Presence of the row is the state.
type Follow struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follower_followed" json:"follower_id"`
	FollowedID uint      `gorm:"not null;uniqueIndex:idx_follower_followed;index" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Follow) TableName() string {
	return "followers"
}
