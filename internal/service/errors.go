package service

import "errors"

// Sentinel errors returned by the service layer. Handlers map these to
// HTTP statuses in one place.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters long")
	ErrInvalidToken       = errors.New("invalid token")

	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrCommentRequired = errors.New("comment text is required")
	ErrSelfFollow      = errors.New("cannot follow yourself")
	ErrNotOwner        = errors.New("not the owner of this recipe")

	ErrMissingFields = errors.New("title, description and category are required")
)
