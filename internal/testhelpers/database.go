package testhelpers

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/database"
	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/models"
)

var dbSeq atomic.Int64

// SetupTestDatabase opens an isolated in-memory database with the full
// schema migrated. Each call gets its own database, so tests stay
// independent.
func SetupTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the in-memory database alive and shared
	// across the test's goroutines.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db), "failed to migrate test schema")
	return db
}

// CreateTestUser inserts a user with a real bcrypt hash for password123.
func CreateTestUser(t *testing.T, db *gorm.DB, username, email string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		FirstName:    "Test",
		LastName:     "User",
		UserType:     "user",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTestRecipe inserts a published recipe owned by userID.
func CreateTestRecipe(t *testing.T, db *gorm.DB, userID uint, title string) *models.Recipe {
	t.Helper()

	recipe := &models.Recipe{
		UserID:          userID,
		Title:           title,
		Description:     "A test recipe",
		Category:        "Main Course",
		DifficultyLevel: "Medium",
		IsPublished:     true,
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}
