package database

import (
	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every model. Parents are
// listed before their child tables so foreign keys resolve in order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Recipe{},
		&models.Ingredient{},
		&models.Instruction{},
		&models.Like{},
		&models.Save{},
		&models.Comment{},
	)
}
