package database

import (
	"fmt"

	"github.com/Expenses-tracker-app/backend/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
// Users and tags come first so the transaction tables can reference them.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Expense{},
		&models.Income{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
