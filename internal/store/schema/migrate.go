package schema

import "gorm.io/gorm"

// AutoMigrate creates or updates the tables for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Creator{},
		&Tip{},
	)
}
