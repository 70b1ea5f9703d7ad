package db

import (
	"github.com/oGrizz34/quant-canvas/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.Strategy{},
		&models.Trade{},
		&models.Signal{},
	)
}
