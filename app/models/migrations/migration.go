package migrations

import (
	"github.com/kalash-creations/go-bangles/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Category{}, &models.Bangle{}, &models.BangleColorVariant{}, &models.Order{}, &models.OrderItem{})
}
