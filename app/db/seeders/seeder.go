package seeders

import (
	"github.com/kalash-creations/go-bangles/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func categories() []models.Category {
	return []models.Category{
		{ID: "kundan", Name: "Kundan Bangles", Description: "Traditional kundan work with uncut stones."},
		{ID: "glass", Name: "Glass Bangles", Description: "Classic glass bangles in festive colors."},
		{ID: "oxidised", Name: "Oxidised Bangles", Description: "Antique-finish silver-tone bangles."},
	}
}

func bangles() []models.Bangle {
	return []models.Bangle{
		{
			ID:             "kundan001",
			Name:           "Royal Kundan Set",
			CategoryID:     "kundan",
			Price:          decimal.NewFromInt(2999),
			Description:    "A bridal set of six kundan bangles.",
			AvailableSizes: models.SizeList{"2.4", "2.6", "2.8"},
			Material:       "Brass, kundan stones",
			ColorVariants: []models.BangleColorVariant{
				{ID: "kundan001-red", BangleID: "kundan001", ColorName: "Ruby Red", HexColor: "#9b111e", Position: 0},
				{ID: "kundan001-green", BangleID: "kundan001", ColorName: "Emerald Green", HexColor: "#046307", Position: 1},
			},
		},
		{
			ID:             "glass001",
			Name:           "Festive Glass Dozen",
			CategoryID:     "glass",
			Price:          decimal.NewFromInt(499),
			Description:    "Twelve slim glass bangles.",
			AvailableSizes: models.SizeList{"2.2", "2.4", "2.6"},
			Material:       "Glass",
			ColorVariants: []models.BangleColorVariant{
				{ID: "glass001-blue", BangleID: "glass001", ColorName: "Sapphire Blue", HexColor: "#0f52ba", Position: 0},
			},
		},
	}
}

// DBSeed is idempotent: rows already present are left alone.
func DBSeed(db *gorm.DB) error {
	for _, category := range categories() {
		if err := db.FirstOrCreate(&category, "id = ?", category.ID).Error; err != nil {
			return err
		}
	}
	for _, bangle := range bangles() {
		if err := db.FirstOrCreate(&bangle, "id = ?", bangle.ID).Error; err != nil {
			return err
		}
	}
	return nil
}
