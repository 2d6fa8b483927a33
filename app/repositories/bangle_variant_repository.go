package repositories

import (
	"context"

	"github.com/kalash-creations/go-bangles/app/models"
	"gorm.io/gorm"
)

type BangleVariantRepositoryImpl interface {
	GetByBangleID(ctx context.Context, tx *gorm.DB, bangleID string) ([]models.BangleColorVariant, error)
	ExistsByID(ctx context.Context, tx *gorm.DB, id string) (bool, error)
	ExistsByIDForOtherBangle(ctx context.Context, tx *gorm.DB, id, bangleID string) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, variant *models.BangleColorVariant) error
	DeleteByBangleID(ctx context.Context, tx *gorm.DB, bangleID string) error
}

type bangleVariantRepository struct {
	db *gorm.DB
}

func NewBangleVariantRepository(db *gorm.DB) BangleVariantRepositoryImpl {
	return &bangleVariantRepository{db: db}
}

func (r *bangleVariantRepository) GetByBangleID(ctx context.Context, tx *gorm.DB, bangleID string) ([]models.BangleColorVariant, error) {
	var variants []models.BangleColorVariant
	err := tx.WithContext(ctx).
		Where("bangle_id = ?", bangleID).
		Order("position ASC").
		Find(&variants).Error
	if err != nil {
		return nil, err
	}
	return variants, nil
}

func (r *bangleVariantRepository) ExistsByID(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&models.BangleColorVariant{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ExistsByIDForOtherBangle reports whether the variant id is already taken by
// a different bangle. Used on update, where the bangle's own rows are being
// replaced inside the same transaction.
func (r *bangleVariantRepository) ExistsByIDForOtherBangle(ctx context.Context, tx *gorm.DB, id, bangleID string) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&models.BangleColorVariant{}).
		Where("id = ? AND bangle_id != ?", id, bangleID).
		Count(&count).Error
	return count > 0, err
}

func (r *bangleVariantRepository) Create(ctx context.Context, tx *gorm.DB, variant *models.BangleColorVariant) error {
	return tx.WithContext(ctx).Create(variant).Error
}

func (r *bangleVariantRepository) DeleteByBangleID(ctx context.Context, tx *gorm.DB, bangleID string) error {
	return tx.WithContext(ctx).Delete(&models.BangleColorVariant{}, "bangle_id = ?", bangleID).Error
}
