package repositories

import (
	"context"
	"errors"

	"github.com/kalash-creations/go-bangles/app/models"
	"gorm.io/gorm"
)

type BangleRepositoryImpl interface {
	GetBangles(ctx context.Context, categoryID string) ([]models.Bangle, error)
	GetByID(ctx context.Context, id string) (*models.Bangle, error)
	GetByIDTx(ctx context.Context, tx *gorm.DB, id string) (*models.Bangle, error)
	ExistsByID(ctx context.Context, tx *gorm.DB, id string) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, bangle *models.Bangle) error
	Update(ctx context.Context, tx *gorm.DB, bangle *models.Bangle) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
}

type bangleRepository struct {
	db *gorm.DB
}

func NewBangleRepository(db *gorm.DB) BangleRepositoryImpl {
	return &bangleRepository{db: db}
}

func variantOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *bangleRepository) GetBangles(ctx context.Context, categoryID string) ([]models.Bangle, error) {
	var bangles []models.Bangle

	query := r.db.WithContext(ctx).
		Preload("ColorVariants", variantOrder).
		Order("name ASC")
	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	if err := query.Find(&bangles).Error; err != nil {
		return nil, err
	}
	return bangles, nil
}

func (r *bangleRepository) GetByID(ctx context.Context, id string) (*models.Bangle, error) {
	var bangle models.Bangle
	err := r.db.WithContext(ctx).
		Preload("ColorVariants", variantOrder).
		First(&bangle, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bangle, nil
}

// GetByIDTx reads inside a caller-owned transaction.
func (r *bangleRepository) GetByIDTx(ctx context.Context, tx *gorm.DB, id string) (*models.Bangle, error) {
	var bangle models.Bangle
	err := tx.WithContext(ctx).
		Preload("ColorVariants", variantOrder).
		First(&bangle, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bangle, nil
}

func (r *bangleRepository) ExistsByID(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&models.Bangle{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *bangleRepository) Create(ctx context.Context, tx *gorm.DB, bangle *models.Bangle) error {
	// Variant rows are inserted separately so their uniqueness checks can run
	// per descriptor.
	return tx.WithContext(ctx).Omit("ColorVariants").Create(bangle).Error
}

func (r *bangleRepository) Update(ctx context.Context, tx *gorm.DB, bangle *models.Bangle) error {
	return tx.WithContext(ctx).Omit("ColorVariants").Save(bangle).Error
}

func (r *bangleRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	return tx.WithContext(ctx).Delete(&models.Bangle{}, "id = ?", id).Error
}
