package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/kalash-creations/go-bangles/app/helpers"
	"github.com/kalash-creations/go-bangles/app/models"
	"github.com/kalash-creations/go-bangles/app/repositories"
	"github.com/kalash-creations/go-bangles/app/utils/apperr"
	"github.com/kalash-creations/go-bangles/app/utils/imagestore"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// VariantInput describes one color variant as submitted. When ImageFile is
// set it wins over ImageURL; ImageURL carries forward a previously stored
// path (possibly echoed back as an absolute URL by the admin panel).
type VariantInput struct {
	ID        string
	ColorName string
	HexColor  string
	ImageURL  string
	ImageFile *multipart.FileHeader
}

type CreateBangleInput struct {
	ID             string
	Name           string
	CategoryID     string
	Price          decimal.Decimal
	Description    string
	AvailableSizes models.SizeList
	Material       string
	Rating         *float64
	Reviews        *int
	BaseImageFile  *multipart.FileHeader
	Variants       []VariantInput
}

// UpdateBangleInput carries patch semantics: nil pointer fields keep the
// bangle's current values. The variant list always replaces the whole set.
type UpdateBangleInput struct {
	Name           *string
	CategoryID     *string
	Price          *decimal.Decimal
	Description    *string
	AvailableSizes *models.SizeList
	Material       *string
	Rating         *float64
	Reviews        *int
	BaseImageFile  *multipart.FileHeader
	Variants       []VariantInput
}

// CatalogService applies bangle mutations as one DB transaction and keeps the
// image store consistent with it: files saved during a failed request are
// deleted again, files belonging to removed rows are deleted after commit.
type CatalogService struct {
	db          *gorm.DB
	bangleRepo  repositories.BangleRepositoryImpl
	variantRepo repositories.BangleVariantRepositoryImpl
	images      *imagestore.Store
	appURL      string
}

func NewCatalogService(
	db *gorm.DB,
	bangleRepo repositories.BangleRepositoryImpl,
	variantRepo repositories.BangleVariantRepositoryImpl,
	images *imagestore.Store,
	appURL string,
) *CatalogService {
	return &CatalogService{
		db:          db,
		bangleRepo:  bangleRepo,
		variantRepo: variantRepo,
		images:      images,
		appURL:      appURL,
	}
}

func (s *CatalogService) CreateBangle(ctx context.Context, input CreateBangleInput) (*models.Bangle, error) {
	if input.ID == "" || input.Name == "" || input.CategoryID == "" || input.Price.IsZero() {
		return nil, apperr.Validationf("Bangle ID, Name, Category ID, and Price are required.")
	}

	var saved []string
	fail := func(err error) (*models.Bangle, error) {
		s.images.RemoveAll(saved)
		return nil, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC: Rolling back bangle create: %v", r)
			tx.Rollback()
			s.images.RemoveAll(saved)
			panic(r)
		}
	}()

	taken, err := s.bangleRepo.ExistsByID(ctx, tx, input.ID)
	if err != nil {
		tx.Rollback()
		return fail(fmt.Errorf("failed to check bangle id %s: %w", input.ID, err))
	}
	if taken {
		tx.Rollback()
		return fail(apperr.Conflictf("Bangle with ID '%s' already exists.", input.ID))
	}

	bangle := &models.Bangle{
		ID:             input.ID,
		Name:           input.Name,
		CategoryID:     input.CategoryID,
		Price:          input.Price,
		Description:    input.Description,
		AvailableSizes: input.AvailableSizes,
		Material:       input.Material,
		Rating:         input.Rating,
		Reviews:        input.Reviews,
	}
	if bangle.AvailableSizes == nil {
		bangle.AvailableSizes = models.SizeList{}
	}

	if input.BaseImageFile != nil {
		relPath, err := s.images.Save(imagestore.DirBangles, "baseImageFile", input.BaseImageFile)
		if err != nil {
			tx.Rollback()
			return fail(err)
		}
		saved = append(saved, relPath)
		bangle.BaseImageURL = &relPath
	}

	if err := s.bangleRepo.Create(ctx, tx, bangle); err != nil {
		tx.Rollback()
		return fail(fmt.Errorf("failed to insert bangle %s: %w", input.ID, err))
	}

	if err := s.insertVariants(ctx, tx, input.ID, input.Variants, &saved, false); err != nil {
		tx.Rollback()
		return fail(err)
	}

	if err := tx.Commit().Error; err != nil {
		return fail(fmt.Errorf("failed to commit bangle create: %w", err))
	}

	return s.bangleRepo.GetByID(ctx, input.ID)
}

func (s *CatalogService) UpdateBangle(ctx context.Context, id string, input UpdateBangleInput) (*models.Bangle, error) {
	var saved []string
	fail := func(err error) (*models.Bangle, error) {
		s.images.RemoveAll(saved)
		return nil, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC: Rolling back bangle update for %s: %v", id, r)
			tx.Rollback()
			s.images.RemoveAll(saved)
			panic(r)
		}
	}()

	current, err := s.bangleRepo.GetByIDTx(ctx, tx, id)
	if err != nil {
		tx.Rollback()
		return fail(fmt.Errorf("failed to load bangle %s: %w", id, err))
	}
	if current == nil {
		tx.Rollback()
		return fail(apperr.NotFoundf("Bangle not found"))
	}

	// Patch semantics: fields omitted from the request keep prior values.
	if input.Name != nil {
		current.Name = *input.Name
	}
	if input.CategoryID != nil {
		current.CategoryID = *input.CategoryID
	}
	if input.Price != nil {
		current.Price = *input.Price
	}
	if input.Description != nil {
		current.Description = *input.Description
	}
	if input.AvailableSizes != nil {
		current.AvailableSizes = *input.AvailableSizes
	}
	if current.AvailableSizes == nil {
		current.AvailableSizes = models.SizeList{}
	}
	if input.Material != nil {
		current.Material = *input.Material
	}
	if input.Rating != nil {
		current.Rating = input.Rating
	}
	if input.Reviews != nil {
		current.Reviews = input.Reviews
	}

	if input.BaseImageFile != nil {
		if current.BaseImageURL != nil {
			s.images.Remove(helpers.RelativeImagePath(s.appURL, *current.BaseImageURL))
		}
		relPath, err := s.images.Save(imagestore.DirBangles, "baseImageFile", input.BaseImageFile)
		if err != nil {
			tx.Rollback()
			return fail(err)
		}
		saved = append(saved, relPath)
		current.BaseImageURL = &relPath
	}

	if err := s.bangleRepo.Update(ctx, tx, current); err != nil {
		tx.Rollback()
		return fail(fmt.Errorf("failed to update bangle %s: %w", id, err))
	}

	// Full-replace reconciliation: every existing variant row and image file
	// goes away, then the submitted set is inserted as new rows. Files removed
	// here are gone even if a later step fails the transaction.
	oldVariants, err := s.variantRepo.GetByBangleID(ctx, tx, id)
	if err != nil {
		tx.Rollback()
		return fail(fmt.Errorf("failed to load variants of bangle %s: %w", id, err))
	}
	for _, old := range oldVariants {
		if old.ImageURL != "" {
			s.images.Remove(old.ImageURL)
		}
	}
	if err := s.variantRepo.DeleteByBangleID(ctx, tx, id); err != nil {
		tx.Rollback()
		return fail(fmt.Errorf("failed to delete variants of bangle %s: %w", id, err))
	}

	if err := s.insertVariants(ctx, tx, id, input.Variants, &saved, true); err != nil {
		tx.Rollback()
		return fail(err)
	}

	if err := tx.Commit().Error; err != nil {
		return fail(fmt.Errorf("failed to commit bangle update: %w", err))
	}

	return s.bangleRepo.GetByID(ctx, id)
}

func (s *CatalogService) DeleteBangle(ctx context.Context, id string) error {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC: Rolling back bangle delete for %s: %v", id, r)
			tx.Rollback()
			panic(r)
		}
	}()

	bangle, err := s.bangleRepo.GetByIDTx(ctx, tx, id)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to load bangle %s: %w", id, err)
	}
	if bangle == nil {
		tx.Rollback()
		return apperr.NotFoundf("Bangle not found")
	}

	orphaned := make([]string, 0, len(bangle.ColorVariants)+1)
	if bangle.BaseImageURL != nil && *bangle.BaseImageURL != "" {
		orphaned = append(orphaned, *bangle.BaseImageURL)
	}
	for _, v := range bangle.ColorVariants {
		if v.ImageURL != "" {
			orphaned = append(orphaned, v.ImageURL)
		}
	}

	// The FK cascade clears the variant rows.
	if err := s.bangleRepo.Delete(ctx, tx, id); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete bangle %s: %w", id, err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit bangle delete: %w", err)
	}

	// Files go only after the rows are durably gone. Failures are logged by
	// the store and never reach the caller.
	s.images.RemoveAll(orphaned)
	return nil
}

// insertVariants validates and inserts the submitted variant set in order.
// Descriptors missing an id or color name are skipped with a warning, matching
// the admin panel's loose contract.
func (s *CatalogService) insertVariants(ctx context.Context, tx *gorm.DB, bangleID string, variants []VariantInput, saved *[]string, excludeOwn bool) error {
	position := 0
	for i, v := range variants {
		if v.ID == "" || v.ColorName == "" {
			log.Printf("CatalogService: skipping variant index %d for bangle %s due to missing ID or ColorName", i, bangleID)
			continue
		}

		var taken bool
		var err error
		if excludeOwn {
			taken, err = s.variantRepo.ExistsByIDForOtherBangle(ctx, tx, v.ID, bangleID)
		} else {
			taken, err = s.variantRepo.ExistsByID(ctx, tx, v.ID)
		}
		if err != nil {
			return fmt.Errorf("failed to check variant id %s: %w", v.ID, err)
		}
		if taken {
			return apperr.Conflictf("Bangle color variant with ID '%s' already exists.", v.ID)
		}

		imageURL := helpers.RelativeImagePath(s.appURL, v.ImageURL)
		if v.ImageFile != nil {
			relPath, err := s.images.Save(imagestore.DirVariants, fmt.Sprintf("colorVariants[%d][imageFile]", i), v.ImageFile)
			if err != nil {
				return err
			}
			*saved = append(*saved, relPath)
			imageURL = relPath
		}

		variant := &models.BangleColorVariant{
			ID:        v.ID,
			BangleID:  bangleID,
			ColorName: v.ColorName,
			HexColor:  v.HexColor,
			ImageURL:  imageURL,
			Position:  position,
		}
		if err := s.variantRepo.Create(ctx, tx, variant); err != nil {
			return fmt.Errorf("failed to insert variant %s: %w", v.ID, err)
		}
		position++
	}
	return nil
}
