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
)

type CreateCategoryInput struct {
	ID          string
	Name        string
	Description string
	ImageFile   *multipart.FileHeader
}

type UpdateCategoryInput struct {
	Name        *string
	Description *string
	ImageFile   *multipart.FileHeader
}

// CategoryService owns category CRUD and the lifecycle of category images.
// Single-row writes, so no explicit transaction.
type CategoryService struct {
	repo   repositories.CategoryRepositoryImpl
	images *imagestore.Store
	appURL string
}

func NewCategoryService(repo repositories.CategoryRepositoryImpl, images *imagestore.Store, appURL string) *CategoryService {
	return &CategoryService{repo: repo, images: images, appURL: appURL}
}

func (s *CategoryService) CreateCategory(ctx context.Context, input CreateCategoryInput) (*models.Category, error) {
	if input.ID == "" || input.Name == "" {
		return nil, apperr.Validationf("Category ID and Name are required.")
	}

	existing, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check category id %s: %w", input.ID, err)
	}
	if existing != nil {
		return nil, apperr.Conflictf("Category with ID '%s' already exists.", input.ID)
	}

	category := &models.Category{
		ID:          input.ID,
		Name:        input.Name,
		Description: input.Description,
	}

	if input.ImageFile != nil {
		relPath, err := s.images.Save(imagestore.DirCategories, "imageFile", input.ImageFile)
		if err != nil {
			return nil, err
		}
		category.ImageURL = &relPath
	}

	if err := s.repo.Create(ctx, category); err != nil {
		if category.ImageURL != nil {
			s.images.Remove(*category.ImageURL)
		}
		return nil, fmt.Errorf("failed to insert category %s: %w", input.ID, err)
	}

	return s.repo.GetByID(ctx, input.ID)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id string, input UpdateCategoryInput) (*models.Category, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load category %s: %w", id, err)
	}
	if current == nil {
		return nil, apperr.NotFoundf("Category not found")
	}

	if input.Name != nil {
		current.Name = *input.Name
	}
	if input.Description != nil {
		current.Description = *input.Description
	}

	var savedPath string
	if input.ImageFile != nil {
		relPath, err := s.images.Save(imagestore.DirCategories, "imageFile", input.ImageFile)
		if err != nil {
			return nil, err
		}
		savedPath = relPath
		if current.ImageURL != nil {
			s.images.Remove(helpers.RelativeImagePath(s.appURL, *current.ImageURL))
		}
		current.ImageURL = &relPath
	}

	if err := s.repo.Update(ctx, current); err != nil {
		if savedPath != "" {
			s.images.Remove(savedPath)
		}
		return nil, fmt.Errorf("failed to update category %s: %w", id, err)
	}

	return s.repo.GetByID(ctx, id)
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load category %s: %w", id, err)
	}
	if current == nil {
		return apperr.NotFoundf("Category not found")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category %s: %w", id, err)
	}

	if current.ImageURL != nil {
		s.images.Remove(*current.ImageURL)
	}
	return nil
}
