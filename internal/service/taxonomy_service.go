package service

import (
	"context"
	"regexp"

	"quill/internal/cache"
	"quill/internal/models"
	"quill/internal/repository"
)

var slugPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// TaxonomyService manages the staff-curated categories and locations that
// posts attach to.
type TaxonomyService struct {
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
}

type CategoryInput struct {
	Title       string
	Description string
	Slug        string
	IsPublished bool
}

type LocationInput struct {
	Name        string
	IsPublished bool
}

// NewTaxonomyService creates a new taxonomy service.
func NewTaxonomyService(
	categoryRepo repository.CategoryRepository,
	locationRepo repository.LocationRepository,
) *TaxonomyService {
	return &TaxonomyService{
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
	}
}

func (s *TaxonomyService) PublishedCategories(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.ListPublished(ctx)
}

func (s *TaxonomyService) PublishedLocations(ctx context.Context) ([]*models.Location, error) {
	return s.locationRepo.ListPublished(ctx)
}

func (s *TaxonomyService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if err := s.validateCategory(ctx, in, 0); err != nil {
		return nil, err
	}

	category := &models.Category{
		Title:       in.Title,
		Description: in.Description,
		Slug:        in.Slug,
		IsPublished: in.IsPublished,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *TaxonomyService) UpdateCategory(ctx context.Context, id uint, in CategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRecordNotFound(err, "category")
	}

	if err := s.validateCategory(ctx, in, id); err != nil {
		return nil, err
	}

	oldSlug := category.Slug
	category.Title = in.Title
	category.Description = in.Description
	category.Slug = in.Slug
	category.IsPublished = in.IsPublished

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	if oldSlug != category.Slug {
		cache.InvalidateCategory(ctx, oldSlug)
	}
	return category, nil
}

func (s *TaxonomyService) DeleteCategory(ctx context.Context, id uint) error {
	return mapRecordNotFound(s.categoryRepo.Delete(ctx, id), "category")
}

func (s *TaxonomyService) CreateLocation(ctx context.Context, in LocationInput) (*models.Location, error) {
	if in.Name == "" {
		return nil, models.NewValidationError("Name is required")
	}

	location := &models.Location{
		Name:        in.Name,
		IsPublished: in.IsPublished,
	}
	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *TaxonomyService) UpdateLocation(ctx context.Context, id uint, in LocationInput) (*models.Location, error) {
	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRecordNotFound(err, "location")
	}
	if in.Name == "" {
		return nil, models.NewValidationError("Name is required")
	}

	location.Name = in.Name
	location.IsPublished = in.IsPublished

	if err := s.locationRepo.Update(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *TaxonomyService) DeleteLocation(ctx context.Context, id uint) error {
	return mapRecordNotFound(s.locationRepo.Delete(ctx, id), "location")
}

func (s *TaxonomyService) validateCategory(ctx context.Context, in CategoryInput, excludeID uint) error {
	if in.Title == "" {
		return models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return models.NewValidationError("Title too long (max 256 characters)")
	}
	if in.Slug == "" {
		return models.NewValidationError("Slug is required")
	}
	if len(in.Slug) > 64 {
		return models.NewValidationError("Slug too long (max 64 characters)")
	}
	if !slugPattern.MatchString(in.Slug) {
		return models.NewValidationError("Slug may only contain letters, digits, hyphens and underscores")
	}

	taken, err := s.categoryRepo.SlugTaken(ctx, in.Slug, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return models.NewValidationError("Slug already in use")
	}
	return nil
}
