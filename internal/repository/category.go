package repository

import (
	"context"

	"quill/internal/cache"
	"quill/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	// GetPublishedBySlug resolves a slug to a published category; an
	// unpublished category is indistinguishable from a missing one.
	GetPublishedBySlug(ctx context.Context, slug string) (*models.Category, error)
	ListPublished(ctx context.Context) ([]*models.Category, error)
	// SlugTaken reports whether another category (excluding excludeID)
	// already claims the slug, published or not.
	SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	err := r.db.WithContext(ctx).Create(category).Error
	if err == nil {
		cache.InvalidateCategory(ctx, category.Slug)
	}
	return err
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetPublishedBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := cache.Aside(ctx, cache.CategoryKey(slug), &category, cache.CategoryTTL, func() error {
		return r.db.WithContext(ctx).
			Where("slug = ? AND is_published = ?", slug, true).
			First(&category).Error
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ListPublished(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("title ASC").
		Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&models.Category{}).Where("slug = ?", slug)
	if excludeID != 0 {
		db = db.Where("id <> ?", excludeID)
	}
	if err := db.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	// A rename must also drop the cache entry under the old slug, or it
	// keeps serving the stale category until TTL expiry.
	var prior models.Category
	if err := r.db.WithContext(ctx).Select("slug").First(&prior, category.ID).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return err
	}
	if prior.Slug != category.Slug {
		cache.InvalidateCategory(ctx, prior.Slug)
	}
	cache.InvalidateCategory(ctx, category.Slug)
	return nil
}

// Delete removes the category outright; posts referencing it fall back to
// category_id NULL via the foreign key's SET NULL action.
func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	category, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Category{}, id).Error; err != nil {
		return err
	}
	cache.InvalidateCategory(ctx, category.Slug)
	return nil
}
