package repository

import (
	"context"

	"quill/internal/cache"
	"quill/internal/models"

	"gorm.io/gorm"
)

// LocationRepository defines the interface for location data operations
type LocationRepository interface {
	Create(ctx context.Context, location *models.Location) error
	GetByID(ctx context.Context, id uint) (*models.Location, error)
	ListPublished(ctx context.Context) ([]*models.Location, error)
	Update(ctx context.Context, location *models.Location) error
	Delete(ctx context.Context, id uint) error
}

type locationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(ctx context.Context, location *models.Location) error {
	err := r.db.WithContext(ctx).Create(location).Error
	if err == nil {
		cache.InvalidateLocations(ctx)
	}
	return err
}

func (r *locationRepository) GetByID(ctx context.Context, id uint) (*models.Location, error) {
	var location models.Location
	if err := r.db.WithContext(ctx).First(&location, id).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *locationRepository) ListPublished(ctx context.Context) ([]*models.Location, error) {
	var locations []*models.Location
	err := cache.Aside(ctx, cache.LocationsKey(), &locations, cache.LocationsTTL, func() error {
		return r.db.WithContext(ctx).
			Where("is_published = ?", true).
			Order("name ASC").
			Find(&locations).Error
	})
	return locations, err
}

func (r *locationRepository) Update(ctx context.Context, location *models.Location) error {
	if err := r.db.WithContext(ctx).Save(location).Error; err != nil {
		return err
	}
	cache.InvalidateLocations(ctx)
	return nil
}

func (r *locationRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Location{}, id).Error; err != nil {
		return err
	}
	cache.InvalidateLocations(ctx)
	return nil
}
