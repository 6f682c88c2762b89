package repository

import (
	"context"
	"time"

	"quill/internal/models"

	"gorm.io/gorm"
)

// PostQuery selects a slice of the post table for feed listings.
type PostQuery struct {
	// CategoryID limits the feed to one category.
	CategoryID *uint
	// AuthorID limits the feed to one author.
	AuthorID *uint
	// IncludeHidden disables the visibility predicate. Used only for an
	// author browsing their own profile feed, where drafts are included.
	IncludeHidden bool
	// Now anchors the pub_date comparison; visibility is time-sensitive.
	Now time.Time
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, q PostQuery, limit, offset int) ([]*models.Post, error)
	Count(ctx context.Context, q PostQuery) (int64, error)
	Update(ctx context.Context, post *models.Post) error
	// DeleteWithComments removes the post and every comment attached to it
	// inside one transaction: either both are gone or neither is.
	DeleteWithComments(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.withCommentsCount(r.db.WithContext(ctx)).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, q PostQuery, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.withCommentsCount(r.applyQuery(r.db.WithContext(ctx), q)).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		Order("posts.pub_date DESC, posts.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Count(ctx context.Context, q PostQuery) (int64, error) {
	var count int64
	err := r.applyQuery(r.db.WithContext(ctx).Model(&models.Post{}), q).Count(&count).Error
	return count, err
}

// applyQuery appends the feed filter and, unless the query includes hidden
// posts, the visibility predicate: published, not future-dated, and not
// under an unpublished category.
func (r *postRepository) applyQuery(db *gorm.DB, q PostQuery) *gorm.DB {
	if q.CategoryID != nil {
		db = db.Where("posts.category_id = ?", *q.CategoryID)
	}
	if q.AuthorID != nil {
		db = db.Where("posts.author_id = ?", *q.AuthorID)
	}
	if q.IncludeHidden {
		return db
	}

	publishedCategories := r.db.Model(&models.Category{}).
		Select("id").
		Where("is_published = ?", true)

	return db.
		Where("posts.is_published = ?", true).
		Where("posts.pub_date <= ?", q.Now).
		Where("posts.category_id IS NULL OR posts.category_id IN (?)", publishedCategories)
}

// withCommentsCount adds a subquery to fetch the live comment count in a single query.
func (r *postRepository) withCommentsCount(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) AS comments_count")
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepository) DeleteWithComments(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}
