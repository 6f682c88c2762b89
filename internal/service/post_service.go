package service

import (
	"context"
	"time"

	"quill/internal/models"
	"quill/internal/policy"
	"quill/internal/repository"
)

const (
	maxTitleLen = 256
	maxTextLen  = 50000
)

// PostService handles the post lifecycle: visibility-gated reads and
// owner-gated writes.
type PostService struct {
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
	now          func() time.Time
}

type CreatePostInput struct {
	AuthorID    uint
	Title       string
	Text        string
	ImageURL    string
	PubDate     time.Time
	IsPublished bool
	CategoryID  *uint
	LocationID  *uint
}

type UpdatePostInput struct {
	ActorID     uint
	PostID      uint
	Title       string
	Text        string
	ImageURL    string
	PubDate     *time.Time
	IsPublished *bool
	CategoryID  *uint
	LocationID  *uint
}

// NewPostService creates a new post service.
func NewPostService(
	postRepo repository.PostRepository,
	categoryRepo repository.CategoryRepository,
	locationRepo repository.LocationRepository,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		now:          time.Now,
	}
}

// GetPost returns the post when the viewer may see it. Hidden posts and
// missing posts are the same NotFound; the response never reveals that a
// draft exists.
func (s *PostService) GetPost(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRecordNotFound(err, "post")
	}
	if !policy.PostVisible(post, viewerID, s.now()) {
		return nil, models.NewNotFoundError("post")
	}
	return post, nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := s.validateContent(in.Title, in.Text); err != nil {
		return nil, err
	}
	if err := s.validateRefs(ctx, in.CategoryID, in.LocationID); err != nil {
		return nil, err
	}

	pubDate := in.PubDate
	if pubDate.IsZero() {
		pubDate = s.now()
	}

	post := &models.Post{
		Title:       in.Title,
		Text:        in.Text,
		ImageURL:    in.ImageURL,
		PubDate:     pubDate,
		IsPublished: in.IsPublished,
		AuthorID:    in.AuthorID,
		CategoryID:  in.CategoryID,
		LocationID:  in.LocationID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// UpdatePost applies a partial update. Only the author may edit; the
// author itself is immutable.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, mapRecordNotFound(err, "post")
	}

	if !policy.CanModify(post.AuthorID, in.ActorID) {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}

	if in.Title != "" {
		post.Title = in.Title
	}
	if in.Text != "" {
		post.Text = in.Text
	}
	if in.ImageURL != "" {
		post.ImageURL = in.ImageURL
	}
	if in.PubDate != nil {
		post.PubDate = *in.PubDate
	}
	if in.IsPublished != nil {
		post.IsPublished = *in.IsPublished
	}
	if in.CategoryID != nil {
		if err := s.validateRefs(ctx, in.CategoryID, nil); err != nil {
			return nil, err
		}
		post.CategoryID = in.CategoryID
	}
	if in.LocationID != nil {
		if err := s.validateRefs(ctx, nil, in.LocationID); err != nil {
			return nil, err
		}
		post.LocationID = in.LocationID
	}

	if err := s.validateContent(post.Title, post.Text); err != nil {
		return nil, err
	}

	// Drop stale associations so Save does not resurrect the old category
	// or location rows.
	post.Category = nil
	post.Location = nil

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// DeletePost removes the post and its comments in one atomic unit. The
// ownership check runs before any mutation.
func (s *PostService) DeletePost(ctx context.Context, postID, actorID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return mapRecordNotFound(err, "post")
	}

	if !policy.CanModify(post.AuthorID, actorID) {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	return s.postRepo.DeleteWithComments(ctx, postID)
}

func (s *PostService) validateContent(title, text string) error {
	if title == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return models.NewValidationError("Title too long (max 256 characters)")
	}
	if text == "" {
		return models.NewValidationError("Text is required")
	}
	if len(text) > maxTextLen {
		return models.NewValidationError("Text too long (max 50000 characters)")
	}
	return nil
}

// validateRefs checks that referenced category/location rows exist and
// are published; the post form only ever offers published ones.
func (s *PostService) validateRefs(ctx context.Context, categoryID, locationID *uint) error {
	if categoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *categoryID)
		if err != nil {
			return mapRecordNotFoundAsValidation(err, "Unknown category")
		}
		if !category.IsPublished {
			return models.NewValidationError("Unknown category")
		}
	}
	if locationID != nil {
		location, err := s.locationRepo.GetByID(ctx, *locationID)
		if err != nil {
			return mapRecordNotFoundAsValidation(err, "Unknown location")
		}
		if !location.IsPublished {
			return models.NewValidationError("Unknown location")
		}
	}
	return nil
}
