package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"quill/internal/models"
	"quill/internal/repository"
)

// PageInfo describes one page of a feed.
type PageInfo struct {
	Number     int   `json:"number"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

// Feed is one page of an ordered post listing plus the entity the feed
// was filtered by, when any.
type Feed struct {
	Posts    []*models.Post   `json:"posts"`
	Page     PageInfo         `json:"page"`
	Category *models.Category `json:"category,omitempty"`
	Profile  *models.User     `json:"profile,omitempty"`
}

// FeedService builds the site, category and author feeds: visible posts
// only (plus the owner's drafts on their own profile), ordered newest
// first, paginated by page number.
type FeedService struct {
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	pageSize     int
	now          func() time.Time
}

// NewFeedService creates a FeedService with the configured page size.
func NewFeedService(
	postRepo repository.PostRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	pageSize int,
) *FeedService {
	return &FeedService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		pageSize:     pageSize,
		now:          time.Now,
	}
}

// SiteFeed returns the site-wide feed of visible posts.
func (s *FeedService) SiteFeed(ctx context.Context, rawPage string) (*Feed, error) {
	q := repository.PostQuery{Now: s.now()}
	posts, page, err := s.paginate(ctx, q, rawPage)
	if err != nil {
		return nil, err
	}
	return &Feed{Posts: posts, Page: page}, nil
}

// CategoryFeed returns the visible posts under a published category.
// A missing or unpublished category is a NotFound, never an empty feed.
func (s *FeedService) CategoryFeed(ctx context.Context, slug, rawPage string) (*Feed, error) {
	category, err := s.categoryRepo.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, mapRecordNotFound(err, "category")
	}

	q := repository.PostQuery{CategoryID: &category.ID, Now: s.now()}
	posts, page, err := s.paginate(ctx, q, rawPage)
	if err != nil {
		return nil, err
	}
	return &Feed{Posts: posts, Page: page, Category: category}, nil
}

// AuthorFeed returns one author's posts. When the viewer is the profile
// owner the feed also carries the owner's drafts; everyone else sees
// visible posts only.
func (s *FeedService) AuthorFeed(ctx context.Context, username string, viewerID uint, rawPage string) (*Feed, error) {
	profile, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewNotFoundError("profile")
	}

	q := repository.PostQuery{
		AuthorID:      &profile.ID,
		IncludeHidden: viewerID != 0 && viewerID == profile.ID,
		Now:           s.now(),
	}
	posts, page, err := s.paginate(ctx, q, rawPage)
	if err != nil {
		return nil, err
	}
	return &Feed{Posts: posts, Page: page, Profile: profile}, nil
}

// paginate counts the filtered posts, clamps the requested page into the
// valid range and fetches that page.
func (s *FeedService) paginate(ctx context.Context, q repository.PostQuery, rawPage string) ([]*models.Post, PageInfo, error) {
	total, err := s.postRepo.Count(ctx, q)
	if err != nil {
		return nil, PageInfo{}, err
	}

	totalPages := int((total + int64(s.pageSize) - 1) / int64(s.pageSize))
	if totalPages < 1 {
		totalPages = 1
	}

	page := resolvePageNumber(rawPage)
	if page > totalPages {
		page = totalPages
	}

	posts, err := s.postRepo.List(ctx, q, s.pageSize, (page-1)*s.pageSize)
	if err != nil {
		return nil, PageInfo{}, err
	}

	return posts, PageInfo{
		Number:     page,
		Size:       s.pageSize,
		TotalItems: total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}, nil
}

// resolvePageNumber parses a raw page query value. Anything that is not a
// positive integer falls back to page 1; that is the contract, not an error.
func resolvePageNumber(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
