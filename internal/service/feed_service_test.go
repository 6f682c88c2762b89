package service

import (
	"context"
	"testing"
	"time"

	"quill/internal/models"
	"quill/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestFeedService(posts *postRepoStub, categories *categoryRepoStub, users *userRepoStub) *FeedService {
	s := NewFeedService(posts, categories, users, 10)
	s.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestSiteFeedPageResolution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rawPage    string
		total      int64
		wantPage   int
		wantOffset int
	}{
		{"first page by default", "", 25, 1, 0},
		{"explicit page", "2", 25, 2, 10},
		{"non-integer falls back to one", "abc", 25, 1, 0},
		{"zero falls back to one", "0", 25, 1, 0},
		{"negative falls back to one", "-3", 25, 1, 0},
		{"beyond last clamps to last", "99", 25, 3, 20},
		{"empty feed still has one page", "7", 0, 1, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotOffset int
			posts := noopPostRepo()
			posts.countFn = func(_ context.Context, _ repository.PostQuery) (int64, error) {
				return tt.total, nil
			}
			posts.listFn = func(_ context.Context, _ repository.PostQuery, limit, offset int) ([]*models.Post, error) {
				assert.Equal(t, 10, limit)
				gotOffset = offset
				return nil, nil
			}

			s := newTestFeedService(posts, noopCategoryRepo(), noopUserRepo())
			feed, err := s.SiteFeed(context.Background(), tt.rawPage)
			require.NoError(t, err)

			assert.Equal(t, tt.wantPage, feed.Page.Number)
			assert.Equal(t, tt.wantOffset, gotOffset)
			assert.Equal(t, tt.total, feed.Page.TotalItems)
		})
	}
}

func TestSiteFeedPageMetadata(t *testing.T) {
	t.Parallel()

	posts := noopPostRepo()
	posts.countFn = func(_ context.Context, _ repository.PostQuery) (int64, error) { return 21, nil }

	s := newTestFeedService(posts, noopCategoryRepo(), noopUserRepo())
	feed, err := s.SiteFeed(context.Background(), "2")
	require.NoError(t, err)

	assert.Equal(t, 3, feed.Page.TotalPages)
	assert.True(t, feed.Page.HasPrev)
	assert.True(t, feed.Page.HasNext)
	assert.Equal(t, 10, feed.Page.Size)
}

func TestSiteFeedAnchorsVisibilityToNow(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	posts := noopPostRepo()
	posts.countFn = func(_ context.Context, q repository.PostQuery) (int64, error) {
		assert.Equal(t, now, q.Now)
		assert.False(t, q.IncludeHidden)
		return 0, nil
	}

	s := newTestFeedService(posts, noopCategoryRepo(), noopUserRepo())
	_, err := s.SiteFeed(context.Background(), "1")
	require.NoError(t, err)
}

func TestCategoryFeedUnknownSlugIsNotFound(t *testing.T) {
	t.Parallel()

	categories := noopCategoryRepo()
	categories.getPublishedBySlugFn = func(_ context.Context, _ string) (*models.Category, error) {
		return nil, gorm.ErrRecordNotFound
	}

	s := newTestFeedService(noopPostRepo(), categories, noopUserRepo())
	_, err := s.CategoryFeed(context.Background(), "nonexistent", "1")
	assertErrorCode(t, err, models.CodeNotFound)
}

func TestCategoryFeedFiltersByCategory(t *testing.T) {
	t.Parallel()

	categories := noopCategoryRepo()
	categories.getPublishedBySlugFn = func(_ context.Context, slug string) (*models.Category, error) {
		return &models.Category{ID: 7, Slug: slug, IsPublished: true}, nil
	}

	posts := noopPostRepo()
	posts.countFn = func(_ context.Context, q repository.PostQuery) (int64, error) {
		require.NotNil(t, q.CategoryID)
		assert.Equal(t, uint(7), *q.CategoryID)
		return 0, nil
	}

	s := newTestFeedService(posts, categories, noopUserRepo())
	feed, err := s.CategoryFeed(context.Background(), "travel", "1")
	require.NoError(t, err)
	require.NotNil(t, feed.Category)
	assert.Equal(t, uint(7), feed.Category.ID)
}

func TestAuthorFeedOwnerSeesHidden(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		viewerID   uint
		wantHidden bool
	}{
		{"owner includes drafts", 42, true},
		{"other viewer does not", 7, false},
		{"anonymous does not", 0, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			users := noopUserRepo()
			users.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
				return &models.User{ID: 42, Username: username}, nil
			}

			posts := noopPostRepo()
			posts.countFn = func(_ context.Context, q repository.PostQuery) (int64, error) {
				require.NotNil(t, q.AuthorID)
				assert.Equal(t, uint(42), *q.AuthorID)
				assert.Equal(t, tt.wantHidden, q.IncludeHidden)
				return 0, nil
			}

			s := newTestFeedService(posts, noopCategoryRepo(), users)
			feed, err := s.AuthorFeed(context.Background(), "writer", tt.viewerID, "1")
			require.NoError(t, err)
			require.NotNil(t, feed.Profile)
		})
	}
}

func TestAuthorFeedUnknownUserIsNotFound(t *testing.T) {
	t.Parallel()

	s := newTestFeedService(noopPostRepo(), noopCategoryRepo(), noopUserRepo())
	_, err := s.AuthorFeed(context.Background(), "ghost", 0, "1")
	assertErrorCode(t, err, models.CodeNotFound)
}
