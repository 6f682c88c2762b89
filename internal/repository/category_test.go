package repository

import (
	"context"
	"testing"
	"time"

	"quill/internal/cache"
	"quill/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGetPublishedBySlug(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	createTestCategory(t, db, "travel", true)
	createTestCategory(t, db, "secret", false)

	got, err := repo.GetPublishedBySlug(ctx, "travel")
	require.NoError(t, err)
	assert.Equal(t, "travel", got.Slug)

	// An unpublished category resolves exactly like a missing one.
	_, err = repo.GetPublishedBySlug(ctx, "secret")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.GetPublishedBySlug(ctx, "nonexistent")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSlugTaken(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	existing := createTestCategory(t, db, "travel", true)

	taken, err := repo.SlugTaken(ctx, "travel", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.SlugTaken(ctx, "travel", existing.ID)
	require.NoError(t, err)
	assert.False(t, taken, "a category does not collide with itself")

	taken, err = repo.SlugTaken(ctx, "fresh", 0)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestListPublishedCategories(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	createTestCategory(t, db, "a", true)
	createTestCategory(t, db, "b", false)
	createTestCategory(t, db, "c", true)

	listed, err := repo.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	for _, c := range listed {
		assert.True(t, c.IsPublished)
	}
}

// Not parallel: it swaps the package-level cache client.
func TestCategoryUpdateInvalidatesOldSlugCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	category := createTestCategory(t, db, "before", true)

	// Warm the cache under the original slug.
	got, err := repo.GetPublishedBySlug(ctx, "before")
	require.NoError(t, err)
	require.Equal(t, "before", got.Slug)

	category.Slug = "after"
	require.NoError(t, repo.Update(ctx, category))

	// The old slug must miss; a stale cache entry would keep serving the
	// renamed category here.
	_, err = repo.GetPublishedBySlug(ctx, "before")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err = repo.GetPublishedBySlug(ctx, "after")
	require.NoError(t, err)
	assert.Equal(t, "after", got.Slug)
}

func TestCategoryDeleteLeavesPostsWithoutCategory(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	categoryRepo := NewCategoryRepository(db)
	postRepo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "taxed")
	category := createTestCategory(t, db, "doomed", true)

	post := &models.Post{
		Title: "orphaned", Text: "x", PubDate: time.Now().Add(-time.Hour),
		IsPublished: true, AuthorID: author.ID, CategoryID: &category.ID,
	}
	require.NoError(t, postRepo.Create(ctx, post))

	require.NoError(t, categoryRepo.Delete(ctx, category.ID))

	reloaded, err := postRepo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.CategoryID, "delete clears the reference, not the post")

	err = categoryRepo.Delete(ctx, category.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
