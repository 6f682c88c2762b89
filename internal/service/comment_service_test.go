package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestCommentService(comments *commentRepoStub, posts *postRepoStub) *CommentService {
	s := NewCommentService(comments, posts, 10)
	s.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestAddCommentOnDraft(t *testing.T) {
	t.Parallel()

	draft := &models.Post{
		ID:          1,
		AuthorID:    42,
		IsPublished: false,
		PubDate:     time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name     string
		authorID uint
		wantErr  bool
	}{
		{"stranger cannot comment on a draft", 7, true},
		{"author can comment on own draft", 42, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			posts := noopPostRepo()
			posts.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) { return draft, nil }

			s := newTestCommentService(noopCommentRepo(), posts)
			_, err := s.AddComment(context.Background(), AddCommentInput{
				PostID: 1, AuthorID: tt.authorID, Text: "hello",
			})
			if tt.wantErr {
				assertErrorCode(t, err, models.CodeNotFound)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAddCommentMissingPostIsNotFound(t *testing.T) {
	t.Parallel()

	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
		return nil, gorm.ErrRecordNotFound
	}

	s := newTestCommentService(noopCommentRepo(), posts)
	_, err := s.AddComment(context.Background(), AddCommentInput{PostID: 9, AuthorID: 1, Text: "hi"})
	assertErrorCode(t, err, models.CodeNotFound)
}

func TestAddCommentValidation(t *testing.T) {
	t.Parallel()

	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) { return publishedPost(42), nil }

	s := newTestCommentService(noopCommentRepo(), posts)

	_, err := s.AddComment(context.Background(), AddCommentInput{PostID: 1, AuthorID: 1, Text: ""})
	assertErrorCode(t, err, models.CodeValidation)

	_, err = s.AddComment(context.Background(), AddCommentInput{
		PostID: 1, AuthorID: 1, Text: strings.Repeat("a", 10001),
	})
	assertErrorCode(t, err, models.CodeValidation)
}

func TestListCommentsSetsPreview(t *testing.T) {
	t.Parallel()

	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) { return publishedPost(42), nil }

	comments := noopCommentRepo()
	comments.listByPostFn = func(_ context.Context, _ uint) ([]*models.Comment, error) {
		return []*models.Comment{
			{ID: 1, Text: "short"},
			{ID: 2, Text: "a comment that is longer than ten runes"},
		}, nil
	}

	s := newTestCommentService(comments, posts)
	got, err := s.ListComments(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "short", got[0].Preview)
	assert.Equal(t, "a comment "+"…", got[1].Preview)
}

func TestUpdateCommentOwnerOnly(t *testing.T) {
	t.Parallel()

	comments := noopCommentRepo()
	comments.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
		return &models.Comment{ID: 3, AuthorID: 42, Text: "original"}, nil
	}

	s := newTestCommentService(comments, noopPostRepo())

	_, err := s.UpdateComment(context.Background(), UpdateCommentInput{
		CommentID: 3, ActorID: 7, Text: "edited",
	})
	assertErrorCode(t, err, models.CodeForbidden)

	_, err = s.UpdateComment(context.Background(), UpdateCommentInput{
		CommentID: 3, ActorID: 0, Text: "edited",
	})
	assertErrorCode(t, err, models.CodeForbidden)
}

func TestDeleteCommentOwnerOnly(t *testing.T) {
	t.Parallel()

	deleted := false
	comments := noopCommentRepo()
	comments.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
		return &models.Comment{ID: 3, AuthorID: 42}, nil
	}
	comments.deleteFn = func(_ context.Context, _ uint) error {
		deleted = true
		return nil
	}

	s := newTestCommentService(comments, noopPostRepo())

	_, err := s.DeleteComment(context.Background(), 3, 7)
	assertErrorCode(t, err, models.CodeForbidden)
	assert.False(t, deleted)

	_, err = s.DeleteComment(context.Background(), 3, 42)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestDeleteCommentMissingIsNotFound(t *testing.T) {
	t.Parallel()

	comments := noopCommentRepo()
	comments.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
		return nil, gorm.ErrRecordNotFound
	}

	s := newTestCommentService(comments, noopPostRepo())
	_, err := s.DeleteComment(context.Background(), 99, 1)
	assertErrorCode(t, err, models.CodeNotFound)
}
