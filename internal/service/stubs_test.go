package service

import (
	"context"
	"errors"
	"testing"

	"quill/internal/models"
	"quill/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn             func(context.Context, *models.Post) error
	getByIDFn            func(context.Context, uint) (*models.Post, error)
	listFn               func(context.Context, repository.PostQuery, int, int) ([]*models.Post, error)
	countFn              func(context.Context, repository.PostQuery) (int64, error)
	updateFn             func(context.Context, *models.Post) error
	deleteWithCommentsFn func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, q repository.PostQuery, limit, offset int) ([]*models.Post, error) {
	return s.listFn(ctx, q, limit, offset)
}
func (s *postRepoStub) Count(ctx context.Context, q repository.PostQuery) (int64, error) {
	return s.countFn(ctx, q)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) DeleteWithComments(ctx context.Context, id uint) error {
	return s.deleteWithCommentsFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Post, error) { return &models.Post{}, nil },
		listFn: func(_ context.Context, _ repository.PostQuery, _, _ int) ([]*models.Post, error) {
			return nil, nil
		},
		countFn:              func(_ context.Context, _ repository.PostQuery) (int64, error) { return 0, nil },
		updateFn:             func(_ context.Context, _ *models.Post) error { return nil },
		deleteWithCommentsFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]*models.Comment, error)
	updateFn     func(context.Context, *models.Comment) error
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:    func(_ context.Context, _ uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listByPostFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		updateFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

// categoryRepoStub is a stub for repository.CategoryRepository.
type categoryRepoStub struct {
	createFn             func(context.Context, *models.Category) error
	getByIDFn            func(context.Context, uint) (*models.Category, error)
	getPublishedBySlugFn func(context.Context, string) (*models.Category, error)
	listPublishedFn      func(context.Context) ([]*models.Category, error)
	slugTakenFn          func(context.Context, string, uint) (bool, error)
	updateFn             func(context.Context, *models.Category) error
	deleteFn             func(context.Context, uint) error
}

func (s *categoryRepoStub) Create(ctx context.Context, category *models.Category) error {
	return s.createFn(ctx, category)
}
func (s *categoryRepoStub) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.getByIDFn(ctx, id)
}
func (s *categoryRepoStub) GetPublishedBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.getPublishedBySlugFn(ctx, slug)
}
func (s *categoryRepoStub) ListPublished(ctx context.Context) ([]*models.Category, error) {
	return s.listPublishedFn(ctx)
}
func (s *categoryRepoStub) SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	return s.slugTakenFn(ctx, slug, excludeID)
}
func (s *categoryRepoStub) Update(ctx context.Context, category *models.Category) error {
	return s.updateFn(ctx, category)
}
func (s *categoryRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCategoryRepo() *categoryRepoStub {
	return &categoryRepoStub{
		createFn:  func(_ context.Context, _ *models.Category) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Category, error) { return &models.Category{IsPublished: true}, nil },
		getPublishedBySlugFn: func(_ context.Context, _ string) (*models.Category, error) {
			return &models.Category{IsPublished: true}, nil
		},
		listPublishedFn: func(_ context.Context) ([]*models.Category, error) { return nil, nil },
		slugTakenFn:     func(_ context.Context, _ string, _ uint) (bool, error) { return false, nil },
		updateFn:        func(_ context.Context, _ *models.Category) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
	}
}

// locationRepoStub is a stub for repository.LocationRepository.
type locationRepoStub struct {
	createFn        func(context.Context, *models.Location) error
	getByIDFn       func(context.Context, uint) (*models.Location, error)
	listPublishedFn func(context.Context) ([]*models.Location, error)
	updateFn        func(context.Context, *models.Location) error
	deleteFn        func(context.Context, uint) error
}

func (s *locationRepoStub) Create(ctx context.Context, location *models.Location) error {
	return s.createFn(ctx, location)
}
func (s *locationRepoStub) GetByID(ctx context.Context, id uint) (*models.Location, error) {
	return s.getByIDFn(ctx, id)
}
func (s *locationRepoStub) ListPublished(ctx context.Context) ([]*models.Location, error) {
	return s.listPublishedFn(ctx)
}
func (s *locationRepoStub) Update(ctx context.Context, location *models.Location) error {
	return s.updateFn(ctx, location)
}
func (s *locationRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopLocationRepo() *locationRepoStub {
	return &locationRepoStub{
		createFn:        func(_ context.Context, _ *models.Location) error { return nil },
		getByIDFn:       func(_ context.Context, _ uint) (*models.Location, error) { return &models.Location{IsPublished: true}, nil },
		listPublishedFn: func(_ context.Context) ([]*models.Location, error) { return nil, nil },
		updateFn:        func(_ context.Context, _ *models.Location) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	updateFn        func(context.Context, *models.User) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn:       func(_ context.Context, _ uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
	}
}

// assertErrorCode asserts that err is an AppError with the given code.
func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
