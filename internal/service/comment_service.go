package service

import (
	"context"
	"time"

	"quill/internal/models"
	"quill/internal/policy"
	"quill/internal/repository"
)

const maxCommentLen = 10000

// CommentService attaches comments to posts and enforces comment
// ownership. Adding or listing comments runs the same visibility check as
// viewing the post, so a draft only its author can see only its author
// can comment on.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	previewLen  int
	now         func() time.Time
}

type AddCommentInput struct {
	PostID   uint
	AuthorID uint
	Text     string
}

type UpdateCommentInput struct {
	CommentID uint
	ActorID   uint
	Text      string
}

// NewCommentService creates a CommentService. previewLen bounds the short
// preview rendering attached to listed comments.
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	previewLen int,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		previewLen:  previewLen,
		now:         time.Now,
	}
}

func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if err := s.visiblePost(ctx, in.PostID, in.AuthorID); err != nil {
		return nil, err
	}

	if in.Text == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(in.Text) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment := &models.Comment{
		Text:     in.Text,
		PostID:   in.PostID,
		AuthorID: in.AuthorID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.reload(ctx, comment.ID)
}

// ListComments returns the post's comments oldest first, each carrying a
// bounded preview.
func (s *CommentService) ListComments(ctx context.Context, postID, viewerID uint) ([]*models.Comment, error) {
	if err := s.visiblePost(ctx, postID, viewerID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	for _, comment := range comments {
		comment.Preview = comment.TruncatedText(s.previewLen)
	}
	return comments, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, mapRecordNotFound(err, "comment")
	}

	if !policy.CanModify(comment.AuthorID, in.ActorID) {
		return nil, models.NewForbiddenError("You can only edit your own comments")
	}
	if in.Text == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(in.Text) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment.Text = in.Text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return s.reload(ctx, comment.ID)
}

func (s *CommentService) DeleteComment(ctx context.Context, commentID, actorID uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, mapRecordNotFound(err, "comment")
	}

	if !policy.CanModify(comment.AuthorID, actorID) {
		return nil, models.NewForbiddenError("You can only delete your own comments")
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return nil, err
	}

	return comment, nil
}

// visiblePost fails with NotFound when the post is missing or hidden from
// the viewer; the two cases are indistinguishable on purpose.
func (s *CommentService) visiblePost(ctx context.Context, postID, viewerID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return mapRecordNotFound(err, "post")
	}
	if !policy.PostVisible(post, viewerID, s.now()) {
		return models.NewNotFoundError("post")
	}
	return nil
}

func (s *CommentService) reload(ctx context.Context, id uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	comment.Preview = comment.TruncatedText(s.previewLen)
	return comment, nil
}
