package server

import (
	"time"

	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createPostRequest struct {
	Title       string     `json:"title" validate:"required,max=256"`
	Text        string     `json:"text" validate:"required"`
	ImageURL    string     `json:"image_url" validate:"omitempty,url"`
	PubDate     *time.Time `json:"pub_date"`
	IsPublished *bool      `json:"is_published"`
	CategoryID  *uint      `json:"category_id"`
	LocationID  *uint      `json:"location_id"`
}

type updatePostRequest struct {
	Title       string     `json:"title" validate:"omitempty,max=256"`
	Text        string     `json:"text"`
	ImageURL    string     `json:"image_url" validate:"omitempty,url"`
	PubDate     *time.Time `json:"pub_date"`
	IsPublished *bool      `json:"is_published"`
	CategoryID  *uint      `json:"category_id"`
	LocationID  *uint      `json:"location_id"`
}

// GetFeed handles GET /api/posts — the site-wide feed of visible posts.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	feed, err := s.feedService.SiteFeed(c.Context(), c.Query("page"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(feed)
}

// GetPost handles GET /api/posts/:id — post detail with ordered comments.
// Hidden posts 404 exactly like missing ones.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	viewer := viewerID(c)
	post, err := s.postService.GetPost(c.Context(), id, viewer)
	if err != nil {
		return respondServiceError(c, err)
	}

	comments, err := s.commentService.ListComments(c.Context(), id, viewer)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"post":     post,
		"comments": comments,
	})
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	in := service.CreatePostInput{
		AuthorID:    currentUserID(c),
		Title:       req.Title,
		Text:        req.Text,
		ImageURL:    req.ImageURL,
		IsPublished: true,
		CategoryID:  req.CategoryID,
		LocationID:  req.LocationID,
	}
	if req.PubDate != nil {
		in.PubDate = *req.PubDate
	}
	if req.IsPublished != nil {
		in.IsPublished = *req.IsPublished
	}

	post, err := s.postService.CreatePost(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	middleware.PostsCreated.Inc()
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id. A non-owner is sent to the post
// detail page with 303 rather than told the edit was forbidden.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req updatePostRequest
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		ActorID:     currentUserID(c),
		PostID:      id,
		Title:       req.Title,
		Text:        req.Text,
		ImageURL:    req.ImageURL,
		PubDate:     req.PubDate,
		IsPublished: req.IsPublished,
		CategoryID:  req.CategoryID,
		LocationID:  req.LocationID,
	})
	if err != nil {
		if models.ErrorCode(err) == models.CodeForbidden {
			return c.Redirect(postDetailPath(id), fiber.StatusSeeOther)
		}
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id. Ownership is checked before
// anything is touched; the post and its comments go together or not at all.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), id, currentUserID(c)); err != nil {
		if models.ErrorCode(err) == models.CodeForbidden {
			return c.Redirect(postDetailPath(id), fiber.StatusSeeOther)
		}
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
