package server

import (
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAuthorFeed handles GET /api/users/:username/posts. The profile owner
// sees their own drafts and scheduled posts; everyone else sees the
// published timeline.
func (s *Server) GetAuthorFeed(c *fiber.Ctx) error {
	feed, err := s.feedService.AuthorFeed(c.Context(), c.Params("username"), viewerID(c), c.Query("page"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(feed)
}

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetByID(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:    currentUserID(c),
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}
