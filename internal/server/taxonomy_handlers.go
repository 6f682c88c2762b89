package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetCategories handles GET /api/categories — published categories only.
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.taxonomyService.PublishedCategories(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// GetCategoryFeed handles GET /api/categories/:slug/posts. An unknown or
// unpublished slug is a 404, never an empty feed.
func (s *Server) GetCategoryFeed(c *fiber.Ctx) error {
	feed, err := s.feedService.CategoryFeed(c.Context(), c.Params("slug"), c.Query("page"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(feed)
}

// GetLocations handles GET /api/locations — published locations only.
func (s *Server) GetLocations(c *fiber.Ctx) error {
	locations, err := s.taxonomyService.PublishedLocations(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"locations": locations})
}
