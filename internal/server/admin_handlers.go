package server

import (
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

type categoryRequest struct {
	Title       string `json:"title" validate:"required,max=256"`
	Description string `json:"description"`
	Slug        string `json:"slug" validate:"required,max=64"`
	IsPublished *bool  `json:"is_published"`
}

type locationRequest struct {
	Name        string `json:"name" validate:"required,max=256"`
	IsPublished *bool  `json:"is_published"`
}

func (r categoryRequest) toInput() service.CategoryInput {
	in := service.CategoryInput{
		Title:       r.Title,
		Description: r.Description,
		Slug:        r.Slug,
		IsPublished: true,
	}
	if r.IsPublished != nil {
		in.IsPublished = *r.IsPublished
	}
	return in
}

func (r locationRequest) toInput() service.LocationInput {
	in := service.LocationInput{
		Name:        r.Name,
		IsPublished: true,
	}
	if r.IsPublished != nil {
		in.IsPublished = *r.IsPublished
	}
	return in
}

// CreateCategory handles POST /api/admin/categories
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	category, err := s.taxonomyService.CreateCategory(c.Context(), req.toInput())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// UpdateCategory handles PUT /api/admin/categories/:id
func (s *Server) UpdateCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req categoryRequest
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	category, err := s.taxonomyService.UpdateCategory(c.Context(), id, req.toInput())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(category)
}

// DeleteCategory handles DELETE /api/admin/categories/:id. Posts in the
// category survive with their category cleared.
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.taxonomyService.DeleteCategory(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateLocation handles POST /api/admin/locations
func (s *Server) CreateLocation(c *fiber.Ctx) error {
	var req locationRequest
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	location, err := s.taxonomyService.CreateLocation(c.Context(), req.toInput())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(location)
}

// UpdateLocation handles PUT /api/admin/locations/:id
func (s *Server) UpdateLocation(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req locationRequest
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	location, err := s.taxonomyService.UpdateLocation(c.Context(), id, req.toInput())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(location)
}

// DeleteLocation handles DELETE /api/admin/locations/:id
func (s *Server) DeleteLocation(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.taxonomyService.DeleteLocation(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
