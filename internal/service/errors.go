// Package service implements the application's business rules on top of
// the repository layer: feeds, post and comment lifecycles, taxonomy
// management and profiles.
package service

import (
	"errors"

	"quill/internal/models"

	"gorm.io/gorm"
)

// mapRecordNotFound converts gorm's record-not-found into the API-level
// NotFound for the named resource; other errors pass through untouched.
func mapRecordNotFound(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource)
	}
	return err
}

// mapRecordNotFoundAsValidation converts record-not-found into a
// ValidationError, for dangling references inside submitted data.
func mapRecordNotFoundAsValidation(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewValidationError(message)
	}
	return err
}
