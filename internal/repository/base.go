// Package repository provides data access layer implementations for the application.
package repository

import "gorm.io/gorm"

// Repositories bundles every repository over a single gorm handle.
type Repositories struct {
	Users      UserRepository
	Posts      PostRepository
	Comments   CommentRepository
	Categories CategoryRepository
	Locations  LocationRepository
}

// New constructs the full repository set.
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(db),
		Posts:      NewPostRepository(db),
		Comments:   NewCommentRepository(db),
		Categories: NewCategoryRepository(db),
		Locations:  NewLocationRepository(db),
	}
}
