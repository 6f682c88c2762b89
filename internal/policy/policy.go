// Package policy holds the pure visibility and authorization rules for
// posts and comments. Nothing here touches the database or the clock;
// callers pass the resolved entities, the acting user ID (0 for anonymous)
// and the current time.
package policy

import (
	"time"

	"quill/internal/models"
)

// PostVisible reports whether viewerID may see the post at instant now.
//
// A post is publicly visible when it is published, its category (if any)
// is published, and its pub_date is not in the future. Authors always see
// their own posts regardless of publish state or date. The post's
// Category must be resolved before calling; a nil Category with a set
// CategoryID is treated as unpublished.
func PostVisible(post *models.Post, viewerID uint, now time.Time) bool {
	if viewerID != 0 && viewerID == post.AuthorID {
		return true
	}
	if !post.IsPublished {
		return false
	}
	if post.CategoryID != nil && (post.Category == nil || !post.Category.IsPublished) {
		return false
	}
	return !post.PubDate.After(now)
}

// CanModify reports whether actorID may edit or delete an entity owned by
// ownerID. Applied identically to posts and comments: only the owner, and
// never an anonymous actor.
func CanModify(ownerID, actorID uint) bool {
	return actorID != 0 && actorID == ownerID
}
