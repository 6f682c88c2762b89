package models

import (
	"time"
	"unicode/utf8"

	"gorm.io/gorm"
)

// Comment is attached to a post and ordered oldest-first on the post
// detail view. Its lifecycle follows the post (cascade delete); its
// authorization follows the comment author.
type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"type:text;not null" json:"text"`
	PostID   uint   `gorm:"not null;index" json:"post_id"`
	Post     *Post  `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"post,omitempty"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`
	// Preview is not persisted; a truncated rendering of Text filled in by
	// the comment service.
	Preview   string         `gorm:"-" json:"preview,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TruncatedText returns at most max runes of the comment text, with an
// ellipsis when anything was cut. max <= 0 returns the full text.
func (c *Comment) TruncatedText(max int) string {
	if max <= 0 || utf8.RuneCountInString(c.Text) <= max {
		return c.Text
	}
	runes := []rune(c.Text)
	return string(runes[:max]) + "…"
}
