package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a publication in the Quill application. A post with
// IsPublished=false or a future PubDate is a draft: invisible to everyone
// except its author. The author is fixed at creation time.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"size:256;not null" json:"title"`
	Text     string `gorm:"type:text;not null" json:"text"`
	ImageURL string `json:"image_url,omitempty"`
	// PubDate may be set in the future for scheduled publications.
	PubDate     time.Time `gorm:"not null;index" json:"pub_date"`
	// No column default: a default tag would make GORM drop the zero
	// value on insert, silently publishing drafts.
	IsPublished bool `gorm:"not null" json:"is_published"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	Author      User      `gorm:"foreignKey:AuthorID" json:"author"`
	CategoryID  *uint     `gorm:"index" json:"category_id,omitempty"`
	Category    *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	LocationID  *uint     `json:"location_id,omitempty"`
	Location    *Location `gorm:"foreignKey:LocationID;constraint:OnDelete:SET NULL" json:"location,omitempty"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int            `gorm:"->;-:migration" json:"comments_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
