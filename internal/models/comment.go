package models

import (
	"time"
)

// Comment represents a comment left on an article.
// Comments are cascade-deleted with their parent article.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ArticleID uint      `gorm:"not null;index" json:"article_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Article   Article   `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnerID returns the commenting user, not the parent article's owner.
func (c *Comment) OwnerID() uint { return c.UserID }
