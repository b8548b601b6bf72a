package models

import (
	"time"
)

// Like represents a user's like on an article.
// The combination of UserID and ArticleID must be unique; the database
// constraint is the source of truth under concurrent like requests.
// Likes are hard-deleted — a soft-delete tombstone would block re-liking
// through the unique index.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_article" json:"user_id"`
	ArticleID uint      `gorm:"not null;uniqueIndex:idx_like_user_article" json:"article_id"`
	CreatedAt time.Time `json:"created_at"`

	User    User    `gorm:"foreignKey:UserID" json:"user"`
	Article Article `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"-"`
}

// OwnerID returns the liking user, not the parent article's owner.
func (l *Like) OwnerID() uint { return l.UserID }
