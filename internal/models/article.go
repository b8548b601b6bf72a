// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Article represents an authored article in the Quill application.
type Article struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	Opening  string `gorm:"type:text" json:"opening"`
	Content  string `gorm:"type:text;not null" json:"content"`
	ImageURL string `json:"image_url"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	User     User   `gorm:"foreignKey:UserID" json:"user"`
	// Topics is the per-author tag set, replaced on write by the reconciler.
	Topics   []Topic   `gorm:"many2many:article_topics" json:"topics"`
	Comments []Comment `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	Likes    []Like    `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"likes,omitempty"`
	// LikesCount is computed at query time; -:migration keeps AutoMigrate
	// from creating a real column that would shadow the SELECT alias.
	LikesCount int       `gorm:"->;-:migration" json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// OwnerID returns the owning user for policy decisions.
func (a *Article) OwnerID() uint { return a.UserID }
