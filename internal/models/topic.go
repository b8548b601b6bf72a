package models

// Topic is a per-author tag used to classify and filter articles.
// The same name may exist once per owning user.
type Topic struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"not null;uniqueIndex:idx_topic_user_name" json:"name"`
	UserID uint   `gorm:"not null;uniqueIndex:idx_topic_user_name" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
}

// OwnerID returns the owning user for policy decisions.
func (t *Topic) OwnerID() uint { return t.UserID }
