package models

import (
	"time"
)

// Vote holds one user's direction on one post. The composite unique
// index is what makes the ledger's insert-or-nothing arbitration safe
// under concurrent requests; do not remove it.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_votes_post_user" json:"post_id"`
	Post      Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_votes_post_user;index" json:"user_id"`
	Value     int       `gorm:"not null" json:"value"` // +1 or -1, never 0; "no vote" is row absence
	CreatedAt time.Time `json:"created_at"`
}
