package models

import (
	"time"
)

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Pid       string    `gorm:"uniqueIndex;size:8;not null" json:"pid"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	TopicID   uint      `gorm:"not null;index;default:1" json:"topic_id"`
	Topic     Topic     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"topic"`
	PetID     *uint     `gorm:"index" json:"pet_id"` // optional link to one of the author's pets
	Pet       *Pet      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"pet,omitempty"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	Views     int       `gorm:"default:0" json:"views"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Derived fields, filled at query time. Score is the sum of vote
	// directions; there is deliberately no score column to drift from
	// the votes table.
	Score        int `gorm:"-" json:"score"`
	CommentCount int `gorm:"-" json:"comment_count"`
}
