package models

import (
	"time"
)

// Watch subscribes a user to a lost pet's status updates.
type Watch struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_pet" json:"user_id"`
	PetID     uint      `gorm:"not null;index;uniqueIndex:idx_user_pet" json:"pet_id"`
	Pet       Pet       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"pet"`
	CreatedAt time.Time `json:"created_at"`
}
