package models

import (
	"time"
)

// Pet is the off-chain profile attached to a minted pet identity.
// ChainTokenID references the token on the EVM chain; nothing in this
// service talks to the chain itself.
type Pet struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Pid          string     `gorm:"uniqueIndex;size:8;not null" json:"pid"`
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	User         User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Name         string     `gorm:"not null" json:"name"`
	Species      string     `gorm:"size:20;not null;index" json:"species"` // dog, cat, bird, other
	Breed        string     `gorm:"size:50" json:"breed"`
	Sex          string     `gorm:"size:10" json:"sex"`
	City         string     `gorm:"size:50;index" json:"city"`
	Description  string     `gorm:"type:text" json:"description"`
	PhotoURL     string     `json:"photo_url"`
	ChainTokenID string     `gorm:"size:78" json:"chain_token_id"` // uint256 decimal string, set after external mint
	IsLost       bool       `gorm:"default:false;index" json:"is_lost"`
	LostSince    *time.Time `json:"lost_since"`
	LostDetails  string     `gorm:"type:text" json:"lost_details"` // last seen location, circumstances
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Filled on read, not a column
	WatchCount int `gorm:"-" json:"watch_count"`
}
