package models

import (
	"time"
)

const (
	UserStatusActive = 0
	UserStatusMuted  = 1
	UserStatusBanned = 2
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash
	Avatar    string    `gorm:"default:🐾" json:"avatar"`
	Bio       string    `gorm:"size:200" json:"bio"`
	Phone     string    `gorm:"size:32" json:"-"` // contact channel for lost pet recovery, never exposed in listings
	Role      string    `gorm:"size:20;default:'user';not null" json:"role"` // user, admin
	Status    int       `gorm:"default:0" json:"status"`
	Wallet    string    `gorm:"size:64;index" json:"wallet"` // EVM address used when minting pet identities (opaque here)
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
