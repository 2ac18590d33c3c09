package models

import "time"

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	HostID    uint      `gorm:"index;not null" json:"host_id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"` // sha256 hex of the raw token
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
